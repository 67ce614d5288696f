package cli

import (
	"context"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/app"
	"github.com/ariefcatur/go-salon-orders/internal/revenue"
	"github.com/spf13/cobra"
	"text/tabwriter"
)

func newRevenueCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "revenue",
		Short: "Show delivered orders and their total value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				rep, err := a.Revenue.TotalDelivered(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, l := range rep.Lines {
					fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\n", l.Order.ID, l.Order.DeliveryDate, l.Order.ProductUsed, revenue.Format(l.Value))
				}
				fmt.Fprintf(tw, "Total\t\t\t%s\n", revenue.Format(rep.Total))
				return tw.Flush()
			})
		},
	}
}
