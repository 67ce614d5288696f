package cli

import (
	"context"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/app"
	"github.com/spf13/cobra"
)

func newProfileCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the owner profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				p := a.Profile
				fmt.Fprintf(out, "Name:  %s\n", p.Name)
				if p.TaxID != "" {
					fmt.Fprintf(out, "CPF:   %s\n", p.TaxID)
				}
				fmt.Fprintf(out, "Email: %s\n", p.Email)
				if p.Age > 0 {
					fmt.Fprintf(out, "Age:   %d\n", p.Age)
				}
				if p.City != "" {
					fmt.Fprintf(out, "City:  %s\n", p.City)
				}
				return nil
			})
		},
	}
}
