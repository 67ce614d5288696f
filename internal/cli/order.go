package cli

import (
	"context"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/app"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/spf13/cobra"
	"io"
	"text/tabwriter"
)

func newOrderCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Manage the order schedule",
	}
	cmd.AddCommand(
		newOrderListCmd(load),
		newOrderPickerCmd(load),
		newOrderAddCmd(load),
		newOrderEditCmd(load),
		newOrderFinalizeCmd(load),
		newOrderRmCmd(load),
	)
	return cmd
}

func printOrders(w io.Writer, orders []salon.Order) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORDER DATE\tDELIVERY DATE\tVALUE\tPRODUCT\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.OrderDate, o.DeliveryDate, o.OrderValue, o.ProductUsed, o.Status())
	}
	_ = tw.Flush()
}

func printOrder(w io.Writer, o *salon.Order) {
	fmt.Fprintf(w, "#%d %s -> %s  %s  %s  [%s]\n", o.ID, o.OrderDate, o.DeliveryDate, o.OrderValue, o.ProductUsed, o.Status())
}

func newOrderListCmd(load loader) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, optionally only pending or delivered ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				var (
					orders []salon.Order
					err    error
				)
				if status == "" {
					orders, err = a.Schedule.List(ctx)
				} else {
					st, perr := salon.ParseStatus(status)
					if perr != nil {
						return perr
					}
					orders, err = a.Schedule.ListByStatus(ctx, st)
				}
				if err != nil {
					return err
				}
				printOrders(cmd.OutOrStdout(), orders)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending or delivered")
	return cmd
}

func newOrderPickerCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "picker",
		Short: "List products an order can be placed against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				products, err := a.Schedule.Picker(ctx)
				if err != nil {
					return err
				}
				printProducts(cmd.OutOrStdout(), products)
				return nil
			})
		},
	}
}

func newOrderAddCmd(load loader) *cobra.Command {
	var (
		orderDate, deliveryDate, value, status string
		productID                              int64
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule an order; takes one unit of the product's stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := salon.ParseStatus(status)
			if err != nil {
				return err
			}
			var selected *int64
			if cmd.Flags().Changed("product") {
				selected = &productID
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				product, err := a.Schedule.SelectProduct(ctx, selected)
				if err != nil {
					return err
				}
				o, p, err := a.Schedule.Create(ctx, salon.OrderInput{
					OrderDate:    salon.FormatDateInput(orderDate),
					DeliveryDate: salon.FormatDateInput(deliveryDate),
					OrderValue:   value,
				}, product, st)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printOrder(out, o)
				fmt.Fprintf(out, "%s stock now %d\n", p.Name, p.Stock)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&productID, "product", 0, "product id from the picker")
	cmd.Flags().StringVar(&orderDate, "order-date", "", "order date, DD/MM/YYYY")
	cmd.Flags().StringVar(&deliveryDate, "delivery-date", "", "delivery date, DD/MM/YYYY")
	cmd.Flags().StringVar(&value, "value", "", "order value")
	cmd.Flags().StringVar(&status, "status", string(salon.StatusPending), "pending or delivered")
	return cmd
}

func newOrderEditCmd(load loader) *cobra.Command {
	var orderDate, deliveryDate, value, status string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Overwrite an order; fields not given keep their value",
		Long: `Overwrite an order. The product name stays the one copied when the
order was created, and stock is not touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				cur, err := a.Schedule.Get(ctx, id)
				if err != nil {
					return err
				}
				in := salon.OrderInput{
					OrderDate:    cur.OrderDate,
					DeliveryDate: cur.DeliveryDate,
					OrderValue:   cur.OrderValue,
					ProductUsed:  cur.ProductUsed,
				}
				st := cur.Status()
				if cmd.Flags().Changed("order-date") {
					in.OrderDate = salon.FormatDateInput(orderDate)
				}
				if cmd.Flags().Changed("delivery-date") {
					in.DeliveryDate = salon.FormatDateInput(deliveryDate)
				}
				if cmd.Flags().Changed("value") {
					in.OrderValue = value
				}
				if cmd.Flags().Changed("status") {
					if st, err = salon.ParseStatus(status); err != nil {
						return err
					}
				}
				o, err := a.Schedule.Update(ctx, id, in, st)
				if err != nil {
					return err
				}
				printOrder(cmd.OutOrStdout(), o)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&orderDate, "order-date", "", "order date, DD/MM/YYYY")
	cmd.Flags().StringVar(&deliveryDate, "delivery-date", "", "delivery date, DD/MM/YYYY")
	cmd.Flags().StringVar(&value, "value", "", "order value")
	cmd.Flags().StringVar(&status, "status", "", "pending or delivered")
	return cmd
}

func newOrderFinalizeCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize ID",
		Short: "Mark an order delivered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				o, err := a.Schedule.Finalize(ctx, id)
				if err != nil {
					return err
				}
				printOrder(cmd.OutOrStdout(), o)
				return nil
			})
		},
	}
}

func newOrderRmCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an order; stock is not given back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				if err := a.Schedule.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "order %d deleted\n", id)
				return nil
			})
		},
	}
}
