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

func newProductCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage product stock",
	}
	cmd.AddCommand(
		newProductListCmd(load),
		newProductAddCmd(load),
		newProductEditCmd(load),
		newProductStockCmd(load),
		newProductRmCmd(load),
	)
	return cmd
}

func printProducts(w io.Writer, products []salon.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTOCK\tCOLOR")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Stock, p.Color)
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, p *salon.Product) {
	fmt.Fprintf(w, "#%d %s (%s): %d in stock\n", p.ID, p.Name, p.Color, p.Stock)
}

func newProductListCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				products, err := a.Inventory.List(ctx)
				if err != nil {
					return err
				}
				printProducts(cmd.OutOrStdout(), products)
				return nil
			})
		},
	}
}

func newProductAddCmd(load loader) *cobra.Command {
	var name, stock, color string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := salon.ParseStock(stock)
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				p, err := a.Inventory.Create(ctx, salon.ProductInput{Name: name, Stock: n, Color: color})
				if err != nil {
					return err
				}
				printProduct(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&stock, "stock", "", "units in stock")
	cmd.Flags().StringVar(&color, "color", "", "product color")
	return cmd
}

func newProductEditCmd(load loader) *cobra.Command {
	var name, stock, color string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Overwrite a product; fields not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				cur, err := a.Inventory.Get(ctx, id)
				if err != nil {
					return err
				}
				in := salon.ProductInput{Name: cur.Name, Stock: cur.Stock, Color: cur.Color}
				if cmd.Flags().Changed("name") {
					in.Name = name
				}
				if cmd.Flags().Changed("stock") {
					if in.Stock, err = salon.ParseStock(stock); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("color") {
					in.Color = color
				}
				p, err := a.Inventory.Update(ctx, id, in)
				if err != nil {
					return err
				}
				printProduct(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&stock, "stock", "", "units in stock")
	cmd.Flags().StringVar(&color, "color", "", "product color")
	return cmd
}

func newProductStockCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:       "stock ID inc|dec",
		Short:     "Add or remove one unit of stock",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"inc", "dec"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var delta int
			switch args[1] {
			case "inc":
				delta = 1
			case "dec":
				delta = -1
			default:
				return fmt.Errorf("%w: expected inc or dec, got %q", salon.ErrInvalidInput, args[1])
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				p, err := a.Inventory.AdjustStock(ctx, id, delta)
				if err != nil {
					return err
				}
				printProduct(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
}

func newProductRmCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, load, func(ctx context.Context, a *app.App) error {
				if err := a.Inventory.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "product %d deleted\n", id)
				return nil
			})
		},
	}
}
