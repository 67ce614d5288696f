package cli

import (
	"context"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/app"
	"github.com/ariefcatur/go-salon-orders/internal/config"
	"github.com/ariefcatur/go-salon-orders/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
	"strconv"
)

// NewRootCmd builds the salon command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "salon",
		Short: "Salon inventory, schedule and revenue",
		Long: `salon manages a beauty salon's product stock and appointment orders
on a local store, and reports revenue from delivered orders.

Every command opens the configured store, runs and exits. Use "salon serve"
to expose the same operations over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default salon.yaml in . or $HOME/.salon)")

	load := func() (*config.Config, error) { return config.Load(cfgFile) }

	root.AddCommand(
		newProfileCmd(load),
		newProductCmd(load),
		newOrderCmd(load),
		newRevenueCmd(load),
		newServeCmd(load),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type loader func() (*config.Config, error)

// withApp opens the services for a single command. Only warnings and errors
// are logged so they do not mix with command output.
func withApp(cmd *cobra.Command, load loader, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		return err
	}
	lg = lg.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	defer func() { _ = lg.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
