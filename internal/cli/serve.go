package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/app"
	"github.com/ariefcatur/go-salon-orders/internal/httpx"
	"github.com/ariefcatur/go-salon-orders/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

func newServeCmd(load loader) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			lg, err := logger.New(cfg.App.Env)
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, lg)
			if err != nil {
				return err
			}
			defer a.Close()

			router := httpx.NewRouter()
			a.Handlers().Register(router)
			srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

			errCh := make(chan error, 1)
			go func() {
				lg.Info("HTTP listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				lg.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")
	return cmd
}
