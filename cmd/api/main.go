package main

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/app"
	"github.com/ariefcatur/go-salon-orders/internal/config"
	"github.com/ariefcatur/go-salon-orders/internal/httpx"
	"github.com/ariefcatur/go-salon-orders/internal/logger"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg, err := config.Load(os.Getenv("SALON_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("startup failed", zap.Error(err))
	}

	router := httpx.NewRouter()
	a.Handlers().Register(router)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		lg.Info("HTTP listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	lg.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	// flushes pending events, then closes the store
	a.Close()
}
