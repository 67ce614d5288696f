package main

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/config"
	"github.com/ariefcatur/go-salon-orders/internal/inventory"
	kafkax "github.com/ariefcatur/go-salon-orders/internal/kafka"
	"github.com/ariefcatur/go-salon-orders/internal/logger"
	"github.com/ariefcatur/go-salon-orders/internal/redisx"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// The inventory watcher follows stock events and warns about low stock.
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

	if len(cfg.Kafka.Brokers) == 0 {
		lg.Fatal("SALON_KAFKA_BROKERS is required for the inventory watcher")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &inventory.Watcher{
		Threshold:   cfg.Inventory.LowStockThreshold,
		Log:         lg,
		ServiceName: cfg.App.ServiceName + "-inventory",
	}
	if cfg.Redis.Addr != "" {
		rdb, err := redisx.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			lg.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		w.Redis = rdb
	}

	cons := kafkax.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Group, salon.TopicStockChanged, cfg.Kafka.Workers, lg)

	done := make(chan struct{})
	go func() {
		defer close(done)
		lg.Info("inventory watcher started",
			zap.String("group", cfg.Kafka.Group),
			zap.String("topic", salon.TopicStockChanged),
			zap.Int("workers", cfg.Kafka.Workers),
			zap.Int("threshold", w.Threshold),
		)
		if err := cons.Start(ctx, w.HandleStockChanged); err != nil {
			lg.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		lg.Info("shutting down watcher")
	case <-ctx.Done():
	}
	cancel()
	<-done
}
