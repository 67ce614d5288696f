package app

import (
	"context"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/config"
	"github.com/ariefcatur/go-salon-orders/internal/httpx"
	"github.com/ariefcatur/go-salon-orders/internal/inventory"
	kafkax "github.com/ariefcatur/go-salon-orders/internal/kafka"
	"github.com/ariefcatur/go-salon-orders/internal/postgres"
	"github.com/ariefcatur/go-salon-orders/internal/profile"
	"github.com/ariefcatur/go-salon-orders/internal/redisx"
	"github.com/ariefcatur/go-salon-orders/internal/revenue"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/ariefcatur/go-salon-orders/internal/schedule"
	"github.com/ariefcatur/go-salon-orders/internal/sqlite"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired services. Redis and Kafka are used only when
// configured.
type App struct {
	Inventory *inventory.Service
	Schedule  *schedule.Service
	Revenue   *revenue.Reporter
	Profile   profile.Profile

	idem    *redisx.Idempotency
	log     *zap.Logger
	closers []func()
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Profile: profile.FromConfig(cfg.Profile), log: log}

	products, orders, err := a.openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisx.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	}

	var events salon.Publisher = salon.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		prod := kafkax.NewProducer(cfg.Kafka.Brokers, 1024, log)
		prod.Start()
		a.closers = append(a.closers, func() {
			prod.Close()
			prod.WaitClosed()
		})
		events = prod
	}

	var cache *redisx.CachedProducts
	if rdb != nil {
		cache = redisx.NewCachedProducts(products, rdb, log)
		products = cache
		a.idem = &redisx.Idempotency{Redis: rdb}
	}

	a.Inventory = inventory.NewService(products, events, log, cfg.App.ServiceName)
	a.Schedule = schedule.NewService(orders, products, events, log, cfg.App.ServiceName)
	if cache != nil {
		a.Schedule.Cache = cache
	}
	a.Revenue = revenue.NewReporter(orders, log)

	log.Info("salon services ready",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("redis", rdb != nil),
		zap.Bool("kafka", len(cfg.Kafka.Brokers) > 0),
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.StoreConfig) (salon.ProductStore, salon.OrderStore, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			a.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		return &postgres.ProductRepo{DB: pool}, &postgres.OrderRepo{DB: pool}, nil
	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		return sqlite.NewProductRepo(db), sqlite.NewOrderRepo(db), nil
	}
}

// Handlers wires the HTTP API over the services.
func (a *App) Handlers() *httpx.Handlers {
	return &httpx.Handlers{
		Profile:  &httpx.ProfileHandler{Profile: a.Profile},
		Products: &httpx.ProductsHandler{Inventory: a.Inventory},
		Orders:   &httpx.OrdersHandler{Schedule: a.Schedule, Idem: a.idem, Log: a.log},
		Revenue:  &httpx.RevenueHandler{Reporter: a.Revenue},
	}
}

// Close releases resources in reverse order of acquisition. The Kafka
// producer is flushed before the store closes.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
