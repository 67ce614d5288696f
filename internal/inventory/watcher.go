package inventory

import (
	"context"
	kafkax "github.com/ariefcatur/go-salon-orders/internal/kafka"
	"github.com/ariefcatur/go-salon-orders/internal/redisx"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Watcher consumes stock events and warns when a product runs low. Stock is
// never blocked from going negative; this only makes it visible.
type Watcher struct {
	Redis       *redis.Client // optional, enables dedup by event id
	Threshold   int
	Log         *zap.Logger
	ServiceName string
}

// HandleStockChanged is installed as the consumer handler.
func (w *Watcher) HandleStockChanged(ctx context.Context, m kafkago.Message) error {
	env, err := kafkax.UnmarshalEnvelope(m.Value)
	if err != nil {
		return err
	}
	if env.EventType != salon.EventStockChanged {
		return nil
	}

	p, err := kafkax.UnwrapPayload[salon.StockChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	// marked only once decoded, so a bad payload is not skipped on redelivery
	if w.Redis != nil {
		seen, err := redisx.Seen(ctx, w.Redis, w.ServiceName, env.EventID)
		if err != nil {
			w.Log.Warn("dedup unavailable", zap.Error(err))
		} else if seen {
			return nil
		}
	}

	if p.Stock <= w.Threshold {
		w.Log.Warn("low stock",
			zap.Int64("product_id", p.ProductID),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock),
			zap.String("reason", p.Reason),
		)
	}
	return nil
}
