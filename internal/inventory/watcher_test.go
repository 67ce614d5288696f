package inventory

import (
	"context"
	kafkax "github.com/ariefcatur/go-salon-orders/internal/kafka"
	"github.com/ariefcatur/go-salon-orders/internal/redisx"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"os"
	"testing"
)

func stockMessage(t *testing.T, eventType string, stock int) kafkago.Message {
	t.Helper()
	ev := salon.NewEnvelope("test", eventType, "1", salon.StockChangedPayload{
		ProductID: 1, Name: "Esmalte", Stock: stock, Delta: -1, Reason: salon.ReasonOrder,
	})
	return kafkago.Message{Value: kafkax.MustMarshal(ev)}
}

func TestWatcher_WarnsAtThreshold(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := &Watcher{Threshold: 0, Log: zap.New(core), ServiceName: "test"}
	ctx := context.Background()

	require.NoError(t, w.HandleStockChanged(ctx, stockMessage(t, salon.EventStockChanged, 3)))
	assert.Equal(t, 0, logs.Len())

	require.NoError(t, w.HandleStockChanged(ctx, stockMessage(t, salon.EventStockChanged, 0)))
	require.NoError(t, w.HandleStockChanged(ctx, stockMessage(t, salon.EventStockChanged, -1)))
	require.Equal(t, 2, logs.Len())

	entry := logs.All()[1]
	assert.Equal(t, "low stock", entry.Message)
	assert.Equal(t, int64(-1), entry.ContextMap()["stock"])
}

func TestWatcher_IgnoresOtherEvents(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := &Watcher{Log: zap.New(core)}

	require.NoError(t, w.HandleStockChanged(context.Background(), stockMessage(t, salon.EventProductDeleted, -5)))
	assert.Equal(t, 0, logs.Len())
}

func TestWatcher_BadMessage(t *testing.T) {
	w := &Watcher{Log: zap.NewNop()}
	assert.Error(t, w.HandleStockChanged(context.Background(), kafkago.Message{Value: []byte("nope")}))
}

func TestWatcher_BadPayloadIsNotMarkedSeen(t *testing.T) {
	addr := os.Getenv("SALON_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SALON_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := redisx.Connect(ctx, addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	service := "test-" + uuid.NewString()
	w := &Watcher{Redis: rdb, Log: zap.NewNop(), ServiceName: service}

	ev := salon.NewEnvelope("test", salon.EventStockChanged, "1", "not a payload")
	msg := kafkago.Message{Value: kafkax.MustMarshal(ev)}

	// redelivery must fail again instead of being skipped as a duplicate
	assert.Error(t, w.HandleStockChanged(ctx, msg))
	assert.Error(t, w.HandleStockChanged(ctx, msg))

	seen, err := redisx.Seen(ctx, rdb, service, ev.EventID)
	require.NoError(t, err)
	assert.False(t, seen)
}
