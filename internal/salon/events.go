package salon

import (
	"context"
	"encoding/json"
	"github.com/google/uuid"
	"time"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderFinalized = "OrderFinalized"
	EventStockChanged   = "StockChanged"
	EventProductDeleted = "ProductDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID     int64  `json:"order_id"`
	ProductID   int64  `json:"product_id"`
	ProductUsed string `json:"product_used"`
	OrderValue  string `json:"order_value"`
	Delivered   bool   `json:"delivered"`
}

type OrderFinalizedPayload struct {
	OrderID    int64  `json:"order_id"`
	OrderValue string `json:"order_value"`
}

// StockChangedPayload.Stock is the level after the change. Delta is zero for
// full overwrites from Update.
type StockChangedPayload struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
}

const (
	ReasonManual  = "manual"
	ReasonOrder   = "order"
	ReasonEdit    = "edit"
	ReasonCreated = "created"
	ReasonDeleted = "deleted"
)

// Publisher sends domain events. Publishing never fails the write that
// triggered it.
type Publisher interface {
	Publish(ctx context.Context, topic string, key []byte, ev Envelope)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte, Envelope) {}

// NewEnvelope wraps payload in a version 1 envelope with a fresh event id.
func NewEnvelope(producer, eventType, correlationID string, payload any) Envelope {
	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       b,
	}
}
