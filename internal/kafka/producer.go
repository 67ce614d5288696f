package kafka

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"sync"
	"time"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer queues messages in a buffered inbox and writes them from a single
// goroutine. Publish never blocks the caller on the broker.
type Producer struct {
	w       messageWriter
	log     *zap.Logger
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, buf int, log *zap.Logger) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, buf, log)
}

func newProducer(w messageWriter, buf int, log *zap.Logger) *Producer {
	return &Producer{
		w:       w,
		log:     log,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				p.log.Error("kafka write failed", zap.String("topic", m.Topic), zap.Error(err))
			}
		}
		if err := p.w.Close(); err != nil {
			p.log.Warn("kafka writer close", zap.Error(err))
		}
	}()
}

// Publish implements salon.Publisher. It waits for inbox space until ctx is
// done; a closed producer drops the event with a warning.
func (p *Producer) Publish(ctx context.Context, topic string, key []byte, ev salon.Envelope) {
	m := kafka.Message{
		Topic: topic,
		Key:   key,
		Value: MustMarshal(ev),
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(ev.EventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.log.Warn("producer closed, event dropped", zap.String("event_type", ev.EventType))
		return
	}

	select {
	case p.inbox <- m:
	case <-ctx.Done():
		p.log.Warn("event dropped", zap.String("event_type", ev.EventType), zap.Error(ctx.Err()))
	}
}

// Close stops accepting messages; the writer goroutine flushes what is
// queued and exits.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

// WaitClosed blocks until the queued messages are flushed.
func (p *Producer) WaitClosed() { <-p.closeCh }
