package inventory

import (
	"context"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"go.uber.org/zap"
	"strconv"
)

// Service is the inventory manager: CRUD over products plus the +1/-1 stock
// buttons. Every write announces the new stock level.
type Service struct {
	Store       salon.ProductStore
	Events      salon.Publisher
	Log         *zap.Logger
	ServiceName string
}

func NewService(store salon.ProductStore, events salon.Publisher, log *zap.Logger, serviceName string) *Service {
	if events == nil {
		events = salon.NopPublisher{}
	}
	return &Service{Store: store, Events: events, Log: log, ServiceName: serviceName}
}

func (s *Service) List(ctx context.Context) ([]salon.Product, error) {
	products, err := s.Store.List(ctx)
	if err != nil {
		s.Log.Error("list products failed", zap.Error(err))
	}
	return products, err
}

// Available lists what the order form may pick: products with stock above
// zero at the time of the call.
func (s *Service) Available(ctx context.Context) ([]salon.Product, error) {
	products, err := s.Store.ListInStock(ctx)
	if err != nil {
		s.Log.Error("list products in stock failed", zap.Error(err))
	}
	return products, err
}

func (s *Service) Get(ctx context.Context, id int64) (*salon.Product, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in salon.ProductInput) (*salon.Product, error) {
	p, err := s.Store.Create(ctx, in)
	if err != nil {
		s.Log.Error("create product failed", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	s.stockChanged(ctx, salon.EventStockChanged, p, 0, salon.ReasonCreated)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, in salon.ProductInput) (*salon.Product, error) {
	p, err := s.Store.Update(ctx, id, in)
	if err != nil {
		s.logWriteError("update product failed", id, err)
		return nil, err
	}
	s.stockChanged(ctx, salon.EventStockChanged, p, 0, salon.ReasonEdit)
	return p, nil
}

func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*salon.Product, error) {
	if delta != 1 && delta != -1 {
		return nil, fmt.Errorf("%w: stock moves by one unit, got %d", salon.ErrInvalidInput, delta)
	}
	p, err := s.Store.AdjustStock(ctx, id, delta)
	if err != nil {
		s.logWriteError("adjust stock failed", id, err)
		return nil, err
	}
	s.stockChanged(ctx, salon.EventStockChanged, p, delta, salon.ReasonManual)
	return p, nil
}

// Delete removes the product. Orders keep their copy of its name.
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		s.logWriteError("delete product failed", id, err)
		return err
	}
	s.stockChanged(ctx, salon.EventProductDeleted, p, 0, salon.ReasonDeleted)
	return nil
}

func (s *Service) logWriteError(msg string, id int64, err error) {
	if errors.Is(err, salon.ErrNotFound) {
		return
	}
	s.Log.Error(msg, zap.Int64("product_id", id), zap.Error(err))
}

func (s *Service) stockChanged(ctx context.Context, eventType string, p *salon.Product, delta int, reason string) {
	ev := salon.NewEnvelope(s.ServiceName, eventType, strconv.FormatInt(p.ID, 10), salon.StockChangedPayload{
		ProductID: p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		Delta:     delta,
		Reason:    reason,
	})
	s.Events.Publish(ctx, salon.TopicStockChanged, salon.ProductKey(p.ID), ev)
}
