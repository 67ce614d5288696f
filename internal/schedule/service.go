package schedule

import (
	"context"
	"errors"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"go.uber.org/zap"
	"strconv"
)

// cacheInvalidator is satisfied by the Redis product cache.
type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// Service is the schedule manager. Creating an order takes one unit of the
// chosen product's stock; nothing ever gives it back.
type Service struct {
	Orders      salon.OrderStore
	Products    salon.ProductStore
	Events      salon.Publisher
	Cache       cacheInvalidator // optional
	Log         *zap.Logger
	ServiceName string
}

func NewService(orders salon.OrderStore, products salon.ProductStore, events salon.Publisher, log *zap.Logger, serviceName string) *Service {
	if events == nil {
		events = salon.NopPublisher{}
	}
	return &Service{Orders: orders, Products: products, Events: events, Log: log, ServiceName: serviceName}
}

func (s *Service) List(ctx context.Context) ([]salon.Order, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		s.Log.Error("list orders failed", zap.Error(err))
	}
	return orders, err
}

func (s *Service) ListByStatus(ctx context.Context, status salon.Status) ([]salon.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return salon.FilterByStatus(orders, status), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*salon.Order, error) {
	return s.Orders.Get(ctx, id)
}

// Picker lists the products an order may be placed against. The list is a
// snapshot; stock can change before the order is saved.
func (s *Service) Picker(ctx context.Context) ([]salon.Product, error) {
	products, err := s.Products.ListInStock(ctx)
	if err != nil {
		s.Log.Error("list picker products failed", zap.Error(err))
	}
	return products, err
}

// SelectProduct resolves a picker choice. A nil id means nothing was chosen.
func (s *Service) SelectProduct(ctx context.Context, id *int64) (*salon.Product, error) {
	if id == nil {
		return nil, salon.ErrNoProductSelected
	}
	return s.Products.Get(ctx, *id)
}

// Create records a new order against product with the given status and takes
// one unit of its stock. A nil product is rejected before anything is written.
func (s *Service) Create(ctx context.Context, in salon.OrderInput, product *salon.Product, status salon.Status) (*salon.Order, *salon.Product, error) {
	if product == nil {
		return nil, nil, salon.ErrNoProductSelected
	}

	o, p, err := s.Orders.CreateWithStock(ctx, in, status.Delivered(), product.ID)
	if err != nil {
		if !errors.Is(err, salon.ErrNotFound) {
			s.Log.Error("create order failed", zap.Int64("product_id", product.ID), zap.Error(err))
		}
		return nil, nil, err
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}

	s.Events.Publish(ctx, salon.TopicOrderCreated, salon.OrderKey(o.ID),
		salon.NewEnvelope(s.ServiceName, salon.EventOrderCreated, strconv.FormatInt(o.ID, 10), salon.OrderCreatedPayload{
			OrderID:     o.ID,
			ProductID:   p.ID,
			ProductUsed: o.ProductUsed,
			OrderValue:  o.OrderValue,
			Delivered:   o.Delivered,
		}))
	s.Events.Publish(ctx, salon.TopicStockChanged, salon.ProductKey(p.ID),
		salon.NewEnvelope(s.ServiceName, salon.EventStockChanged, strconv.FormatInt(o.ID, 10), salon.StockChangedPayload{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			Delta:     -1,
			Reason:    salon.ReasonOrder,
		}))

	return o, p, nil
}

// Update overwrites every field of the order, status included. Stock is not
// touched.
func (s *Service) Update(ctx context.Context, id int64, in salon.OrderInput, status salon.Status) (*salon.Order, error) {
	if in.ProductUsed == "" {
		return nil, salon.ErrNoProductSelected
	}
	o, err := s.Orders.Update(ctx, id, in, status.Delivered())
	if err != nil {
		if !errors.Is(err, salon.ErrNotFound) {
			s.Log.Error("update order failed", zap.Int64("order_id", id), zap.Error(err))
		}
		return nil, err
	}
	return o, nil
}

// Finalize marks the order delivered. Finalizing a delivered order is a
// no-op and publishes nothing.
func (s *Service) Finalize(ctx context.Context, id int64) (*salon.Order, error) {
	cur, err := s.Orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Status() == salon.StatusDelivered {
		return cur, nil
	}

	o, err := s.Orders.MarkDelivered(ctx, id)
	if err != nil {
		if !errors.Is(err, salon.ErrNotFound) {
			s.Log.Error("finalize order failed", zap.Int64("order_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.Events.Publish(ctx, salon.TopicOrderFinalized, salon.OrderKey(o.ID),
		salon.NewEnvelope(s.ServiceName, salon.EventOrderFinalized, strconv.FormatInt(o.ID, 10), salon.OrderFinalizedPayload{
			OrderID:    o.ID,
			OrderValue: o.OrderValue,
		}))
	return o, nil
}

// Delete removes the order without returning its stock.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Orders.Delete(ctx, id); err != nil {
		if !errors.Is(err, salon.ErrNotFound) {
			s.Log.Error("delete order failed", zap.Int64("order_id", id), zap.Error(err))
		}
		return err
	}
	return nil
}
