package httpx

import (
	"context"
	"errors"
	"github.com/ariefcatur/go-salon-orders/internal/redisx"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/ariefcatur/go-salon-orders/internal/schedule"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"net/http"
	"strconv"
	"time"
)

const headerIdempotencyKey = "Idempotency-Key"

type OrdersHandler struct {
	Schedule *schedule.Service
	Idem     *redisx.Idempotency // optional
	Log      *zap.Logger
}

// CreateOrderReq.ProductID is the picker choice; leaving it out is the
// "no product selected" error.
type CreateOrderReq struct {
	OrderDate    string `json:"order_date" validate:"max=32"`
	DeliveryDate string `json:"delivery_date" validate:"max=32"`
	OrderValue   string `json:"order_value" validate:"max=32"`
	ProductID    *int64 `json:"product_id"`
	Status       string `json:"status" validate:"omitempty,oneof=pending delivered"`
}

// UpdateOrderReq keeps the order's product name when ProductUsed is empty.
type UpdateOrderReq struct {
	OrderDate    string `json:"order_date" validate:"max=32"`
	DeliveryDate string `json:"delivery_date" validate:"max=32"`
	OrderValue   string `json:"order_value" validate:"max=32"`
	ProductUsed  string `json:"product_used" validate:"max=200"`
	Status       string `json:"status" validate:"required,oneof=pending delivered"`
}

type CreateOrderResp struct {
	Order      *salon.Order   `json:"order"`
	Product    *salon.Product `json:"product,omitempty"`
	Idempotent bool           `json:"idempotent"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/picker", h.picker)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Post("/{id}/finalize", h.finalize)
		r.Delete("/{id}", h.delete)
	})
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	var (
		orders []salon.Order
		err    error
	)
	if q := r.URL.Query().Get("status"); q != "" {
		status, perr := salon.ParseStatus(q)
		if perr != nil {
			writeServiceError(w, perr, "orders")
			return
		}
		orders, err = h.Schedule.ListByStatus(ctx, status)
	} else {
		orders, err = h.Schedule.List(ctx)
	}
	if err != nil {
		writeServiceError(w, err, "orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) picker(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	products, err := h.Schedule.Picker(ctx)
	if err != nil {
		writeServiceError(w, err, "products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "order")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Schedule.Get(ctx, id)
	if err != nil {
		writeServiceError(w, err, "order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := salon.ParseStatus(req.Status)
	if err != nil {
		writeServiceError(w, err, "order")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	idemKey := r.Header.Get(headerIdempotencyKey)
	useKey := h.Idem != nil && idemKey != ""
	if useKey {
		prior, reserved, err := h.reserve(ctx, idemKey)
		switch {
		case errors.Is(err, redisx.ErrInFlight):
			writeError(w, http.StatusConflict, "conflict", err.Error(), nil)
			return
		case err != nil:
			h.Log.Warn("idempotency unavailable", zap.String("key", idemKey), zap.Error(err))
			useKey = false
		case !reserved:
			writeJSON(w, http.StatusOK, CreateOrderResp{Order: prior, Idempotent: true})
			return
		}
	}

	o, p, err := h.createOrder(ctx, req, status)
	if err != nil {
		if useKey {
			if rerr := h.Idem.Release(ctx, idemKey); rerr != nil {
				h.Log.Warn("idempotency key not released", zap.String("key", idemKey), zap.Error(rerr))
			}
		}
		writeServiceError(w, err, "order")
		return
	}

	if useKey {
		if err := h.Idem.Remember(ctx, idemKey, o.ID); err != nil {
			h.Log.Warn("idempotency key not stored", zap.String("key", idemKey), zap.Error(err))
		}
	}

	w.Header().Set("Location", "/orders/"+strconv.FormatInt(o.ID, 10))
	writeJSON(w, http.StatusCreated, CreateOrderResp{Order: o, Product: p})
}

func (h *OrdersHandler) createOrder(ctx context.Context, req CreateOrderReq, status salon.Status) (*salon.Order, *salon.Product, error) {
	product, err := h.Schedule.SelectProduct(ctx, req.ProductID)
	if err != nil {
		return nil, nil, err
	}
	return h.Schedule.Create(ctx, salon.OrderInput{
		OrderDate:    salon.FormatDateInput(req.OrderDate),
		DeliveryDate: salon.FormatDateInput(req.DeliveryDate),
		OrderValue:   req.OrderValue,
	}, product, status)
}

// reserve claims key before anything is written. If the key already names an
// order, that order is returned; if the order was deleted since, the key is
// freed and claimed again.
func (h *OrdersHandler) reserve(ctx context.Context, key string) (*salon.Order, bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		id, reserved, err := h.Idem.Reserve(ctx, key)
		if err != nil || reserved {
			return nil, reserved, err
		}
		o, err := h.Schedule.Get(ctx, id)
		if err == nil {
			return o, false, nil
		}
		if !errors.Is(err, salon.ErrNotFound) {
			return nil, false, err
		}
		if err := h.Idem.Forget(ctx, key, id); err != nil {
			return nil, false, err
		}
	}
	return nil, false, redisx.ErrInFlight
}

func (h *OrdersHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "order")
	if !ok {
		return
	}
	var req UpdateOrderReq
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := salon.ParseStatus(req.Status)
	if err != nil {
		writeServiceError(w, err, "order")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productUsed := req.ProductUsed
	if productUsed == "" {
		cur, err := h.Schedule.Get(ctx, id)
		if err != nil {
			writeServiceError(w, err, "order")
			return
		}
		productUsed = cur.ProductUsed
	}

	o, err := h.Schedule.Update(ctx, id, salon.OrderInput{
		OrderDate:    salon.FormatDateInput(req.OrderDate),
		DeliveryDate: salon.FormatDateInput(req.DeliveryDate),
		OrderValue:   req.OrderValue,
		ProductUsed:  productUsed,
	}, status)
	if err != nil {
		writeServiceError(w, err, "order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "order")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Schedule.Finalize(ctx, id)
	if err != nil {
		writeServiceError(w, err, "order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "order")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Schedule.Delete(ctx, id); err != nil {
		writeServiceError(w, err, "order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
