package httpx

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
	"time"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Handlers groups every area of the API.
type Handlers struct {
	Profile  *ProfileHandler
	Products *ProductsHandler
	Orders   *OrdersHandler
	Revenue  *RevenueHandler
}

func (h *Handlers) Register(r chi.Router) {
	h.Profile.Register(r)
	h.Products.Register(r)
	h.Orders.Register(r)
	h.Revenue.Register(r)
}
