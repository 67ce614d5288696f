package httpx

import (
	"context"
	"github.com/ariefcatur/go-salon-orders/internal/revenue"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/go-chi/chi/v5"
	"net/http"
	"time"
)

type RevenueHandler struct {
	Reporter *revenue.Reporter
}

type revenueLine struct {
	Order salon.Order `json:"order"`
	Value string      `json:"value"`
}

type revenueResp struct {
	Orders    []revenueLine `json:"orders"`
	Total     string        `json:"total"`
	Formatted string        `json:"formatted"`
}

func (h *RevenueHandler) Register(r chi.Router) {
	r.Get("/revenue", h.get)
}

func (h *RevenueHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rep, err := h.Reporter.TotalDelivered(ctx)
	if err != nil {
		writeServiceError(w, err, "revenue")
		return
	}

	resp := revenueResp{
		Orders:    make([]revenueLine, 0, len(rep.Lines)),
		Total:     rep.Total.StringFixed(2),
		Formatted: revenue.Format(rep.Total),
	}
	for _, l := range rep.Lines {
		resp.Orders = append(resp.Orders, revenueLine{Order: l.Order, Value: l.Value.StringFixed(2)})
	}
	writeJSON(w, http.StatusOK, resp)
}
