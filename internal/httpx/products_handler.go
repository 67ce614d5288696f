package httpx

import (
	"context"
	"encoding/json"
	"github.com/ariefcatur/go-salon-orders/internal/inventory"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/go-chi/chi/v5"
	"net/http"
	"strconv"
	"time"
)

type ProductsHandler struct {
	Inventory *inventory.Service
}

// ProductRequest.Stock takes a JSON number or a numeric string.
type ProductRequest struct {
	Name  string      `json:"name" validate:"max=200"`
	Stock json.Number `json:"stock"`
	Color string      `json:"color" validate:"max=100"`
}

type StockRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

func (h *ProductsHandler) Register(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Patch("/{id}/stock", h.adjustStock)
		r.Delete("/{id}", h.delete)
	})
}

func (req ProductRequest) input() (salon.ProductInput, error) {
	stock, err := salon.ParseStock(string(req.Stock))
	if err != nil {
		return salon.ProductInput{}, err
	}
	return salon.ProductInput{Name: req.Name, Stock: stock, Color: req.Color}, nil
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	products, err := h.Inventory.List(ctx)
	if err != nil {
		writeServiceError(w, err, "products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "product")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Inventory.Get(ctx, id)
	if err != nil {
		writeServiceError(w, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeServiceError(w, err, "product")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Inventory.Create(ctx, in)
	if err != nil {
		writeServiceError(w, err, "product")
		return
	}
	w.Header().Set("Location", "/products/"+strconv.FormatInt(p.ID, 10))
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "product")
	if !ok {
		return
	}
	var req ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		writeServiceError(w, err, "product")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Inventory.Update(ctx, id, in)
	if err != nil {
		writeServiceError(w, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "product")
	if !ok {
		return
	}
	var req StockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Inventory.AdjustStock(ctx, id, req.Delta)
	if err != nil {
		writeServiceError(w, err, "product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "product")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Inventory.Delete(ctx, id); err != nil {
		writeServiceError(w, err, "product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
