package httpx

import (
	"github.com/ariefcatur/go-salon-orders/internal/profile"
	"github.com/go-chi/chi/v5"
	"net/http"
)

type ProfileHandler struct {
	Profile profile.Profile
}

func (h *ProfileHandler) Register(r chi.Router) {
	r.Get("/profile", h.get)
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Profile)
}
