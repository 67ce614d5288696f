package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ariefcatur/go-salon-orders/internal/salon"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
)

var validate = validator.New()

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, apiError{Error: code, Message: message, Details: details})
}

// writeServiceError maps domain errors to status codes. what names the
// resource in not-found and internal error messages.
func writeServiceError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, salon.ErrNoProductSelected):
		writeError(w, http.StatusBadRequest, "no_product_selected", salon.ErrNoProductSelected.Error(), nil)
	case errors.Is(err, salon.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, salon.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", what+" not found", nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to handle "+what, nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json body", map[string]any{"error": err.Error()})
		return false
	}
	if err := dec.Decode(&struct{}{}); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json body", map[string]any{"error": "extra data after json"})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fmt.Sprintf("failed on %s", fe.Tag())
			}
			writeError(w, http.StatusBadRequest, "invalid_input", "request validation failed", fields)
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request, what string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid "+what+" id", nil)
		return 0, false
	}
	return id, true
}
