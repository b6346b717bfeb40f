package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/shopfront/internal/adapter/api"
	"github.com/niksmo/shopfront/internal/core/service"
)

// maxBodyBytes bounds cart request bodies.
const maxBodyBytes = 4 << 10

// decodeBody writes the rejection itself and reports false on failure.
func decodeBody(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, v any,
) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		log.Warn("request body too large", "limit", tooLarge.Limit)
		return false
	}
	http.Error(w, "invalid JSON data", http.StatusBadRequest)
	log.Warn("failed to parse JSON", "err", err)
	return false
}

func cartID(r *http.Request) string {
	if id := r.Header.Get(api.CartIDHeader); id != "" {
		return id
	}
	return service.DefaultCartID
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status, msg := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Warn("request rejected", "err", err)
	}
	http.Error(w, msg, status)
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound, service.ErrProductNotFound.Error()
	case errors.Is(err, service.ErrOutOfStock):
		return http.StatusConflict, service.ErrOutOfStock.Error()
	case errors.Is(err, service.ErrUnknownVariant):
		return http.StatusBadRequest, service.ErrUnknownVariant.Error()
	case errors.Is(err, service.ErrCatalogNotReady):
		return http.StatusServiceUnavailable, service.ErrCatalogNotReady.Error()
	case errors.Is(err, service.ErrCatalogLoad):
		return http.StatusServiceUnavailable, service.ErrCatalogLoad.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
