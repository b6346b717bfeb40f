package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
)

// GET /cart-stats/{cartID} (200 OK, 404 Not found)

type CartStats struct {
	CartID     string    `json:"cartId"`
	TotalItems int       `json:"totalItems"`
	LastKind   string    `json:"lastKind"`
	Events     int64     `json:"events"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CartStatsHandler struct {
	stats port.CartStatsReader
}

func RegisterCartStats(mux *http.ServeMux, stats port.CartStatsReader) {
	h := CartStatsHandler{stats}
	mux.HandleFunc("GET /cart-stats/{cartID}", h.GetCartStats)
}

func (h CartStatsHandler) GetCartStats(w http.ResponseWriter, r *http.Request) {
	const op = "CartStatsHandler.GetCartStats"
	log := slog.With("op", op)

	s, err := h.stats.CartStats(r.Context(), r.PathValue("cartID"))
	if err != nil {
		if errors.Is(err, domain.ErrCartStatsNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read cart stats", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, CartStats{
		CartID:     s.CartID,
		TotalItems: s.TotalItems,
		LastKind:   string(s.LastKind),
		Events:     s.Events,
		UpdatedAt:  s.UpdatedAt,
	})
}
