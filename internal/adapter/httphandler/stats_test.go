package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/shopfront/internal/adapter/httphandler"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatsReader map[string]domain.CartStats

func (r stubStatsReader) CartStats(
	_ context.Context, cartID string,
) (domain.CartStats, error) {
	if cartID == "broken" {
		return domain.CartStats{}, errors.New("view is not ready")
	}
	s, ok := r[cartID]
	if !ok {
		return domain.CartStats{}, fmt.Errorf("get: %w", domain.ErrCartStatsNotFound)
	}
	return s, nil
}

func TestGetCartStats(t *testing.T) {
	updated := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	httphandler.RegisterCartStats(mux, stubStatsReader{
		"c1": {
			CartID: "c1", TotalItems: 3, LastKind: domain.CartEventAdded,
			Events: 4, UpdatedAt: updated,
		},
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/cart-stats/c1")
	require.Equal(t, http.StatusOK, w.Code)
	var s httphandler.CartStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, "c1", s.CartID)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, "added", s.LastKind)
	assert.Equal(t, int64(4), s.Events)
	assert.True(t, updated.Equal(s.UpdatedAt))

	assert.Equal(t, http.StatusNotFound, get("/cart-stats/unknown").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/cart-stats/broken").Code)
}
