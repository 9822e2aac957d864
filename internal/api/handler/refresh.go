// internal/api/handler/refresh.go
package handler

import (
	"net/http"

	"github.com/davidqio/marketlens/internal/api/response"
)

// RefreshApp defines the interface needed from app.App.
type RefreshApp interface {
	Refresh(symbol string)
	RefreshAll()
	CacheLen() int
}

// RefreshHandler handles cache invalidation API requests.
type RefreshHandler struct {
	app RefreshApp
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(app RefreshApp) *RefreshHandler {
	return &RefreshHandler{app: app}
}

// Refresh drops cached series, for one symbol or all of them.
// POST /api/refresh?symbol=AAPL
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.app.RefreshAll()
	} else {
		h.app.Refresh(symbol)
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"refreshed":     true,
		"symbol":        symbol,
		"cache_entries": h.app.CacheLen(),
	})
}
