// internal/api/handler/assets.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/davidqio/marketlens/internal/analytics"
	"github.com/davidqio/marketlens/internal/api/response"
	"github.com/davidqio/marketlens/internal/core"
)

// AssetsApp defines the interface needed from app.App.
type AssetsApp interface {
	AssetMetrics(ctx context.Context, assetType core.AssetType, symbol string, days int, refresh bool) (analytics.AssetMetrics, error)
	Quote(ctx context.Context, assetType core.AssetType, symbol string) (*core.Quote, error)
}

// AssetsHandler handles single-asset API requests.
type AssetsHandler struct {
	app AssetsApp
}

// NewAssetsHandler creates a new assets handler.
func NewAssetsHandler(app AssetsApp) *AssetsHandler {
	return &AssetsHandler{app: app}
}

// Metrics returns the computed metrics for one symbol.
// GET /api/assets/{symbol}/metrics?type=stock&days=30&refresh=true
func (h *AssetsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if symbol == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol is required")))
		return
	}

	assetType, ok := assetTypeParam(r, "type", core.AssetStock)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("unknown asset type %q", r.URL.Query().Get("type"))))
		return
	}
	days, ok := daysParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("days must be a positive integer")))
		return
	}

	metrics, err := h.app.AssetMetrics(r.Context(), assetType, symbol, days, refreshParam(r))
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"type":    assetType,
		"metrics": metrics,
	})
}

// Quote returns the latest live quote for one symbol.
// GET /api/assets/{symbol}/quote?type=stock
func (h *AssetsHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	if symbol == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol is required")))
		return
	}

	assetType, ok := assetTypeParam(r, "type", core.AssetStock)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("unknown asset type %q", r.URL.Query().Get("type"))))
		return
	}

	quote, err := h.app.Quote(r.Context(), assetType, symbol)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, quote)
}
