// internal/api/handler/compare.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/davidqio/marketlens/internal/analytics"
	"github.com/davidqio/marketlens/internal/api/response"
	"github.com/davidqio/marketlens/internal/core"
)

// CompareApp defines the interface needed from app.App.
type CompareApp interface {
	ComparePeers(ctx context.Context, typeA core.AssetType, symbolA string, typeB core.AssetType, symbolB string, days int, refresh bool) (analytics.PairComparison, error)
	CompareWithIndex(ctx context.Context, assetType core.AssetType, symbol string, indexType core.AssetType, indexSymbol string, days int, refresh bool) (analytics.IndexComparison, error)
}

// CompareHandler handles pairwise comparison API requests.
type CompareHandler struct {
	app CompareApp
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(app CompareApp) *CompareHandler {
	return &CompareHandler{app: app}
}

// Peers compares two assets over their overlapping dates.
// GET /api/compare?symbol_a=AAPL&symbol_b=MSFT&type_a=stock&type_b=stock&days=30
func (h *CompareHandler) Peers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbolA, symbolB := q.Get("symbol_a"), q.Get("symbol_b")
	if symbolA == "" || symbolB == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol_a and symbol_b are required")))
		return
	}

	typeA, ok := assetTypeParam(r, "type_a", core.AssetStock)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("unknown asset type %q", q.Get("type_a"))))
		return
	}
	typeB, ok := assetTypeParam(r, "type_b", core.AssetStock)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("unknown asset type %q", q.Get("type_b"))))
		return
	}
	days, ok := daysParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("days must be a positive integer")))
		return
	}

	cmp, err := h.app.ComparePeers(r.Context(), typeA, symbolA, typeB, symbolB, days, refreshParam(r))
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol_a":   symbolA,
		"symbol_b":   symbolB,
		"comparison": cmp,
	})
}

// Index compares an asset against a benchmark index.
// GET /api/compare/index?symbol=AAPL&index=^GSPC&type=stock&index_type=index
func (h *CompareHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbol, index := q.Get("symbol"), q.Get("index")
	if symbol == "" || index == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol and index are required")))
		return
	}

	assetType, ok := assetTypeParam(r, "type", core.AssetStock)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("unknown asset type %q", q.Get("type"))))
		return
	}
	indexType, ok := assetTypeParam(r, "index_type", core.AssetIndex)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("unknown asset type %q", q.Get("index_type"))))
		return
	}
	days, ok := daysParam(r)
	if !ok {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("days must be a positive integer")))
		return
	}

	cmp, err := h.app.CompareWithIndex(r.Context(), assetType, symbol, indexType, index, days, refreshParam(r))
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":     symbol,
		"index":      index,
		"comparison": cmp,
	})
}
