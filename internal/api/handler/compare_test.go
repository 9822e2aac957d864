// internal/api/handler/compare_test.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidqio/marketlens/internal/analytics"
	"github.com/davidqio/marketlens/internal/api/response"
	"github.com/davidqio/marketlens/internal/core"
)

type stubCompareApp struct {
	pair  analytics.PairComparison
	index analytics.IndexComparison
	err   error

	gotSymbols []string
	gotTypes   []core.AssetType
}

func (s *stubCompareApp) ComparePeers(ctx context.Context, typeA core.AssetType, symbolA string, typeB core.AssetType, symbolB string, days int, refresh bool) (analytics.PairComparison, error) {
	s.gotSymbols = []string{symbolA, symbolB}
	s.gotTypes = []core.AssetType{typeA, typeB}
	return s.pair, s.err
}

func (s *stubCompareApp) CompareWithIndex(ctx context.Context, assetType core.AssetType, symbol string, indexType core.AssetType, indexSymbol string, days int, refresh bool) (analytics.IndexComparison, error) {
	s.gotSymbols = []string{symbol, indexSymbol}
	s.gotTypes = []core.AssetType{assetType, indexType}
	return s.index, s.err
}

func TestCompareHandler_Peers(t *testing.T) {
	app := &stubCompareApp{
		pair: analytics.PairComparison{Correlation: 0.87, RelativePerformance: 3.21, VolatilityRatio: 1.15},
	}
	handler := NewCompareHandler(app)

	req := httptest.NewRequest("GET", "/api/compare?symbol_a=AAPL&symbol_b=BTC&type_b=crypto", nil)
	w := httptest.NewRecorder()

	handler.Peers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if app.gotTypes[0] != core.AssetStock || app.gotTypes[1] != core.AssetCrypto {
		t.Errorf("expected types [stock crypto], got %v", app.gotTypes)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	cmp := data["comparison"].(map[string]any)
	if cmp["correlation"].(float64) != 0.87 {
		t.Errorf("expected correlation 0.87, got %v", cmp["correlation"])
	}
}

func TestCompareHandler_Peers_MissingSymbol(t *testing.T) {
	handler := NewCompareHandler(&stubCompareApp{})

	req := httptest.NewRequest("GET", "/api/compare?symbol_a=AAPL", nil)
	w := httptest.NewRecorder()

	handler.Peers(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when symbol_b missing, got %d", w.Code)
	}
}

func TestCompareHandler_Index(t *testing.T) {
	app := &stubCompareApp{
		index: analytics.IndexComparison{Correlation: 0.95, Alpha: -1.2, Beta: 1.1},
	}
	handler := NewCompareHandler(app)

	req := httptest.NewRequest("GET", "/api/compare/index?symbol=AAPL&index=%5EGSPC", nil)
	w := httptest.NewRecorder()

	handler.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if app.gotSymbols[1] != "^GSPC" {
		t.Errorf("expected index ^GSPC, got %s", app.gotSymbols[1])
	}
	if app.gotTypes[1] != core.AssetIndex {
		t.Errorf("expected default index type, got %s", app.gotTypes[1])
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	cmp := data["comparison"].(map[string]any)
	if cmp["beta"].(float64) != 1.1 {
		t.Errorf("expected beta 1.1, got %v", cmp["beta"])
	}
}

func TestCompareHandler_Index_SourceFailed(t *testing.T) {
	app := &stubCompareApp{err: core.WrapError(core.ErrSourceFailed, nil)}
	handler := NewCompareHandler(app)

	req := httptest.NewRequest("GET", "/api/compare/index?symbol=AAPL&index=%5EGSPC", nil)
	w := httptest.NewRecorder()

	handler.Index(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}
