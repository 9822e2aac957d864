// internal/api/handler/refresh_test.go
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidqio/marketlens/internal/api/response"
)

type stubRefreshApp struct {
	refreshed    []string
	refreshedAll bool
}

func (s *stubRefreshApp) Refresh(symbol string) { s.refreshed = append(s.refreshed, symbol) }
func (s *stubRefreshApp) RefreshAll()           { s.refreshedAll = true }
func (s *stubRefreshApp) CacheLen() int         { return 0 }

func TestRefreshHandler_SingleSymbol(t *testing.T) {
	app := &stubRefreshApp{}
	handler := NewRefreshHandler(app)

	req := httptest.NewRequest("POST", "/api/refresh?symbol=AAPL", nil)
	w := httptest.NewRecorder()

	handler.Refresh(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(app.refreshed) != 1 || app.refreshed[0] != "AAPL" {
		t.Errorf("expected AAPL refreshed, got %v", app.refreshed)
	}
	if app.refreshedAll {
		t.Error("did not expect full invalidation")
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	if data["refreshed"] != true {
		t.Error("expected refreshed to be true")
	}
}

func TestRefreshHandler_All(t *testing.T) {
	app := &stubRefreshApp{}
	handler := NewRefreshHandler(app)

	req := httptest.NewRequest("POST", "/api/refresh", nil)
	w := httptest.NewRecorder()

	handler.Refresh(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !app.refreshedAll {
		t.Error("expected full invalidation without symbol")
	}
}
