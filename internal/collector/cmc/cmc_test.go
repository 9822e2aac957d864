package cmc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidqio/marketlens/internal/core"
)

func TestSource_Name(t *testing.T) {
	s := New("")
	if s.Name() != "cmc" {
		t.Errorf("expected 'cmc', got '%s'", s.Name())
	}
}

func TestSymbolToID(t *testing.T) {
	tests := []struct {
		symbol string
		id     int
		ok     bool
	}{
		{"BTC", 1, true},
		{"btc", 1, true},
		{"ETH", 1027, true},
		{"SOL", 5426, true},
		{"NOPECOIN", 0, false},
	}

	for _, tc := range tests {
		id, ok := symbolToID(tc.symbol)
		if ok != tc.ok || id != tc.id {
			t.Errorf("symbolToID(%s) = (%d, %v), want (%d, %v)", tc.symbol, id, ok, tc.id, tc.ok)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	date, err := normalizeDate("2025-06-02T00:00:00.000Z")
	if err != nil {
		t.Fatalf("normalizeDate failed: %v", err)
	}
	if date != "2025-06-02" {
		t.Errorf("normalizeDate = %s, want 2025-06-02", date)
	}

	if _, err := normalizeDate("not-a-date"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestFetchSeries_NormalizesTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-CMC_PRO_API_KEY") != "test-key" {
			t.Error("missing API key header")
		}
		w.Write([]byte(`{
			"data": {
				"quotes": [
					{"timestamp": "2025-06-02T23:59:59.000Z", "quote": {"USD": {"price": 105000, "volume_24h": 31000000000}}},
					{"timestamp": "2025-06-03T23:59:59.000Z", "quote": {"USD": {"price": 106100, "open": 105000, "high": 106500, "low": 104800, "volume_24h": 29000000000}}}
				]
			}
		}`))
	}))
	defer srv.Close()

	s := NewWithBaseURL("test-key", srv.URL)
	series, err := s.FetchSeries(context.Background(), "BTC", 30)
	if err != nil {
		t.Fatalf("FetchSeries failed: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(series))
	}
	if series[0].Date != "2025-06-02" || series[1].Date != "2025-06-03" {
		t.Errorf("dates not normalized: %s, %s", series[0].Date, series[1].Date)
	}
	// Missing OHLC falls back to the period price.
	if series[0].Open != 105000 || series[0].High != 105000 {
		t.Errorf("OHLC fallback wrong: %+v", series[0])
	}
	// Present OHLC passes through.
	if series[1].Open != 105000 || series[1].High != 106500 {
		t.Errorf("explicit OHLC wrong: %+v", series[1])
	}
}

func TestFetchSeries_UnknownSymbol(t *testing.T) {
	s := New("k")
	if _, err := s.FetchSeries(context.Background(), "NOPECOIN", 30); err == nil {
		t.Error("expected error for unknown symbol")
	}
}

func TestFetchSeries_GlobalMarketCapIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/global-metrics/quotes/historical" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"data": {
				"quotes": [
					{"timestamp": "2025-06-02T00:00:00.000Z", "quote": {"USD": {"total_market_cap": 2500000000000, "total_volume_24h": 90000000000}}},
					{"timestamp": "2025-06-03T00:00:00.000Z", "quote": {"USD": {"total_market_cap": 2550000000000, "total_volume_24h": 95000000000}}}
				]
			}
		}`))
	}))
	defer srv.Close()

	s := NewWithBaseURL("k", srv.URL)
	series, err := s.FetchSeries(context.Background(), IndexGlobalMarketCap, 30)
	if err != nil {
		t.Fatalf("FetchSeries failed: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(series))
	}
	if series[0].Close != 2.5e12 {
		t.Errorf("Close = %f, want market cap", series[0].Close)
	}
	// Synthetic range is +-1% around market cap.
	if series[0].High != 2.5e12*1.01 || series[0].Low != 2.5e12*0.99 {
		t.Errorf("synthetic range wrong: high=%f low=%f", series[0].High, series[0].Low)
	}
}

func TestDedupeSorted(t *testing.T) {
	series := core.PriceSeries{
		{Date: "2025-06-03", Close: 2},
		{Date: "2025-06-02", Close: 1},
		{Date: "2025-06-03", Close: 3}, // later sample for same day wins
	}

	out := dedupeSorted(series)

	if len(out) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(out))
	}
	if out[0].Date != "2025-06-02" || out[1].Date != "2025-06-03" {
		t.Errorf("not sorted: %+v", out)
	}
	if out[1].Close != 3 {
		t.Errorf("dedupe kept %f, want the later sample 3", out[1].Close)
	}
}

func TestFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": {
				"BTC": {
					"name": "Bitcoin", "symbol": "BTC",
					"quote": {"USD": {"price": 105000.5, "volume_24h": 31000000000, "percent_change_24h": 1.8, "market_cap": 2080000000000}}
				}
			}
		}`))
	}))
	defer srv.Close()

	s := NewWithBaseURL("k", srv.URL)
	q, err := s.FetchQuote(context.Background(), "btc")
	if err != nil {
		t.Fatalf("FetchQuote failed: %v", err)
	}

	if q.Symbol != "BTC" || q.Price != 105000.5 {
		t.Errorf("quote mapped wrong: %+v", q)
	}
	if q.ChangePercent != 1.8 {
		t.Errorf("ChangePercent = %f, want 1.8", q.ChangePercent)
	}
	if q.Source != "cmc" {
		t.Errorf("Source = %s, want cmc", q.Source)
	}
}
