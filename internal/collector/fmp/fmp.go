// Package fmp fetches stock and stock-index price data from the
// Financial Modeling Prep API.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"time"

	"github.com/davidqio/marketlens/internal/core"
)

const baseURL = "https://financialmodelingprep.com/api/v3"

// validSymbol matches stock and index symbols like AAPL, BRK.B, ^GSPC
var validSymbol = regexp.MustCompile(`^\^?[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateSymbol checks if a symbol has valid format
func validateSymbol(symbol string) error {
	if symbol == "" {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol cannot be empty"))
	}
	if len(symbol) > 20 {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol too long: %s", symbol))
	}
	if !validSymbol.MatchString(symbol) {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("invalid symbol format: %s", symbol))
	}
	return nil
}

// Source implements the Financial Modeling Prep price source
type Source struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New creates a new FMP source
func New(apiKey string) *Source {
	return &Source{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// NewWithBaseURL creates an FMP source with custom base URL (for testing)
func NewWithBaseURL(apiKey, url string) *Source {
	s := New(apiKey)
	s.baseURL = url
	return s
}

func (s *Source) Name() string {
	return "fmp"
}

func (s *Source) SupportedAssets() []core.AssetType {
	return []core.AssetType{core.AssetStock, core.AssetIndex}
}

type historicalBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

type historicalResponse struct {
	Symbol     string          `json:"symbol"`
	Historical []historicalBar `json:"historical"`
}

type quoteItem struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Open              float64 `json:"open"`
	DayHigh           float64 `json:"dayHigh"`
	DayLow            float64 `json:"dayLow"`
	PreviousClose     float64 `json:"previousClose"`
	Volume            int64   `json:"volume"`
	MarketCap         float64 `json:"marketCap"`
	Timestamp         int64   `json:"timestamp"`
}

// FetchSeries fetches a daily price series for the trailing lookback window.
// FMP returns bars newest first with plain YYYY-MM-DD dates; the result is
// re-sorted ascending so the dates join directly against other series.
func (s *Source) FetchSeries(ctx context.Context, symbol string, days int) (core.PriceSeries, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/historical-price-full/%s?timeseries=%d&apikey=%s",
		s.baseURL, symbol, days, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result historicalResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Historical) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no historical data for %s", symbol))
	}

	series := make(core.PriceSeries, 0, len(result.Historical))
	for _, bar := range result.Historical {
		series = append(series, core.PriceBar{
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series, nil
}

// FetchQuote fetches the current quote for a symbol
func (s *Source) FetchQuote(ctx context.Context, symbol string) (*core.Quote, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/quote/%s?apikey=%s", s.baseURL, symbol, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result []quoteItem
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result) == 0 {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("no quote for %s", symbol))
	}

	q := result[0]
	return &core.Quote{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         q.Price,
		Open:          q.Open,
		High:          q.DayHigh,
		Low:           q.DayLow,
		PreviousClose: q.PreviousClose,
		Volume:        q.Volume,
		ChangePercent: q.ChangesPercentage,
		MarketCap:     q.MarketCap,
		Time:          time.Unix(q.Timestamp, 0),
		Source:        "fmp",
	}, nil
}
