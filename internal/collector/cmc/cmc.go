// Package cmc fetches cryptocurrency price data from the CoinMarketCap API.
// It also serves the GLOBAL_MCAP pseudo-index, a price series synthesized
// from total-market-capitalization history.
package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/davidqio/marketlens/internal/core"
)

const baseURL = "https://pro-api.coinmarketcap.com/v1"

// IndexGlobalMarketCap is the composite index representing the whole
// crypto market, backed by the global-metrics endpoint.
const IndexGlobalMarketCap = "GLOBAL_MCAP"

// Symbol to CoinMarketCap numeric ID mapping
var symbolToIDMap = map[string]int{
	"BTC":   1,
	"LTC":   2,
	"XRP":   52,
	"DOGE":  74,
	"XLM":   512,
	"ETH":   1027,
	"BNB":   1839,
	"TRX":   1958,
	"LINK":  1975,
	"ADA":   2010,
	"ATOM":  3794,
	"MATIC": 3890,
	"SOL":   5426,
	"AVAX":  5805,
	"UNI":   7083,
	"DOT":   6636,
	"AAVE":  7278,
	"NEAR":  6535,
	"ARB":   11841,
	"OP":    11840,
}

// Source implements the CoinMarketCap price source
type Source struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// New creates a new CoinMarketCap source
func New(apiKey string) *Source {
	return &Source{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// NewWithBaseURL creates a CoinMarketCap source with custom base URL (for testing)
func NewWithBaseURL(apiKey, url string) *Source {
	s := New(apiKey)
	s.baseURL = url
	return s
}

func (s *Source) Name() string {
	return "cmc"
}

func (s *Source) SupportedAssets() []core.AssetType {
	return []core.AssetType{core.AssetCrypto, core.AssetCryptoIndex}
}

// symbolToID resolves a coin symbol to its CoinMarketCap ID
func symbolToID(symbol string) (int, bool) {
	id, ok := symbolToIDMap[strings.ToUpper(symbol)]
	return id, ok
}

func (s *Source) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.WrapError(core.ErrSourceFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// normalizeDate converts a CMC ISO timestamp to the canonical calendar-date
// string. CMC carries full timestamps while stock sources carry plain
// dates; without this the cross-source date join would silently be empty.
func normalizeDate(timestamp string) (string, error) {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "", fmt.Errorf("parsing timestamp %q: %w", timestamp, err)
	}
	return ts.UTC().Format(core.DateLayout), nil
}

type usdQuote struct {
	Price          float64 `json:"price"`
	Open           float64 `json:"open"`
	High           float64 `json:"high"`
	Low            float64 `json:"low"`
	Volume24H      float64 `json:"volume_24h"`
	TotalMarketCap float64 `json:"total_market_cap"`
	TotalVolume24H float64 `json:"total_volume_24h"`
	MarketCap      float64 `json:"market_cap"`
	PercentChange  float64 `json:"percent_change_24h"`
}

type historicalQuote struct {
	Timestamp string              `json:"timestamp"`
	Quote     map[string]usdQuote `json:"quote"`
}

type historicalResponse struct {
	Data struct {
		Quotes []historicalQuote `json:"quotes"`
	} `json:"data"`
}

// FetchSeries fetches daily price history for a coin. The index pseudo
// symbol routes to the global-metrics series instead.
func (s *Source) FetchSeries(ctx context.Context, symbol string, days int) (core.PriceSeries, error) {
	if strings.EqualFold(symbol, IndexGlobalMarketCap) {
		return s.fetchIndexSeries(ctx, days)
	}

	id, ok := symbolToID(symbol)
	if !ok {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("unknown coin symbol: %s", symbol))
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("id", fmt.Sprintf("%d", id))
	params.Set("time_start", start.Format(time.RFC3339))
	params.Set("time_end", end.Format(time.RFC3339))
	params.Set("interval", "1d")
	params.Set("convert", "USD")

	var result historicalResponse
	if err := s.get(ctx, "/cryptocurrency/quotes/historical", params, &result); err != nil {
		return nil, err
	}

	if len(result.Data.Quotes) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no historical data for %s", symbol))
	}

	series := make(core.PriceSeries, 0, len(result.Data.Quotes))
	for _, q := range result.Data.Quotes {
		usd, ok := q.Quote["USD"]
		if !ok {
			continue
		}
		date, err := normalizeDate(q.Timestamp)
		if err != nil {
			return nil, err
		}

		// Intraday OHLC may be absent from the quotes endpoint; the
		// period price stands in.
		bar := core.PriceBar{
			Date:   date,
			Open:   usd.Open,
			High:   usd.High,
			Low:    usd.Low,
			Close:  usd.Price,
			Volume: int64(usd.Volume24H),
		}
		if bar.Open == 0 {
			bar.Open = usd.Price
		}
		if bar.High == 0 {
			bar.High = usd.Price
		}
		if bar.Low == 0 {
			bar.Low = usd.Price
		}
		series = append(series, bar)
	}

	return dedupeSorted(series), nil
}

// fetchIndexSeries builds a market-cap index series from global metrics.
// Global metrics has no OHLC, so market cap stands in for open/close with
// a +-1% band as the synthetic daily range.
func (s *Source) fetchIndexSeries(ctx context.Context, days int) (core.PriceSeries, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("time_start", start.Format(core.DateLayout))
	params.Set("time_end", end.Format(core.DateLayout))
	params.Set("interval", "daily")

	var result historicalResponse
	if err := s.get(ctx, "/global-metrics/quotes/historical", params, &result); err != nil {
		return nil, err
	}

	if len(result.Data.Quotes) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no global metrics data"))
	}

	series := make(core.PriceSeries, 0, len(result.Data.Quotes))
	for _, q := range result.Data.Quotes {
		usd, ok := q.Quote["USD"]
		if !ok {
			continue
		}
		date, err := normalizeDate(q.Timestamp)
		if err != nil {
			return nil, err
		}

		mcap := usd.TotalMarketCap
		series = append(series, core.PriceBar{
			Date:   date,
			Open:   mcap,
			High:   mcap * 1.01,
			Low:    mcap * 0.99,
			Close:  mcap,
			Volume: int64(usd.TotalVolume24H),
		})
	}

	return dedupeSorted(series), nil
}

// dedupeSorted sorts ascending by date and keeps the last bar per date, so
// sub-daily samples collapse to one bar per calendar day.
func dedupeSorted(series core.PriceSeries) core.PriceSeries {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	out := series[:0]
	for _, bar := range series {
		if len(out) > 0 && out[len(out)-1].Date == bar.Date {
			out[len(out)-1] = bar
			continue
		}
		out = append(out, bar)
	}
	return out
}

type latestQuoteResponse struct {
	Data map[string]struct {
		Name   string              `json:"name"`
		Symbol string              `json:"symbol"`
		Quote  map[string]usdQuote `json:"quote"`
	} `json:"data"`
}

// FetchQuote fetches the latest quote for a coin
func (s *Source) FetchQuote(ctx context.Context, symbol string) (*core.Quote, error) {
	upper := strings.ToUpper(symbol)
	if _, ok := symbolToID(upper); !ok {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("unknown coin symbol: %s", symbol))
	}

	params := url.Values{}
	params.Set("symbol", upper)
	params.Set("convert", "USD")

	var result latestQuoteResponse
	if err := s.get(ctx, "/cryptocurrency/quotes/latest", params, &result); err != nil {
		return nil, err
	}

	coin, ok := result.Data[upper]
	if !ok {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no quote for %s", symbol))
	}
	usd, ok := coin.Quote["USD"]
	if !ok {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no USD quote for %s", symbol))
	}

	return &core.Quote{
		Symbol:        coin.Symbol,
		Name:          coin.Name,
		Price:         usd.Price,
		Volume:        int64(usd.Volume24H),
		ChangePercent: usd.PercentChange,
		MarketCap:     usd.MarketCap,
		Time:          time.Now().UTC(),
		Source:        "cmc",
	}, nil
}
