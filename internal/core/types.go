package core

import "time"

// DateLayout is the canonical calendar-date format used as the join key
// across price series. Every source normalizes its timestamps to this
// layout before a series leaves the collector.
const DateLayout = "2006-01-02"

// AssetType represents the type of financial asset
type AssetType string

const (
	AssetStock       AssetType = "stock"
	AssetCrypto      AssetType = "crypto"
	AssetIndex       AssetType = "index"
	AssetCryptoIndex AssetType = "crypto_index"
)

// ParseAssetType maps a string to a known AssetType.
func ParseAssetType(s string) (AssetType, bool) {
	switch t := AssetType(s); t {
	case AssetStock, AssetCrypto, AssetIndex, AssetCryptoIndex:
		return t, true
	}
	return "", false
}

// Quote represents a real-time price quote
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	Open          float64
	High          float64
	Low           float64
	PreviousClose float64
	Volume        int64
	ChangePercent float64
	MarketCap     float64
	Time          time.Time
	Source        string
}

// IsValid checks if the quote has required fields
func (q Quote) IsValid() bool {
	return q.Symbol != "" && q.Price > 0
}

// PriceBar is one calendar day's OHLCV data for one symbol.
// Date is a calendar-date string in DateLayout so that bars from
// different vendors compare exactly, never through floating point.
type PriceBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// PriceSeries is an ordered sequence of daily bars for one symbol,
// ascending by date with no duplicate dates. A series may be empty.
// Callers treat a series as immutable once handed to analytics.
type PriceSeries []PriceBar

// Last returns the most recent bar. ok is false for an empty series.
func (s PriceSeries) Last() (bar PriceBar, ok bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the trailing min(n, len) bars without copying.
func (s PriceSeries) Tail(n int) PriceSeries {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Closes returns the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Clone returns a deep copy so cached series stay immutable.
func (s PriceSeries) Clone() PriceSeries {
	if s == nil {
		return nil
	}
	out := make(PriceSeries, len(s))
	copy(out, s)
	return out
}
