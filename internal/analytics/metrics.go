// Package analytics holds the pure numerical routines behind the dashboard:
// per-asset summary metrics and cross-asset comparison statistics. Every
// function is stateless and allocation-fresh, so concurrent callers need no
// coordination.
package analytics

import "github.com/davidqio/marketlens/internal/core"

// Trailing windows, in bars. A year is approximated by 252 trading days.
const (
	fiftyDayWindow      = 50
	twoHundredDayWindow = 200
	yearWindow          = 252
)

// AssetMetrics summarizes a single price series. All fields are zero when
// the input series is empty; that is a defined sentinel, not an error.
type AssetMetrics struct {
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
	Close            float64 `json:"close"`
	Volume           int64   `json:"volume"`
	PreviousClose    float64 `json:"previous_close"`
	FiftyDayAvg      float64 `json:"fifty_day_avg"`
	TwoHundredDayAvg float64 `json:"two_hundred_day_avg"`
	YearHigh         float64 `json:"year_high"`
	YearLow          float64 `json:"year_low"`
}

// ComputeMetrics derives summary metrics from a daily price series ordered
// ascending by date. The latest bar supplies the OHLCV fields; moving
// averages and the 52-week range shrink to the available history when the
// series is shorter than their windows.
func ComputeMetrics(series core.PriceSeries) AssetMetrics {
	latest, ok := series.Last()
	if !ok {
		return AssetMetrics{}
	}

	var previousClose float64
	if len(series) > 1 {
		previousClose = series[len(series)-2].Close
	}

	yearTail := series.Tail(yearWindow)
	yearHigh := yearTail[0].High
	yearLow := yearTail[0].Low
	for _, bar := range yearTail[1:] {
		if bar.High > yearHigh {
			yearHigh = bar.High
		}
		if bar.Low < yearLow {
			yearLow = bar.Low
		}
	}

	return AssetMetrics{
		Open:             latest.Open,
		High:             latest.High,
		Low:              latest.Low,
		Close:            latest.Close,
		Volume:           latest.Volume,
		PreviousClose:    previousClose,
		FiftyDayAvg:      mean(series.Tail(fiftyDayWindow).Closes()),
		TwoHundredDayAvg: mean(series.Tail(twoHundredDayWindow).Closes()),
		YearHigh:         yearHigh,
		YearLow:          yearLow,
	}
}
