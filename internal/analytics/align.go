package analytics

import "github.com/davidqio/marketlens/internal/core"

// alignCloses inner-joins two series on exact date equality and returns the
// paired closing prices in a's chronological order. Dates present in only
// one series are discarded. Both sides must already carry canonical
// core.DateLayout dates; the collectors normalize vendor timestamps before
// a series gets here, so a representation mismatch cannot silently produce
// an empty join.
func alignCloses(a, b core.PriceSeries) (closesA, closesB []float64) {
	byDate := make(map[string]float64, len(b))
	for _, bar := range b {
		byDate[bar.Date] = bar.Close
	}

	for _, bar := range a {
		if close, ok := byDate[bar.Date]; ok {
			closesA = append(closesA, bar.Close)
			closesB = append(closesB, close)
		}
	}
	return closesA, closesB
}

// dailyReturns computes simple returns r[i] = close[i]/close[i-1] - 1.
// The first bar has no return and is dropped, so the result is one shorter
// than the input. A zero previous close contributes a zero return instead
// of an infinity.
func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return returns
}
