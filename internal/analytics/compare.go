package analytics

import "github.com/davidqio/marketlens/internal/core"

// Beta from covariance/variance is numerically unreliable when the index
// trades at a vastly larger magnitude than the asset (the canonical case is
// a crypto market-cap index, quoted in trillions of dollars, against a
// single coin). Above the threshold a fixed domain default stands in for
// the computed value. The 1.5 default reflects crypto's typically
// higher-than-market volatility; it is a product policy, not a derived
// constant.
const (
	indexScaleThreshold = 1_000_000
	scaledIndexBeta     = 1.5
)

// PairComparison holds comparative statistics for two peer assets, e.g. a
// stock against a coin. Zero values are the defined sentinel for empty or
// insufficiently overlapping inputs.
type PairComparison struct {
	Correlation         float64 `json:"correlation"`
	RelativePerformance float64 `json:"relative_performance"`
	VolatilityRatio     float64 `json:"volatility_ratio"`
}

// IndexComparison holds statistics for an asset measured against a
// benchmark index. Zero values are the same insufficient-data sentinel.
type IndexComparison struct {
	Correlation float64 `json:"correlation"`
	Alpha       float64 `json:"alpha"`
	Beta        float64 `json:"beta"`
}

// CompareAssets derives pairwise statistics from two daily price series.
// The series are inner-joined on date; fewer than two common dates yields
// the zero sentinel. With exactly two common dates each side has a single
// return, whose sample deviation is 0, so correlation and volatility ratio
// resolve to 0 through the zero-variance rules while relative performance
// is still computed. Results are rounded to two decimals.
func CompareAssets(a, b core.PriceSeries) PairComparison {
	if len(a) == 0 || len(b) == 0 {
		return PairComparison{}
	}

	closesA, closesB := alignCloses(a, b)
	if len(closesA) < 2 {
		return PairComparison{}
	}

	returnsA := dailyReturns(closesA)
	returnsB := dailyReturns(closesB)

	var volatilityRatio float64
	if sb := stdDev(returnsB); sb != 0 {
		volatilityRatio = stdDev(returnsA) / sb
	}

	return PairComparison{
		Correlation:         round2(pearson(returnsA, returnsB)),
		RelativePerformance: round2(relativePerformance(closesA, closesB)),
		VolatilityRatio:     round2(volatilityRatio),
	}
}

// relativePerformance measures how the ratio a/b moved between the first
// and last aligned bars, as a percentage. Any zero denominator yields 0.
func relativePerformance(closesA, closesB []float64) float64 {
	last := len(closesA) - 1
	if closesB[0] == 0 || closesB[last] == 0 {
		return 0
	}
	firstRatio := closesA[0] / closesB[0]
	lastRatio := closesA[last] / closesB[last]
	if firstRatio == 0 {
		return 0
	}
	return (lastRatio/firstRatio - 1) * 100
}

// CompareToIndex derives correlation, alpha and beta for an asset measured
// against a benchmark index series. Alignment and sentinel rules match
// CompareAssets. Alpha assumes a zero risk-free rate and uses the first and
// last aligned closes for the total-period returns. Results are rounded to
// two decimals.
func CompareToIndex(asset, index core.PriceSeries) IndexComparison {
	if len(asset) == 0 || len(index) == 0 {
		return IndexComparison{}
	}

	closesA, closesI := alignCloses(asset, index)
	if len(closesA) < 2 {
		return IndexComparison{}
	}

	returnsA := dailyReturns(closesA)
	returnsI := dailyReturns(closesI)

	var beta float64
	if mean(closesI) > indexScaleThreshold {
		beta = scaledIndexBeta
	} else if v := variance(returnsI); v != 0 {
		beta = covariance(returnsA, returnsI) / v
	}

	alpha := (totalReturn(closesA) - beta*totalReturn(closesI)) * 100

	return IndexComparison{
		Correlation: round2(pearson(returnsA, returnsI)),
		Alpha:       round2(alpha),
		Beta:        round2(beta),
	}
}

// totalReturn is the whole-period simple return close[last]/close[0] - 1,
// or 0 when the first close is 0.
func totalReturn(closes []float64) float64 {
	if closes[0] == 0 {
		return 0
	}
	return closes[len(closes)-1]/closes[0] - 1
}
