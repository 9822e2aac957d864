package analytics

import "math"

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance returns the sample variance (n-1 denominator), or 0 when fewer
// than two observations exist.
func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs)-1)
}

// stdDev returns the sample standard deviation.
func stdDev(xs []float64) float64 {
	return math.Sqrt(variance(xs))
}

// covariance returns the sample covariance of two equal-length slices.
func covariance(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var sum float64
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(n-1)
}

// pearson returns the Pearson correlation coefficient of two equal-length
// slices. Correlation is undefined when either side has zero variance;
// it resolves to 0 rather than NaN.
func pearson(xs, ys []float64) float64 {
	sx, sy := stdDev(xs), stdDev(ys)
	if sx == 0 || sy == 0 {
		return 0
	}
	return covariance(xs, ys) / (sx * sy)
}

// round2 rounds to two decimal places for presentation-boundary values.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
