package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/davidqio/marketlens/internal/core"
)

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(core.PriceSeries{})
	if m != (AssetMetrics{}) {
		t.Errorf("empty series should produce all-zero metrics, got %+v", m)
	}
}

func TestComputeMetrics_SingleBar(t *testing.T) {
	series := core.PriceSeries{
		{Date: "2025-06-02", Open: 98, High: 103, Low: 97, Close: 101, Volume: 5000},
	}

	m := ComputeMetrics(series)

	if m.Close != 101 || m.Open != 98 || m.High != 103 || m.Low != 97 || m.Volume != 5000 {
		t.Errorf("latest bar fields wrong: %+v", m)
	}
	if m.PreviousClose != 0 {
		t.Errorf("PreviousClose = %f, want 0 for single bar", m.PreviousClose)
	}
	if m.FiftyDayAvg != 101 || m.TwoHundredDayAvg != 101 {
		t.Errorf("averages should equal the only close, got %f / %f", m.FiftyDayAvg, m.TwoHundredDayAvg)
	}
	if m.YearHigh != 103 || m.YearLow != 97 {
		t.Errorf("year range should equal the only bar's range, got %f / %f", m.YearHigh, m.YearLow)
	}
}

func TestComputeMetrics_ThreeBars(t *testing.T) {
	series := core.PriceSeries{
		{Date: "2025-06-02", Open: 9, High: 11, Low: 8, Close: 10, Volume: 100},
		{Date: "2025-06-03", Open: 19, High: 21, Low: 18, Close: 20, Volume: 200},
		{Date: "2025-06-04", Open: 29, High: 31, Low: 28, Close: 30, Volume: 300},
	}

	m := ComputeMetrics(series)

	if m.FiftyDayAvg != 20 {
		t.Errorf("FiftyDayAvg = %f, want 20", m.FiftyDayAvg)
	}
	if m.TwoHundredDayAvg != 20 {
		t.Errorf("TwoHundredDayAvg = %f, want 20", m.TwoHundredDayAvg)
	}
	if m.PreviousClose != 20 {
		t.Errorf("PreviousClose = %f, want 20", m.PreviousClose)
	}
	if m.Close != 30 {
		t.Errorf("Close = %f, want 30", m.Close)
	}
	if m.YearHigh != 31 || m.YearLow != 8 {
		t.Errorf("year range = %f/%f, want 31/8", m.YearHigh, m.YearLow)
	}
}

func TestComputeMetrics_WindowsTrail(t *testing.T) {
	// 60 bars with close = bar index + 1. The 50-day average covers bars
	// 11..60 only, the 200-day average covers everything.
	series := make(core.PriceSeries, 60)
	for i := range series {
		c := float64(i + 1)
		series[i] = core.PriceBar{
			Date:  fmt.Sprintf("2025-%02d-%02d", i/28+1, i%28+1),
			Open:  c, High: c, Low: c, Close: c,
		}
	}

	m := ComputeMetrics(series)

	// mean(11..60) = 35.5
	if m.FiftyDayAvg != 35.5 {
		t.Errorf("FiftyDayAvg = %f, want 35.5", m.FiftyDayAvg)
	}
	// mean(1..60) = 30.5
	if m.TwoHundredDayAvg != 30.5 {
		t.Errorf("TwoHundredDayAvg = %f, want 30.5", m.TwoHundredDayAvg)
	}
	if m.YearHigh != 60 || m.YearLow != 1 {
		t.Errorf("year range = %f/%f, want 60/1", m.YearHigh, m.YearLow)
	}
}

func TestComputeMetrics_FiniteInFiniteOut(t *testing.T) {
	series := core.PriceSeries{
		{Date: "2025-06-02", Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Date: "2025-06-03", Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 20},
	}

	m := ComputeMetrics(series)

	for name, v := range map[string]float64{
		"Open": m.Open, "High": m.High, "Low": m.Low, "Close": m.Close,
		"PreviousClose": m.PreviousClose, "FiftyDayAvg": m.FiftyDayAvg,
		"TwoHundredDayAvg": m.TwoHundredDayAvg, "YearHigh": m.YearHigh, "YearLow": m.YearLow,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %f", name, v)
		}
	}
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	series := core.PriceSeries{
		{Date: "2025-06-02", Open: 9, High: 11, Low: 8, Close: 10},
		{Date: "2025-06-03", Open: 19, High: 21, Low: 18, Close: 20},
	}

	first := ComputeMetrics(series)
	second := ComputeMetrics(series)

	if first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}
