package metrics

import (
	"math"
	"testing"
)

func TestMACD_HistogramIdentity(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/5)
	}
	res := MACD(prices)
	if len(res.Line) != len(prices) || len(res.Signal) != len(prices) || len(res.Histogram) != len(prices) {
		t.Fatalf("output lengths %d/%d/%d, want %d", len(res.Line), len(res.Signal), len(res.Histogram), len(prices))
	}
	for i := range prices {
		if res.Histogram[i] != res.Line[i]-res.Signal[i] {
			t.Errorf("Histogram[%d] = %.12f, want Line-Signal = %.12f", i, res.Histogram[i], res.Line[i]-res.Signal[i])
		}
	}
}

func TestMACD_ConstantPrices(t *testing.T) {
	prices := []float64{50, 50, 50, 50, 50}
	res := MACD(prices)
	for i := range prices {
		if !almostEqual(res.Line[i], 0) || !almostEqual(res.Signal[i], 0) || !almostEqual(res.Histogram[i], 0) {
			t.Errorf("index %d: line=%.9f signal=%.9f hist=%.9f, want all 0", i, res.Line[i], res.Signal[i], res.Histogram[i])
		}
	}
}

func TestMACD_Empty(t *testing.T) {
	res := MACD(nil)
	if len(res.Line) != 0 || len(res.Signal) != 0 || len(res.Histogram) != 0 {
		t.Errorf("MACD(nil) produced non-empty output")
	}
}
