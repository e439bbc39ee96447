package metrics

import (
	"math"
	"testing"
)

func TestBollingerBands(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	upper, lower, err := BollingerBands(prices, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(upper[i]) || !math.IsNaN(lower[i]) {
			t.Errorf("bands[%d] = (%v, %v), want NaN before window fills", i, upper[i], lower[i])
		}
	}
	// Window {1,2,3}: mean 2, sample std 1, k=2 -> bands 4 and 0.
	if !almostEqual(upper[2], 4) || !almostEqual(lower[2], 0) {
		t.Errorf("bands[2] = (%.6f, %.6f), want (4, 0)", upper[2], lower[2])
	}
	for i := 2; i < len(prices); i++ {
		if upper[i] < lower[i] {
			t.Errorf("upper[%d] < lower[%d]", i, i)
		}
	}
}

func TestBollingerBands_SymmetricAroundSMA(t *testing.T) {
	prices := []float64{10, 12, 9, 14, 11, 13, 10, 15}
	upper, lower, err := BollingerBands(prices, 4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ma, _ := SMA(prices, 4)
	for i := 3; i < len(prices); i++ {
		if !almostEqual(upper[i]-ma[i], ma[i]-lower[i]) {
			t.Errorf("bands at %d not symmetric around SMA", i)
		}
	}
}

func TestBollingerBands_InvalidWindow(t *testing.T) {
	if _, _, err := BollingerBands([]float64{1, 2}, 0, 2); err == nil {
		t.Error("expected error for window 0")
	}
}
