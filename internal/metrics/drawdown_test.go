package metrics

import (
	"math"
	"testing"
)

func TestDrawdownSeries(t *testing.T) {
	got := DrawdownSeries([]float64{100, 120, 90, 110})
	want := []float64{0, 0, -25, (110.0/120 - 1) * 100}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("DrawdownSeries[%d] = %.6f, want %.6f", i, got[i], want[i])
		}
	}
}

func TestDrawdownSeries_FirstAlwaysZero(t *testing.T) {
	for _, prices := range [][]float64{{5}, {5, 4}, {1, 2, 3}, {3, 2, 1}} {
		dd := DrawdownSeries(prices)
		if dd[0] != 0 {
			t.Errorf("DrawdownSeries(%v)[0] = %.6f, want 0", prices, dd[0])
		}
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		prices []float64
		want   float64
	}{
		{[]float64{100}, 0},
		{[]float64{100, 110, 120}, 0},
		{[]float64{100, 120, 90, 110}, 25},
	}
	for _, tt := range tests {
		got := MaxDrawdown(DrawdownSeries(tt.prices))
		if !almostEqual(got, tt.want) {
			t.Errorf("MaxDrawdown(%v) = %.6f, want %.6f", tt.prices, got, tt.want)
		}
		if got < 0 || math.IsNaN(got) {
			t.Errorf("MaxDrawdown(%v) = %.6f, must be >= 0", tt.prices, got)
		}
	}
}
