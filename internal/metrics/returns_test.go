package metrics

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalReturn(t *testing.T) {
	got, err := TotalReturn([]float64{100, 110, 121})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 21) {
		t.Errorf("TotalReturn = %.6f, want 21", got)
	}
}

func TestTotalReturn_Insufficient(t *testing.T) {
	for _, prices := range [][]float64{nil, {}, {100}} {
		if _, err := TotalReturn(prices); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("TotalReturn(%v) error = %v, want ErrInsufficientData", prices, err)
		}
	}
}

func TestDailyReturns(t *testing.T) {
	got := DailyReturns([]float64{100, 110, 99})
	want := []float64{0.10, -0.10}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("DailyReturns[%d] = %.6f, want %.6f", i, got[i], want[i])
		}
	}
}

func TestDailyReturns_Empty(t *testing.T) {
	if got := DailyReturns(nil); len(got) != 0 {
		t.Errorf("DailyReturns(nil) = %v, want empty", got)
	}
	if got := DailyReturns([]float64{100}); len(got) != 0 {
		t.Errorf("DailyReturns(single) = %v, want empty", got)
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	// Returns +10%, -10%: sample std is sqrt(0.02), annualized * sqrt(252) * 100.
	got := AnnualizedVolatility([]float64{100, 110, 99})
	want := math.Sqrt(0.02) * math.Sqrt(252) * 100
	if !almostEqual(got, want) {
		t.Errorf("AnnualizedVolatility = %.6f, want %.6f", got, want)
	}
}

func TestAnnualizedVolatility_Undefined(t *testing.T) {
	for _, prices := range [][]float64{nil, {100}, {100, 110}} {
		if got := AnnualizedVolatility(prices); !math.IsNaN(got) {
			t.Errorf("AnnualizedVolatility(%v) = %.6f, want NaN", prices, got)
		}
	}
}

func TestNormalizeToBase(t *testing.T) {
	got, err := NormalizeToBase([]float64{50, 55, 45}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got[0], 100) {
		t.Errorf("first value = %.6f, want exactly 100", got[0])
	}
	if !almostEqual(got[1], 110) || !almostEqual(got[2], 90) {
		t.Errorf("NormalizeToBase = %v, want [100 110 90]", got)
	}
}

func TestNormalizeToBase_Empty(t *testing.T) {
	if _, err := NormalizeToBase(nil, 100); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}
