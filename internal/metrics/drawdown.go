package metrics

import "math"

// DrawdownSeries computes the percent decline from the running maximum at
// each point: (price / runningMax(price) - 1) * 100. The running maximum
// includes the current point, so the first value is always 0.
func DrawdownSeries(prices []float64) []float64 {
	if len(prices) == 0 {
		return nil
	}
	out := make([]float64, len(prices))
	runMax := prices[0]
	for i, p := range prices {
		if p > runMax {
			runMax = p
		}
		out[i] = (p/runMax - 1) * 100
	}
	return out
}

// MaxDrawdown returns the magnitude of the worst drawdown, abs(min(dd)).
// It is always >= 0 and 0 for a single-point series.
func MaxDrawdown(drawdown []float64) float64 {
	min := 0.0
	for _, d := range drawdown {
		if d < min {
			min = d
		}
	}
	return math.Abs(min)
}
