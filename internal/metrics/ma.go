package metrics

import (
	"errors"
	"math"
)

// SMA computes the rolling simple moving average over the given window.
// The output is aligned with the input; positions before window
// observations have accumulated are NaN.
func SMA(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(prices))
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// EMA computes the exponential moving average with smoothing factor
// 2/(span+1), seeded with the first value. Every output position is
// defined for a non-empty input.
func EMA(prices []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(prices) == 0 {
		return nil, nil
	}
	alpha := 2.0 / (float64(span) + 1)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = alpha*prices[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
