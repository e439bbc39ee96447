package metrics

import (
	"errors"
	"math"
)

// BollingerBands computes the upper and lower bands,
// SMA(window) +/- k * sampleStd(window). Positions before window
// observations have accumulated are NaN in both bands.
func BollingerBands(prices []float64, window int, k float64) (upper, lower []float64, err error) {
	if window <= 0 {
		return nil, nil, errors.New("window must be positive")
	}
	ma, err := SMA(prices, window)
	if err != nil {
		return nil, nil, err
	}
	upper = make([]float64, len(prices))
	lower = make([]float64, len(prices))
	for i := range prices {
		if i < window-1 {
			upper[i] = math.NaN()
			lower[i] = math.NaN()
			continue
		}
		// sample std needs two observations, so window 1 yields NaN bands
		sd := sampleStd(prices[i-window+1 : i+1])
		upper[i] = ma[i] + k*sd
		lower[i] = ma[i] - k*sd
	}
	return upper, lower, nil
}
