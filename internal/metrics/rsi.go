package metrics

import (
	"errors"
	"math"
)

// RSI computes the rolling-mean relative strength index,
// 100 - 100/(1+RS) with RS = meanGain/meanLoss over the trailing window of
// price deltas. Gains and losses are the positive and negative parts of
// each delta, floored at zero. The output is aligned with the input;
// positions before window deltas have accumulated are NaN.
//
// When meanLoss is zero (no down days in the window) RS is degenerate and
// the result is NaN rather than 100; callers must treat NaN as undefined.
func RSI(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(prices) < 2 {
		return out, nil
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(prices); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}
		if i < window {
			continue
		}
		meanGain := gainSum / float64(window)
		meanLoss := lossSum / float64(window)
		if meanLoss == 0 {
			continue // undefined, stays NaN
		}
		rs := meanGain / meanLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out, nil
}
