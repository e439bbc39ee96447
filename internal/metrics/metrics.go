// Package metrics provides pure derived-statistic functions over ordered
// adjusted-close price series. Rolling statistics report NaN for positions
// where fewer than window observations have accumulated; that is the normal
// shape of a rolling output, not an error.
package metrics

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
)

// ErrInsufficientData is returned by metrics that need a minimum number of
// observations to be meaningful at all.
var ErrInsufficientData = errors.New("insufficient data")

// ErrInsufficientOverlap is returned by CorrelationMatrix when fewer than
// two series share at least two dates.
var ErrInsufficientOverlap = errors.New("insufficient overlapping data")

// TradingDaysPerYear is the annualization factor for daily observations.
const TradingDaysPerYear = 252

// sampleStd computes the sample (n-1) standard deviation, NaN when fewer
// than two observations are available.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	sd, err := stats.StandardDeviationSample(xs)
	if err != nil {
		return math.NaN()
	}
	return sd
}
