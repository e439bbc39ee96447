package metrics

import (
	"errors"
	"math"
	"time"
)

// RollingVolatility computes a rolling annualized volatility series: the
// sample std of daily returns over the trailing window, scaled by
// sqrt(252) * 100. The output is aligned with the input prices; positions
// before window returns have accumulated are NaN.
func RollingVolatility(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = math.NaN()
	}
	rets := DailyReturns(prices)
	// Return j (0-based) belongs to price index j+1; the window of returns
	// ending at price index i covers rets[i-window .. i-1].
	for i := window; i < len(prices); i++ {
		sd := sampleStd(rets[i-window : i])
		if !math.IsNaN(sd) {
			out[i] = sd * math.Sqrt(TradingDaysPerYear) * 100
		}
	}
	return out, nil
}

// MonthlyReturn is the percent change between the last prices of two
// consecutive calendar months.
type MonthlyReturn struct {
	Year   int
	Month  time.Month
	Return float64
}

// MonthlyReturns resamples the series to the last price of each calendar
// month and computes month-over-month percent changes. The first month has
// no baseline and is dropped. Dates and prices run in parallel and must be
// sorted ascending.
func MonthlyReturns(dates []time.Time, prices []float64) []MonthlyReturn {
	if len(dates) == 0 || len(dates) != len(prices) {
		return nil
	}
	type monthKey struct {
		year  int
		month time.Month
	}
	var keys []monthKey
	last := make(map[monthKey]float64)
	for i, d := range dates {
		k := monthKey{d.Year(), d.Month()}
		if _, ok := last[k]; !ok {
			keys = append(keys, k)
		}
		last[k] = prices[i]
	}
	var out []MonthlyReturn
	for i := 1; i < len(keys); i++ {
		prev := last[keys[i-1]]
		cur := last[keys[i]]
		out = append(out, MonthlyReturn{
			Year:   keys[i].year,
			Month:  keys[i].month,
			Return: (cur/prev - 1) * 100,
		})
	}
	return out
}

// YTDReturn computes the percent return from the first observation of the
// given calendar year to the last price of the series. NaN when the series
// has no observations in that year.
func YTDReturn(dates []time.Time, prices []float64, year int) float64 {
	if len(dates) == 0 || len(dates) != len(prices) {
		return math.NaN()
	}
	for i, d := range dates {
		if d.Year() == year {
			return (prices[len(prices)-1]/prices[i] - 1) * 100
		}
	}
	return math.NaN()
}
