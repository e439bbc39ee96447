package metrics

import "math"

// TotalReturn computes the percent return over the whole series,
// (last/first - 1) * 100. At least two points are required.
func TotalReturn(prices []float64) (float64, error) {
	if len(prices) < 2 {
		return 0, ErrInsufficientData
	}
	return (prices[len(prices)-1]/prices[0] - 1) * 100, nil
}

// DailyReturns computes simple percent-change returns. The first point has
// no prior-day baseline and is dropped, so the output has len(prices)-1
// elements. An empty or single-point series yields an empty output.
func DailyReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	rets := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		rets[i-1] = prices[i]/prices[i-1] - 1
	}
	return rets
}

// AnnualizedVolatility computes the annualized standard deviation of daily
// returns as a percentage: std(returns) * sqrt(252) * 100. With fewer than
// two return observations the result is NaN; callers must check.
func AnnualizedVolatility(prices []float64) float64 {
	rets := DailyReturns(prices)
	sd := sampleStd(rets)
	if math.IsNaN(sd) {
		return math.NaN()
	}
	return sd * math.Sqrt(TradingDaysPerYear) * 100
}

// NormalizeToBase rescales the series so its first value equals base:
// price / price[0] * base. The series must be non-empty.
func NormalizeToBase(prices []float64, base float64) ([]float64, error) {
	if len(prices) == 0 {
		return nil, ErrInsufficientData
	}
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = p / prices[0] * base
	}
	return out, nil
}
