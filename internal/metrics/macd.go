package metrics

// MACD periods are fixed at the conventional 12/26/9.
const (
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

// MACDResult holds the MACD line, its signal line, and their difference.
// Histogram[i] == Line[i] - Signal[i] for every point by construction.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the moving average convergence/divergence:
// line = EMA(12) - EMA(26), signal = EMA(9) of the line.
func MACD(prices []float64) MACDResult {
	fast, _ := EMA(prices, macdFastSpan)
	slow, _ := EMA(prices, macdSlowSpan)

	line := make([]float64, len(prices))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}
	signal, _ := EMA(line, macdSignalSpan)

	hist := make([]float64, len(prices))
	for i := range hist {
		hist[i] = line[i] - signal[i]
	}
	return MACDResult{Line: line, Signal: signal, Histogram: hist}
}
