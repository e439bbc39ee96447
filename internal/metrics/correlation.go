package metrics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// ReturnSeries is one ticker's dated daily returns, used as input to
// CorrelationMatrix. Dates and Returns run in parallel.
type ReturnSeries struct {
	Ticker  string
	Dates   []time.Time
	Returns []float64
}

// Correlation is a pairwise Pearson correlation matrix. Matrix[i][j] is the
// correlation between Tickers[i] and Tickers[j]; the diagonal is 1.
type Correlation struct {
	Tickers []string
	Matrix  [][]float64
}

// CorrelationMatrix inner-joins the given return series on date and
// computes the pairwise Pearson correlation matrix. It requires at least
// two series sharing at least two dates; otherwise it returns
// ErrInsufficientOverlap. Ticker order in the result is alphabetical.
func CorrelationMatrix(series []ReturnSeries) (*Correlation, error) {
	if len(series) < 2 {
		return nil, ErrInsufficientOverlap
	}

	sorted := make([]ReturnSeries, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ticker < sorted[j].Ticker })

	// Dates present in every series, in chronological order.
	counts := make(map[time.Time]int)
	for _, s := range sorted {
		seen := make(map[time.Time]bool, len(s.Dates))
		for _, d := range s.Dates {
			if !seen[d] {
				seen[d] = true
				counts[d]++
			}
		}
	}
	var common []time.Time
	for d, n := range counts {
		if n == len(sorted) {
			common = append(common, d)
		}
	}
	if len(common) < 2 {
		return nil, ErrInsufficientOverlap
	}
	sort.Slice(common, func(i, j int) bool { return common[i].Before(common[j]) })

	// Align each series onto the common dates.
	aligned := make([][]float64, len(sorted))
	for i, s := range sorted {
		byDate := make(map[time.Time]float64, len(s.Dates))
		for j, d := range s.Dates {
			byDate[d] = s.Returns[j]
		}
		col := make([]float64, len(common))
		for j, d := range common {
			col[j] = byDate[d]
		}
		aligned[i] = col
	}

	corr := &Correlation{
		Tickers: make([]string, len(sorted)),
		Matrix:  make([][]float64, len(sorted)),
	}
	for i, s := range sorted {
		corr.Tickers[i] = s.Ticker
		corr.Matrix[i] = make([]float64, len(sorted))
		corr.Matrix[i][i] = 1
	}
	for i := range aligned {
		for j := i + 1; j < len(aligned); j++ {
			r, err := stats.Pearson(aligned[i], aligned[j])
			if err != nil {
				return nil, ErrInsufficientOverlap
			}
			corr.Matrix[i][j] = r
			corr.Matrix[j][i] = r
		}
	}
	return corr, nil
}
