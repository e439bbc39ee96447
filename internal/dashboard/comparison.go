package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"MarketLens/internal/metrics"
)

// MaxComparisonTickers caps how many tickers one comparison shows.
const MaxComparisonTickers = 5

// ComparisonRequest selects a set of tickers and a shared date range.
type ComparisonRequest struct {
	Tickers []string
	Start   time.Time
	End     time.Time
}

// IndexedSeries is one ticker's prices rebased so its first available price
// in the range equals 100.
type IndexedSeries struct {
	Ticker string  `json:"ticker"`
	Points []Point `json:"points"`
}

// ComparisonRow is one ticker's summary line. MarketCap is null when the
// best-effort quote lookup failed.
type ComparisonRow struct {
	Ticker           string `json:"ticker"`
	TotalReturn      Float  `json:"totalReturn"`
	AnnualVolatility Float  `json:"annualVolatility"`
	MarketCap        Float  `json:"marketCap"`
	MarketCapText    string `json:"marketCapText,omitempty"`
}

// CorrelationResult is the pairwise return correlation of the compared
// tickers over their overlapping dates.
type CorrelationResult struct {
	Tickers []string  `json:"tickers"`
	Matrix  [][]Float `json:"matrix"`
}

// ComparisonResult compares multiple tickers. Tickers that fail to fetch
// are skipped and reported in Warnings; the remaining tickers still
// produce a complete result.
type ComparisonResult struct {
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	Series      []IndexedSeries    `json:"series"`
	Summary     []ComparisonRow    `json:"summary"`
	Correlation *CorrelationResult `json:"correlation,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// Comparison fetches every requested ticker, rebases each series to 100 at
// its own first in-range price, and derives summary metrics plus a return
// correlation matrix over the overlapping dates.
func (s *Service) Comparison(ctx context.Context, nav *NavContext, req ComparisonRequest) (*ComparisonResult, error) {
	tickers := req.Tickers
	if len(tickers) == 0 {
		tickers = nav.Tickers()
	}
	tickers = dedupeTickers(tickers)
	if len(tickers) == 0 {
		return nil, &InvalidRequestError{Reason: "at least one ticker is required"}
	}

	result := &ComparisonResult{}
	if len(tickers) > MaxComparisonTickers {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("showing first %d tickers", MaxComparisonTickers))
		tickers = tickers[:MaxComparisonTickers]
	}

	start, end, err := resolveRange(nav, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	result.Start, result.End = start, end

	var returnSeries []metrics.ReturnSeries
	for _, ticker := range tickers {
		series, err := s.data.Fetch(ctx, ticker, start, end)
		if err != nil {
			// One ticker's failure must not abort the others.
			log.Printf("[WARN] comparison fetch %s: %v", ticker, err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("no data for %s, skipping", ticker))
			continue
		}

		prices := series.AdjCloses()
		indexed, err := metrics.NormalizeToBase(prices, 100)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("no data for %s, skipping", ticker))
			continue
		}
		result.Series = append(result.Series, IndexedSeries{
			Ticker: ticker,
			Points: points(series.Dates(), indexed),
		})

		row := ComparisonRow{Ticker: ticker, MarketCap: Float(math.NaN())}
		if total, err := metrics.TotalReturn(prices); err == nil {
			row.TotalReturn = Float(total)
		} else {
			row.TotalReturn = Float(math.NaN())
		}
		row.AnnualVolatility = Float(metrics.AnnualizedVolatility(prices))
		if mc, ok := s.data.MarketCap(ctx, ticker); ok {
			row.MarketCap = Float(mc)
			row.MarketCapText = humanize.SIWithDigits(mc, 2, "")
		}
		result.Summary = append(result.Summary, row)

		if rets := metrics.DailyReturns(prices); len(rets) > 0 {
			returnSeries = append(returnSeries, metrics.ReturnSeries{
				Ticker:  ticker,
				Dates:   series.Dates()[1:],
				Returns: rets,
			})
		}
	}

	if len(result.Series) == 0 {
		return nil, ErrNoComparableData
	}

	corr, err := metrics.CorrelationMatrix(returnSeries)
	switch {
	case err == nil:
		cr := &CorrelationResult{Tickers: corr.Tickers, Matrix: make([][]Float, len(corr.Matrix))}
		for i, row := range corr.Matrix {
			cr.Matrix[i] = floats(row)
		}
		result.Correlation = cr
	case errors.Is(err, metrics.ErrInsufficientOverlap):
		result.Warnings = append(result.Warnings, "not enough overlapping data to compute correlations")
	default:
		return nil, err
	}

	nav.SetTickers(tickers)
	nav.SetDateRange(start, end)
	return result, nil
}

// dedupeTickers cleans, deduplicates, and sorts the requested tickers.
func dedupeTickers(raw []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range raw {
		for _, part := range strings.Split(strings.ReplaceAll(t, ";", ","), ",") {
			ticker := cleanTicker(part)
			if ticker != "" && !seen[ticker] {
				seen[ticker] = true
				out = append(out, ticker)
			}
		}
	}
	sort.Strings(out)
	return out
}
