package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"MarketLens/internal/metrics"
)

// Benchmark is one entry of the fixed index/ETF catalog.
type Benchmark struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Blurb  string `json:"blurb"`
}

// Benchmarks returns the explorer's catalog of common indices and ETFs.
func Benchmarks() []Benchmark {
	return []Benchmark{
		{Symbol: "^GSPC", Name: "S&P 500 Index", Blurb: "Tracks 500 large-cap U.S. stocks (market benchmark)."},
		{Symbol: "^DJI", Name: "Dow Jones Industrial Avg", Blurb: "Blue-chip average of 30 major U.S. companies."},
		{Symbol: "^IXIC", Name: "Nasdaq Composite", Blurb: "Broad, tech-heavy Nasdaq Composite index."},
		{Symbol: "SPY", Name: "S&P 500 ETF", Blurb: "ETF that replicates the S&P 500 index."},
		{Symbol: "QQQ", Name: "Nasdaq-100 ETF", Blurb: "ETF tracking the Nasdaq-100 (large tech)."},
		{Symbol: "IWM", Name: "Russell 2000 ETF", Blurb: "ETF tracking small-cap Russell 2000."},
		{Symbol: "EFA", Name: "Developed Mkts ETF", Blurb: "ETF for developed markets ex-US (MSCI EAFE)."},
		{Symbol: "EEM", Name: "Emerging Mkts ETF", Blurb: "ETF for MSCI Emerging Markets equities."},
	}
}

const (
	explorerRangeYears = 5
	week52Window       = 252
	rollingVolWindow   = 30
	overlayBenchmark   = "SPY"
)

// ExplorerRequest selects one catalog benchmark. Zero dates default to the
// trailing five years.
type ExplorerRequest struct {
	Symbol     string
	Start      time.Time
	End        time.Time
	OverlaySPY bool
}

// MonthlyCell is one month's return in the heatmap grid.
type MonthlyCell struct {
	Year   int    `json:"year"`
	Month  string `json:"month"`
	Return Float  `json:"return"`
}

// ExplorerResult is the benchmark overview: price history, headline stats,
// rolling volatility, and the monthly-return grid. Overlay is present only
// when the SPY comparison was requested and fetchable.
type ExplorerResult struct {
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	Blurb             string          `json:"blurb"`
	Start             time.Time       `json:"start"`
	End               time.Time       `json:"end"`
	Prices            []Point         `json:"prices"`
	Overlay           []IndexedSeries `json:"overlay,omitempty"`
	LatestPrice       Float           `json:"latestPrice"`
	High52Week        Float           `json:"high52Week"`
	Low52Week         Float           `json:"low52Week"`
	YTDReturn         Float           `json:"ytdReturn"`
	PeriodReturn      Float           `json:"periodReturn"`
	AvgDailyVolume    Float           `json:"avgDailyVolume"`
	AvgVolumeText     string          `json:"avgVolumeText,omitempty"`
	RollingVolatility []Point         `json:"rollingVolatility"`
	MonthlyReturns    []MonthlyCell   `json:"monthlyReturns"`
	Warnings          []string        `json:"warnings,omitempty"`
}

// Explorer builds the index/ETF overview for one catalog symbol.
func (s *Service) Explorer(ctx context.Context, nav *NavContext, req ExplorerRequest) (*ExplorerResult, error) {
	symbol := cleanTicker(req.Symbol)
	if symbol == "" {
		symbol = "^GSPC"
	}
	bench, ok := findBenchmark(symbol)
	if !ok {
		return nil, &InvalidRequestError{Reason: fmt.Sprintf("unknown benchmark symbol %q", symbol)}
	}

	today := s.now().UTC()
	start, end := req.Start, req.End
	if start.IsZero() {
		start = today.AddDate(-explorerRangeYears, 0, 0)
	}
	if end.IsZero() {
		end = today
	}
	if start.After(end) {
		return nil, &InvalidRequestError{Reason: "start date must be before end date"}
	}

	series, err := s.data.Fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	prices := series.AdjCloses()
	dates := series.Dates()

	high, low := trailingRange(prices, week52Window)
	rollingVol, err := metrics.RollingVolatility(prices, rollingVolWindow)
	if err != nil {
		return nil, err
	}

	periodReturn, err := metrics.TotalReturn(prices)
	if err != nil {
		return nil, err
	}

	result := &ExplorerResult{
		Symbol:            symbol,
		Name:              bench.Name,
		Blurb:             bench.Blurb,
		Start:             start,
		End:               end,
		Prices:            points(dates, prices),
		LatestPrice:       Float(prices[len(prices)-1]),
		High52Week:        Float(high),
		Low52Week:         Float(low),
		YTDReturn:         Float(metrics.YTDReturn(dates, prices, today.Year())),
		PeriodReturn:      Float(periodReturn),
		RollingVolatility: points(dates, rollingVol),
	}

	if avg := averageVolume(series.Volumes()); avg > 0 {
		result.AvgDailyVolume = Float(avg)
		result.AvgVolumeText = humanize.SIWithDigits(avg, 1, "")
	}

	for _, m := range metrics.MonthlyReturns(dates, prices) {
		result.MonthlyReturns = append(result.MonthlyReturns, MonthlyCell{
			Year:   m.Year,
			Month:  m.Month.String()[:3],
			Return: Float(m.Return),
		})
	}

	if req.OverlaySPY && symbol != overlayBenchmark {
		overlay, warn := s.overlay(ctx, symbol, prices, dates, start, end)
		result.Overlay = overlay
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
	}

	return result, nil
}

// overlay rebases the benchmark and SPY to 100 for a side-by-side view.
// SPY retrieval is best-effort.
func (s *Service) overlay(ctx context.Context, symbol string, prices []float64, dates []time.Time, start, end time.Time) ([]IndexedSeries, string) {
	spy, err := s.data.Fetch(ctx, overlayBenchmark, start, end)
	if err != nil {
		log.Printf("[WARN] explorer overlay fetch %s: %v", overlayBenchmark, err)
		return nil, "could not fetch SPY benchmark data"
	}

	own, err := metrics.NormalizeToBase(prices, 100)
	if err != nil {
		return nil, ""
	}
	spyIndexed, err := metrics.NormalizeToBase(spy.AdjCloses(), 100)
	if err != nil {
		return nil, "could not fetch SPY benchmark data"
	}
	return []IndexedSeries{
		{Ticker: symbol, Points: points(dates, own)},
		{Ticker: overlayBenchmark, Points: points(spy.Dates(), spyIndexed)},
	}, ""
}

func findBenchmark(symbol string) (Benchmark, bool) {
	for _, b := range Benchmarks() {
		if b.Symbol == symbol {
			return b, true
		}
	}
	return Benchmark{}, false
}

// trailingRange returns the high and low of the last window observations.
func trailingRange(prices []float64, window int) (high, low float64) {
	start := len(prices) - window
	if start < 0 {
		start = 0
	}
	high, low = prices[start], prices[start]
	for _, p := range prices[start:] {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return high, low
}

func averageVolume(vols []float64) float64 {
	if len(vols) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vols {
		sum += v
	}
	return sum / float64(len(vols))
}
