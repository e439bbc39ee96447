package dashboard

import (
	"context"
	"time"

	"MarketLens/internal/metrics"
)

// StatisticsRequest selects one ticker and date range for the key
// performance metrics view.
type StatisticsRequest struct {
	Ticker string
	Start  time.Time
	End    time.Time
}

// StatisticsResult holds the key performance metrics of one ticker.
// AnnualVolatility is null (NaN) when fewer than two daily returns exist.
type StatisticsResult struct {
	Ticker           string    `json:"ticker"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	TotalReturn      Float     `json:"totalReturn"`
	AnnualVolatility Float     `json:"annualVolatility"`
	MaxDrawdown      Float     `json:"maxDrawdown"`
	DailyReturns     []Point   `json:"dailyReturns"`
}

// Statistics computes total return, annualized volatility, and maximum
// drawdown for one ticker. Requires at least two price points.
func (s *Service) Statistics(ctx context.Context, nav *NavContext, req StatisticsRequest) (*StatisticsResult, error) {
	ticker := cleanTicker(req.Ticker)
	if ticker == "" {
		ticker = nav.Ticker()
	}
	start, end, err := resolveRange(nav, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	series, err := s.data.Fetch(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	prices := series.AdjCloses()

	total, err := metrics.TotalReturn(prices)
	if err != nil {
		return nil, err
	}
	rets := metrics.DailyReturns(prices)

	nav.SetTicker(ticker)
	nav.SetDateRange(start, end)

	return &StatisticsResult{
		Ticker:           ticker,
		Start:            start,
		End:              end,
		TotalReturn:      Float(total),
		AnnualVolatility: Float(metrics.AnnualizedVolatility(prices)),
		MaxDrawdown:      Float(metrics.MaxDrawdown(metrics.DrawdownSeries(prices))),
		DailyReturns:     points(series.Dates()[1:], rets),
	}, nil
}
