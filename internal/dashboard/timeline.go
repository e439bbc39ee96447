package dashboard

import (
	"context"
	"time"
)

// TimelineRequest selects one ticker and date range. Zero values fall back
// to the navigation context.
type TimelineRequest struct {
	Ticker string
	Start  time.Time
	End    time.Time
}

// TimelineResult is the price history of one ticker, ready to plot.
type TimelineResult struct {
	Ticker string    `json:"ticker"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Prices []Point   `json:"prices"`
}

// Timeline returns the adjusted-close price timeline for one ticker.
func (s *Service) Timeline(ctx context.Context, nav *NavContext, req TimelineRequest) (*TimelineResult, error) {
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

	nav.SetTicker(ticker)
	nav.SetDateRange(start, end)

	return &TimelineResult{
		Ticker: ticker,
		Start:  start,
		End:    end,
		Prices: points(series.Dates(), series.AdjCloses()),
	}, nil
}
