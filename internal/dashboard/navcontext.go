package dashboard

import (
	"time"

	"MarketLens/internal/model"
)

// NavContext carries the dashboard's navigation state between views: the
// last-used ticker, ticker list, and date range. It is owned by the caller
// and passed into each view entry point; views read defaults from it and
// write their own updates back. The data core never touches it.
type NavContext struct {
	ticker  string
	tickers []string
	start   time.Time
	end     time.Time
}

// NewNavContext returns a context with the stock defaults: AAPL, the
// AAPL/MSFT/GOOGL comparison set, and a one-year range ending today.
func NewNavContext(now time.Time) *NavContext {
	today := model.Day(now)
	return &NavContext{
		ticker:  "AAPL",
		tickers: []string{"AAPL", "MSFT", "GOOGL"},
		start:   today.AddDate(0, 0, -365),
		end:     today,
	}
}

func (n *NavContext) Ticker() string          { return n.ticker }
func (n *NavContext) SetTicker(ticker string) { n.ticker = ticker }

func (n *NavContext) Tickers() []string { return append([]string(nil), n.tickers...) }
func (n *NavContext) SetTickers(tickers []string) {
	n.tickers = append([]string(nil), tickers...)
}

func (n *NavContext) DateRange() (start, end time.Time) { return n.start, n.end }
func (n *NavContext) SetDateRange(start, end time.Time) {
	n.start = start
	n.end = end
}
