package dashboard

import (
	"context"
	"fmt"
	"time"

	"MarketLens/internal/metrics"
)

// Default indicator parameters, matching the view's slider defaults.
const (
	DefaultShortWindow = 50
	DefaultLongWindow  = 200
	DefaultRSIWindow   = 14

	bollingerWindow = 20
	bollingerK      = 2
)

// TechnicalRequest parameterizes the technical analysis view. Zero windows
// take the defaults.
type TechnicalRequest struct {
	Ticker      string
	Start       time.Time
	End         time.Time
	ShortWindow int
	LongWindow  int
	RSIWindow   int
	Bollinger   bool
}

// TechnicalResult carries the indicator series, all aligned to Dates.
// Rolling positions before their window has filled are null.
type TechnicalResult struct {
	Ticker      string      `json:"ticker"`
	Dates       []time.Time `json:"dates"`
	Price       []Float     `json:"price"`
	SMAShort    []Float     `json:"smaShort"`
	SMALong     []Float     `json:"smaLong"`
	ShortWindow int         `json:"shortWindow"`
	LongWindow  int         `json:"longWindow"`
	BBUpper     []Float     `json:"bbUpper,omitempty"`
	BBLower     []Float     `json:"bbLower,omitempty"`
	RSI         []Float     `json:"rsi"`
	RSIWindow   int         `json:"rsiWindow"`
	MACD        []Float     `json:"macd"`
	Signal      []Float     `json:"signal"`
	Histogram   []Float     `json:"histogram"`
}

// Technical computes moving averages, optional Bollinger bands, RSI, and
// MACD (fixed 12/26/9) for one ticker.
func (s *Service) Technical(ctx context.Context, nav *NavContext, req TechnicalRequest) (*TechnicalResult, error) {
	ticker := cleanTicker(req.Ticker)
	if ticker == "" {
		ticker = nav.Ticker()
	}
	start, end, err := resolveRange(nav, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	short, long, rsiWin := req.ShortWindow, req.LongWindow, req.RSIWindow
	if short == 0 {
		short = DefaultShortWindow
	}
	if long == 0 {
		long = DefaultLongWindow
	}
	if rsiWin == 0 {
		rsiWin = DefaultRSIWindow
	}
	if short <= 0 || long <= 0 || rsiWin <= 0 {
		return nil, &InvalidRequestError{Reason: "windows must be positive"}
	}
	if short >= long {
		return nil, &InvalidRequestError{
			Reason: fmt.Sprintf("short MA window (%d) must be smaller than long MA window (%d)", short, long),
		}
	}

	series, err := s.data.Fetch(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	prices := series.AdjCloses()

	smaShort, err := metrics.SMA(prices, short)
	if err != nil {
		return nil, err
	}
	smaLong, err := metrics.SMA(prices, long)
	if err != nil {
		return nil, err
	}
	rsi, err := metrics.RSI(prices, rsiWin)
	if err != nil {
		return nil, err
	}
	macd := metrics.MACD(prices)

	result := &TechnicalResult{
		Ticker:      ticker,
		Dates:       series.Dates(),
		Price:       floats(prices),
		SMAShort:    floats(smaShort),
		SMALong:     floats(smaLong),
		ShortWindow: short,
		LongWindow:  long,
		RSI:         floats(rsi),
		RSIWindow:   rsiWin,
		MACD:        floats(macd.Line),
		Signal:      floats(macd.Signal),
		Histogram:   floats(macd.Histogram),
	}

	if req.Bollinger {
		upper, lower, err := metrics.BollingerBands(prices, bollingerWindow, bollingerK)
		if err != nil {
			return nil, err
		}
		result.BBUpper = floats(upper)
		result.BBLower = floats(lower)
	}

	nav.SetTicker(ticker)
	nav.SetDateRange(start, end)
	return result, nil
}
