package provider

import (
	"context"
	"math"
	"time"

	"MarketLens/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
// Call counters let tests verify how often each strategy was consulted.
type MockSource struct {
	Data        map[string][]model.Bar
	Groups      []SymbolData // overrides Data for Download when set
	DownloadErr error
	HistoryErr  error
	Caps        map[string]float64

	DownloadCalls int
	HistoryCalls  int
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Download(_ context.Context, symbols []string, _, _ time.Time) ([]SymbolData, error) {
	m.DownloadCalls++
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}
	if m.Groups != nil {
		return m.Groups, nil
	}
	groups := make([]SymbolData, 0, len(symbols))
	for _, sym := range symbols {
		groups = append(groups, SymbolData{Symbol: sym, Bars: m.Data[sym]})
	}
	return groups, nil
}

func (m *MockSource) History(_ context.Context, symbol string, _, _ time.Time) (SymbolData, error) {
	m.HistoryCalls++
	if m.HistoryErr != nil {
		return SymbolData{}, m.HistoryErr
	}
	return SymbolData{Symbol: symbol, Bars: m.Data[symbol]}, nil
}

func (m *MockSource) MarketCap(_ context.Context, symbol string) (float64, error) {
	if mc, ok := m.Caps[symbol]; ok {
		return mc, nil
	}
	return 0, &NoDataError{Ticker: symbol}
}

// GenerateBars produces a gently trending daily series for mocks.
func GenerateBars(basePrice float64, count int, from time.Time) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:     model.Day(from.AddDate(0, 0, i)),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: math.NaN(),
			Volume:   1000000,
		}
	}
	return bars
}
