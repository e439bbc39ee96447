package model

import (
	"math"
	"time"
)

// Bar represents a single daily OHLCV record. AdjClose is always populated
// in a normalized series; raw upstream bars may carry NaN for missing values.
type Bar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// PriceSeries holds normalized daily price history for one ticker.
// Bars are sorted ascending by date with no duplicate dates, every bar has
// a usable close, and AdjClose is backfilled from Close when the upstream
// source omits it. A series is never mutated after construction.
type PriceSeries struct {
	Ticker string
	Bars   []Bar
}

// Empty reports whether the series contains no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Dates returns the bar dates in order.
func (s PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Date
	}
	return dates
}

// AdjCloses returns the adjusted close prices in order.
func (s PriceSeries) AdjCloses() []float64 {
	prices := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		prices[i] = b.AdjClose
	}
	return prices
}

// Volumes returns the traded volumes in order.
func (s PriceSeries) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}

// Day truncates a timestamp to a calendar date (UTC midnight).
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HasClose reports whether the bar carries a usable close price.
func (b Bar) HasClose() bool { return !math.IsNaN(b.Close) }
