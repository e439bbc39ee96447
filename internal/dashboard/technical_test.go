package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"MarketLens/internal/model"
)

func technicalFetcher(n int) *stubFetcher {
	from := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + math.Sin(float64(i)/5)*10
	}
	return &stubFetcher{data: map[string][]model.Bar{
		"AAPL": bars(from, prices...),
	}}
}

func TestTechnicalAlignedSeries(t *testing.T) {
	svc := NewService(technicalFetcher(60))

	got, err := svc.Technical(context.Background(), testNav(), TechnicalRequest{
		Ticker:      "AAPL",
		ShortWindow: 5,
		LongWindow:  20,
		RSIWindow:   14,
		Bollinger:   true,
	})
	if err != nil {
		t.Fatalf("Technical: %v", err)
	}
	n := len(got.Dates)
	for name, series := range map[string][]Float{
		"Price":     got.Price,
		"SMAShort":  got.SMAShort,
		"SMALong":   got.SMALong,
		"BBUpper":   got.BBUpper,
		"BBLower":   got.BBLower,
		"RSI":       got.RSI,
		"MACD":      got.MACD,
		"Signal":    got.Signal,
		"Histogram": got.Histogram,
	} {
		if len(series) != n {
			t.Errorf("len(%s) = %d, want %d", name, len(series), n)
		}
	}
	if !math.IsNaN(float64(got.SMAShort[3])) {
		t.Error("SMAShort[3] defined before the window filled")
	}
	if math.IsNaN(float64(got.SMAShort[4])) {
		t.Error("SMAShort[4] is NaN, want first defined position")
	}
	if math.IsNaN(float64(got.BBUpper[19])) || !math.IsNaN(float64(got.BBUpper[18])) {
		t.Error("Bollinger bands not defined exactly from index 19")
	}
}

func TestTechnicalBollingerOptional(t *testing.T) {
	svc := NewService(technicalFetcher(40))

	got, err := svc.Technical(context.Background(), testNav(), TechnicalRequest{
		Ticker: "AAPL",
	})
	if err != nil {
		t.Fatalf("Technical: %v", err)
	}
	if got.BBUpper != nil || got.BBLower != nil {
		t.Error("Bollinger bands present without being requested")
	}
	if got.ShortWindow != DefaultShortWindow || got.LongWindow != DefaultLongWindow {
		t.Errorf("windows = %d/%d, want defaults %d/%d",
			got.ShortWindow, got.LongWindow, DefaultShortWindow, DefaultLongWindow)
	}
}

func TestTechnicalWindowValidation(t *testing.T) {
	svc := NewService(technicalFetcher(40))

	tests := []struct {
		name string
		req  TechnicalRequest
	}{
		{"short equals long", TechnicalRequest{Ticker: "AAPL", ShortWindow: 50, LongWindow: 50}},
		{"short above long", TechnicalRequest{Ticker: "AAPL", ShortWindow: 200, LongWindow: 50}},
		{"negative rsi", TechnicalRequest{Ticker: "AAPL", RSIWindow: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Technical(context.Background(), testNav(), tt.req)
			var invalid *InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want InvalidRequestError", err)
			}
		})
	}
}
