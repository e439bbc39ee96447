// Package dashboard implements the view entry points of the dashboard as
// plain data-in/data-out services: each view collects its parameters,
// fetches price series through the shared provider, runs metric functions,
// and returns display-ready values. Rendering is someone else's job.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"MarketLens/internal/model"
)

// Fetcher is the slice of the market data provider the views depend on.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error)
	MarketCap(ctx context.Context, ticker string) (float64, bool)
}

// ErrNoComparableData means every requested ticker failed to produce data.
var ErrNoComparableData = errors.New("no data available for the selected tickers and date range")

// InvalidRequestError flags malformed view parameters (reversed date range,
// non-positive window) before the core is invoked.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return "invalid request: " + e.Reason }

// Service exposes the dashboard views over a shared data provider.
type Service struct {
	data Fetcher
	now  func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the time source used for default ranges and YTD.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates the view service.
func NewService(data Fetcher, opts ...ServiceOption) *Service {
	s := &Service{data: data, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Float marshals NaN as JSON null so undefined rolling positions survive
// encoding instead of failing it.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// Point is one dated value of a series.
type Point struct {
	Date  time.Time `json:"date"`
	Value Float     `json:"value"`
}

func points(dates []time.Time, values []float64) []Point {
	pts := make([]Point, len(values))
	for i := range values {
		pts[i] = Point{Date: dates[i], Value: Float(values[i])}
	}
	return pts
}

func floats(values []float64) []Float {
	out := make([]Float, len(values))
	for i, v := range values {
		out[i] = Float(v)
	}
	return out
}

func cleanTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// resolveRange fills zero dates from the navigation context and rejects a
// reversed range.
func resolveRange(nav *NavContext, start, end time.Time) (time.Time, time.Time, error) {
	navStart, navEnd := nav.DateRange()
	if start.IsZero() {
		start = navStart
	}
	if end.IsZero() {
		end = navEnd
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, &InvalidRequestError{Reason: "start date must be before end date"}
	}
	return start, end, nil
}
