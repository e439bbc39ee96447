package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"MarketLens/internal/model"
)

type warmRecorder struct {
	calls  []string
	starts []time.Time
	err    error
}

func (w *warmRecorder) Fetch(_ context.Context, ticker string, start, _ time.Time) (model.PriceSeries, error) {
	w.calls = append(w.calls, ticker)
	w.starts = append(w.starts, start)
	return model.PriceSeries{Ticker: ticker}, w.err
}

func TestRunNowWarmsAllTickers(t *testing.T) {
	rec := &warmRecorder{}
	s := New(context.Background(), rec, []string{"SPY", "QQQ", "^GSPC"}, 365)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC) }

	s.RunNow()

	if len(rec.calls) != 3 {
		t.Fatalf("fetched %d tickers, want 3", len(rec.calls))
	}
	wantStart := time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC)
	if !rec.starts[0].Equal(wantStart) {
		t.Errorf("start = %v, want %v", rec.starts[0], wantStart)
	}
}

func TestRunNowContinuesPastErrors(t *testing.T) {
	rec := &warmRecorder{err: errors.New("upstream down")}
	s := New(context.Background(), rec, []string{"SPY", "QQQ"}, 30)

	s.RunNow()

	if len(rec.calls) != 2 {
		t.Errorf("fetched %d tickers, want all 2 despite errors", len(rec.calls))
	}
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := New(context.Background(), &warmRecorder{}, []string{"SPY"}, 30)
	if err := s.Register("not a cron spec"); err == nil {
		t.Fatal("Register accepted an invalid cron spec")
	}
	if err := s.Register("0 0 7 * * 1-5"); err != nil {
		t.Fatalf("Register rejected a valid spec: %v", err)
	}
}
