// Package scheduler warms the provider cache for the configured watchlist
// on a cron schedule, so the first dashboard request of the day hits a
// fresh cache instead of the upstream API.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"MarketLens/internal/model"
)

// Fetcher is the slice of the provider the warmer needs.
type Fetcher interface {
	Fetch(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error)
}

// Scheduler runs the watchlist warm-up as a cron task.
type Scheduler struct {
	cron      *cron.Cron
	data      Fetcher
	tickers   []string
	rangeDays int
	ctx       context.Context
	now       func() time.Time
}

// New creates a scheduler warming the given tickers over a trailing range
// of rangeDays.
func New(ctx context.Context, data Fetcher, tickers []string, rangeDays int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		data:      data,
		tickers:   tickers,
		rangeDays: rangeDays,
		ctx:       ctx,
		now:       time.Now,
	}
}

// Register adds the warm-up task under the given cron spec (with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.warm); err != nil {
		return fmt.Errorf("register watchlist warm-up: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the warm-up immediately (manual trigger / warm on boot).
func (s *Scheduler) RunNow() {
	s.warm()
}

func (s *Scheduler) warm() {
	if len(s.tickers) == 0 {
		return
	}
	end := model.Day(s.now())
	start := end.AddDate(0, 0, -s.rangeDays)
	log.Printf("[INFO] warming cache for %d tickers (%s..%s)",
		len(s.tickers), start.Format("2006-01-02"), end.Format("2006-01-02"))
	for _, ticker := range s.tickers {
		if _, err := s.data.Fetch(s.ctx, ticker, start, end); err != nil {
			log.Printf("[ERROR] warm %s: %v", ticker, err)
		}
	}
}
