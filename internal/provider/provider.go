// Package provider fetches historical OHLCV series from an upstream
// market-data source, normalizes them into the canonical PriceSeries
// schema, and caches results per (ticker, start, end) with a bounded TTL.
package provider

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"MarketLens/internal/model"
	"MarketLens/internal/recorder"
)

// DefaultTTL bounds how long a cached series is served before the upstream
// source is consulted again.
const DefaultTTL = time.Hour

// Provider is the shared fetch-and-normalize entry point used by every view.
type Provider struct {
	src    Source
	quotes QuoteSource
	cache  *ttlCache
	rec    recorder.Recorder

	ttl time.Duration
	now func() time.Time
}

// Option configures a Provider.
type Option func(*Provider)

// WithTTL sets the cache time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) { p.ttl = ttl }
}

// WithClock sets the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithRecorder sets the fetch-audit recorder.
func WithRecorder(rec recorder.Recorder) Option {
	return func(p *Provider) { p.rec = rec }
}

// WithQuotes sets the optional quote source for market-cap enrichment.
func WithQuotes(q QuoteSource) Option {
	return func(p *Provider) { p.quotes = q }
}

// New creates a Provider over the given upstream source.
func New(src Source, opts ...Option) *Provider {
	p := &Provider{
		src: src,
		rec: recorder.NewNoopRecorder(),
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cache = newTTLCache(p.ttl, p.now)
	return p
}

// Fetch returns the normalized price history for one ticker over a date
// range. An empty ticker yields an empty series, not an error. A live cache
// entry is served without contacting upstream. On a miss the primary bulk
// download is tried first; if it errors or comes back empty the single-
// ticker history endpoint is tried over the same range. Only a successful
// fetch is cached.
//
// Reversed date ranges are passed through unchanged; validating them is the
// caller's concern.
func (p *Provider) Fetch(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	if ticker == "" {
		return model.PriceSeries{}, nil
	}

	key := cacheKey(ticker, start, end)
	if series, ok := p.cache.get(key); ok {
		p.record(ticker, start, end, "cache", series.Len(), 0, nil)
		return series, nil
	}

	began := p.now()

	raw, strategy, err := p.retrieve(ctx, ticker, start, end)
	if err != nil {
		p.record(ticker, start, end, strategy, 0, p.now().Sub(began), err)
		return model.PriceSeries{}, err
	}

	series := normalize(ticker, raw)
	if series.Empty() {
		err := &NoDataError{Ticker: ticker, Start: start, End: end}
		p.record(ticker, start, end, strategy, 0, p.now().Sub(began), err)
		return model.PriceSeries{}, err
	}

	p.cache.put(key, series)
	p.record(ticker, start, end, strategy, series.Len(), p.now().Sub(began), nil)
	return series, nil
}

// retrieve runs the primary download and, when it errors or comes back
// empty, the fallback history endpoint. A primary error alone is not fatal.
func (p *Provider) retrieve(ctx context.Context, ticker string, start, end time.Time) (SymbolData, string, error) {
	groups, dlErr := p.src.Download(ctx, []string{ticker}, start, end)
	if dlErr != nil {
		log.Printf("[WARN] download %s failed, trying history fallback: %v", ticker, dlErr)
	}

	raw := collapse(groups, ticker)
	if dlErr == nil && len(raw.Bars) > 0 {
		return raw, "download", nil
	}

	raw, histErr := p.src.History(ctx, ticker, start, end)
	if histErr == nil && len(raw.Bars) > 0 {
		return raw, "history", nil
	}

	// Both strategies came up dry. Transport failure on both paths is an
	// upstream problem; an empty answer from a working path means there is
	// genuinely nothing for this ticker and range.
	if dlErr != nil && histErr != nil {
		return SymbolData{}, "history", &UpstreamError{Ticker: ticker, Err: histErr}
	}
	return SymbolData{}, "history", &NoDataError{Ticker: ticker, Start: start, End: end}
}

// collapse reduces a composite multi-symbol download result to one symbol's
// data: the group matching the ticker if present, otherwise the outer
// grouping is dropped and the first group is taken.
func collapse(groups []SymbolData, ticker string) SymbolData {
	if len(groups) == 0 {
		return SymbolData{Symbol: ticker}
	}
	for _, g := range groups {
		if g.Symbol == ticker {
			return g
		}
	}
	return groups[0]
}

// normalize produces the canonical series: calendar dates, ascending order,
// duplicate dates deduped keeping the last occurrence, rows without a close
// dropped, and AdjClose backfilled from Close where absent.
func normalize(ticker string, raw SymbolData) model.PriceSeries {
	byDate := make(map[time.Time]model.Bar, len(raw.Bars))
	var dates []time.Time
	for _, b := range raw.Bars {
		if !b.HasClose() {
			continue
		}
		b.Date = model.Day(b.Date)
		if math.IsNaN(b.AdjClose) {
			b.AdjClose = b.Close
		}
		if _, seen := byDate[b.Date]; !seen {
			dates = append(dates, b.Date)
		}
		byDate[b.Date] = b
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	bars := make([]model.Bar, len(dates))
	for i, d := range dates {
		bars[i] = byDate[d]
	}
	return model.PriceSeries{Ticker: ticker, Bars: bars}
}

// MarketCap returns the ticker's market capitalization on a best-effort
// basis: any failure, including a missing quote source, yields ok=false and
// is never surfaced as an error.
func (p *Provider) MarketCap(ctx context.Context, ticker string) (float64, bool) {
	if p.quotes == nil || ticker == "" {
		return 0, false
	}
	mc, err := p.quotes.MarketCap(ctx, ticker)
	if err != nil || mc <= 0 {
		return 0, false
	}
	return mc, true
}

func (p *Provider) record(ticker string, start, end time.Time, strategy string, bars int, elapsed time.Duration, fetchErr error) {
	evt := &recorder.FetchEvent{
		Ticker:   ticker,
		Start:    start,
		End:      end,
		Strategy: strategy,
		Bars:     bars,
		Elapsed:  elapsed,
	}
	if fetchErr != nil {
		evt.Err = fetchErr.Error()
	}
	if err := p.rec.RecordFetch(evt); err != nil {
		log.Printf("[WARN] record fetch: %v", err)
	}
}
