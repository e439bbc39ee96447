package provider

import (
	"testing"
	"time"

	"MarketLens/internal/model"
)

func TestTTLCache_GetIfLive(t *testing.T) {
	now := time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC)
	c := newTTLCache(time.Hour, func() time.Time { return now })

	key := cacheKey("AAPL", testStart, testEnd)
	series := model.PriceSeries{Ticker: "AAPL", Bars: testBars(3)}
	c.put(key, series)

	if _, ok := c.get(key); !ok {
		t.Fatal("expected fresh entry to be live")
	}

	now = now.Add(59 * time.Minute)
	if _, ok := c.get(key); !ok {
		t.Error("entry inside the TTL window must still be served")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.get(key); ok {
		t.Error("expired entry must be treated as absent")
	}
}

func TestTTLCache_MissingKey(t *testing.T) {
	c := newTTLCache(time.Hour, nil)
	if _, ok := c.get(cacheKey("MSFT", testStart, testEnd)); ok {
		t.Error("unknown key must miss")
	}
}

func TestCacheKey_ExactTuple(t *testing.T) {
	a := cacheKey("AAPL", testStart, testEnd)
	b := cacheKey("AAPL", testStart.AddDate(0, 0, 1), testEnd)
	cKey := cacheKey("MSFT", testStart, testEnd)
	if a == b || a == cKey {
		t.Errorf("keys must differ per (ticker, start, end): %q %q %q", a, b, cKey)
	}
}
