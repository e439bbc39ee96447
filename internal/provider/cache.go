package provider

import (
	"fmt"
	"sync"
	"time"

	"MarketLens/internal/model"
)

// ttlCache stores normalized series keyed by the exact (ticker, start, end)
// tuple. Entries older than the TTL are treated as absent; there is no
// eviction beyond expiry and no sub-range reuse.
type ttlCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	series    model.PriceSeries
	createdAt time.Time
}

func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	if now == nil {
		now = time.Now
	}
	return &ttlCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(ticker string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// get returns the cached series if a live entry exists.
func (c *ttlCache) get(key string) (model.PriceSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.createdAt) >= c.ttl {
		return model.PriceSeries{}, false
	}
	return e.series, true
}

// put stores a series under the key with the current timestamp. The last
// writer for a key wins.
func (c *ttlCache) put(key string, series model.PriceSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{series: series, createdAt: c.now()}
}
