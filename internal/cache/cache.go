// Package cache holds fetched price series keyed by symbol and lookback
// window. Invalidation is explicit and caller-driven (the dashboard's
// refresh action), never implicit behind a fetch.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/davidqio/marketlens/internal/core"
)

type entry struct {
	series   core.PriceSeries
	storedAt time.Time
}

// SeriesCache is an in-memory price series cache. A TTL of zero means
// entries never expire on their own.
type SeriesCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a series cache with the given TTL.
func New(ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func key(symbol string, lookbackDays int) string {
	return fmt.Sprintf("%s|%d", symbol, lookbackDays)
}

// Get returns the cached series for (symbol, lookback). Expired entries
// read as misses. The returned series is a copy, so callers cannot mutate
// the cached data.
func (c *SeriesCache) Get(symbol string, lookbackDays int) (core.PriceSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key(symbol, lookbackDays)]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.series.Clone(), true
}

// Put stores a series for (symbol, lookback), copying it so later caller
// mutations cannot leak into the cache.
func (c *SeriesCache) Put(symbol string, lookbackDays int, series core.PriceSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key(symbol, lookbackDays)] = entry{
		series:   series.Clone(),
		storedAt: c.now(),
	}
}

// Invalidate drops all cached windows for a symbol.
func (c *SeriesCache) Invalidate(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := symbol + "|"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll empties the cache.
func (c *SeriesCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of live entries, counting expired ones too until
// they are overwritten or invalidated.
func (c *SeriesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
