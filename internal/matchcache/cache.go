// Package matchcache provides short-lived caching of computed match results.
// Rankings are cheap enough to recompute and go stale fast, so entries live
// for seconds, not hours.
package matchcache

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/job-match-engine/internal/types"
)

const (
	// DefaultTTL bounds how stale a served ranking can be.
	DefaultTTL = 60 * time.Second

	// DefaultMaxResults caps how many results one entry retains. Results
	// arrive sorted, so truncation keeps the top of the ranking.
	DefaultMaxResults = 100
)

// ResultCache is the caching surface the engine depends on.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]types.MatchResult, bool)
	Set(ctx context.Context, key string, results []types.MatchResult)
	Invalidate(ctx context.Context, key string)
	Sweep(ctx context.Context)
}

type entry struct {
	results   []types.MatchResult
	expiresAt time.Time
}

// MemoryCache is the in-process ResultCache. One mutex guards the map, so
// Get and Set are atomic with respect to expiry checks.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxResults int
	now        func() time.Time
}

// NewMemoryCache returns a MemoryCache with the default TTL and result cap.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWith(DefaultTTL, DefaultMaxResults)
}

// NewMemoryCacheWith overrides the TTL and per-entry result cap.
// Non-positive values fall back to the defaults.
func NewMemoryCacheWith(ttl time.Duration, maxResults int) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &MemoryCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxResults: maxResults,
		now:        time.Now,
	}
}

// Get returns the cached results for key if present and unexpired. Expired
// entries are deleted on sight.
func (c *MemoryCache) Get(_ context.Context, key string) ([]types.MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	// Fresh means strictly inside the TTL window; an entry read exactly at
	// its expiry instant is already stale.
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.results, true
}

// Set stores results under key, truncating to the result cap. Setting also
// opportunistically drops any other expired entries.
func (c *MemoryCache) Set(_ context.Context, key string, results []types.MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	c.entries[key] = entry{
		results:   results,
		expiresAt: c.now().Add(c.ttl),
	}
	c.sweepLocked()
}

// Invalidate removes a single entry.
func (c *MemoryCache) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Sweep removes every expired entry. The scheduler calls this on an
// interval so abandoned keys do not accumulate between Sets.
func (c *MemoryCache) Sweep(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
}

func (c *MemoryCache) sweepLocked() {
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Len reports the live entry count, for observability.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
