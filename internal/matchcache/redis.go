package matchcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/job-match-engine/internal/types"
)

// keyPrefix namespaces match entries within a shared Redis instance.
const keyPrefix = "matchcache:"

// RedisCache is the ResultCache backed by Redis, for deployments running
// more than one engine replica. Entries are stored as JSON with the TTL
// enforced by Redis key expiry, so Sweep has nothing to do.
type RedisCache struct {
	client     *redis.Client
	ttl        time.Duration
	maxResults int
}

// NewRedisCache returns a RedisCache with the default TTL and result cap.
func NewRedisCache(client *redis.Client) *RedisCache {
	return NewRedisCacheWith(client, DefaultTTL, DefaultMaxResults)
}

// NewRedisCacheWith overrides the TTL and per-entry result cap.
// Non-positive values fall back to the defaults.
func NewRedisCacheWith(client *redis.Client, ttl time.Duration, maxResults int) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &RedisCache{client: client, ttl: ttl, maxResults: maxResults}
}

// Get returns the cached results for key. Redis errors and corrupt payloads
// read as cache misses; the caller recomputes either way.
func (c *RedisCache) Get(ctx context.Context, key string) ([]types.MatchResult, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var results []types.MatchResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, false
	}
	return results, true
}

// Set stores results under key with the cache TTL. A failed write is
// dropped silently; the cache is best effort.
func (c *RedisCache) Set(ctx context.Context, key string, results []types.MatchResult) {
	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	c.client.Set(ctx, keyPrefix+key, payload, c.ttl)
}

// Invalidate removes a single entry.
func (c *RedisCache) Invalidate(ctx context.Context, key string) {
	c.client.Del(ctx, keyPrefix+key)
}

// Sweep is a no-op: Redis expires keys itself.
func (c *RedisCache) Sweep(context.Context) {}
