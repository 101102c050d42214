package matchcache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-match-engine/internal/types"
)

func sampleResults(n int) []types.MatchResult {
	results := make([]types.MatchResult, n)
	for i := range results {
		results[i] = types.MatchResult{
			CandidateID: uuid.New(),
			JobID:       uuid.New(),
			FinalScore:  1.0 - float64(i)*0.001,
		}
	}
	return results
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	results := sampleResults(3)

	cache.Set(ctx, "cand-1", results)

	got, ok := cache.Get(ctx, "cand-1")
	require.True(t, ok)
	assert.Equal(t, results, got)
}

func TestMemoryCache_MissingKey(t *testing.T) {
	cache := NewMemoryCache()
	got, ok := cache.Get(context.Background(), "absent")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMemoryCache_ExpiryOnGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheWith(time.Minute, 10)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "cand-1", sampleResults(1))

	// Still fresh at 59s.
	now = now.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "cand-1")
	assert.True(t, ok)

	// Gone just past the TTL.
	now = now.Add(2 * time.Second)
	_, ok = cache.Get(ctx, "cand-1")
	assert.False(t, ok)
	assert.Zero(t, cache.Len(), "expired entry is deleted on sight")
}

func TestMemoryCache_ExpiresExactlyAtTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheWith(time.Minute, 10)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "cand-1", sampleResults(1))

	// The window is half-open: a read at exactly set-time + TTL misses.
	now = now.Add(time.Minute)
	_, ok := cache.Get(ctx, "cand-1")
	assert.False(t, ok)
}

func TestMemoryCache_CapsResults(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheWith(time.Minute, 5)

	cache.Set(ctx, "cand-1", sampleResults(20))

	got, ok := cache.Get(ctx, "cand-1")
	require.True(t, ok)
	require.Len(t, got, 5)
	// Results arrive sorted, so the cap keeps the top of the ranking.
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].FinalScore, got[i-1].FinalScore)
	}
}

func TestMemoryCache_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	cache.Set(ctx, "cand-1", sampleResults(2))
	fresh := sampleResults(1)
	cache.Set(ctx, "cand-1", fresh)

	got, ok := cache.Get(ctx, "cand-1")
	require.True(t, ok)
	assert.Equal(t, fresh, got)
}

func TestMemoryCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	cache.Set(ctx, "cand-1", sampleResults(1))
	cache.Invalidate(ctx, "cand-1")

	_, ok := cache.Get(ctx, "cand-1")
	assert.False(t, ok)
}

func TestMemoryCache_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheWith(time.Minute, 10)
	cache.now = func() time.Time { return now }

	for i := 0; i < 4; i++ {
		cache.Set(ctx, fmt.Sprintf("cand-%d", i), sampleResults(1))
	}
	require.Equal(t, 4, cache.Len())

	now = now.Add(2 * time.Minute)
	cache.Sweep(ctx)
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_SetSweepsExpiredSiblings(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheWith(time.Minute, 10)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "old", sampleResults(1))

	now = now.Add(2 * time.Minute)
	cache.Set(ctx, "new", sampleResults(1))

	assert.Equal(t, 1, cache.Len(), "expired sibling dropped by Set")
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	done := make(chan struct{})

	for w := 0; w < 8; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			key := fmt.Sprintf("cand-%d", w%2)
			for i := 0; i < 200; i++ {
				cache.Set(ctx, key, sampleResults(2))
				cache.Get(ctx, key)
				cache.Sweep(ctx)
			}
		}(w)
	}
	for w := 0; w < 8; w++ {
		<-done
	}
}

func TestDefaultsApplied(t *testing.T) {
	cache := NewMemoryCacheWith(0, 0)
	assert.Equal(t, DefaultTTL, cache.ttl)
	assert.Equal(t, DefaultMaxResults, cache.maxResults)
}
