// Package ratelimit provides per-client request limiting using token
// buckets. Ranking is cheap but unbounded fan-out is not; ingestion is
// write-heavy and gets the strictest tier.
package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Rule is a per-endpoint limit. Path matches by prefix. Limit <= 0 means
// unlimited (health checks).
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	Rules         []Rule
}

// LoadConfig builds a Config from environment variables and the built-in
// endpoint tiers.
func LoadConfig() *Config {
	enabled := true
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			enabled = parsed
		}
	}

	limit := 600
	if v := os.Getenv("RATE_LIMIT_DEFAULT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	window := time.Minute
	if v := os.Getenv("RATE_LIMIT_DEFAULT_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			window = parsed
		}
	}

	return &Config{
		Enabled:       enabled,
		DefaultLimit:  limit,
		DefaultWindow: window,
		Rules: []Rule{
			// Batch ingestion is the expensive write path.
			{Path: "/ingest", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
			{Path: "/maintenance/", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
			// Ranking reads get a moderate per-client ceiling.
			{Path: "/candidates/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
			{Path: "/jobs/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
			// Health checks are unlimited.
			{Path: "/health", Method: "GET", Limit: 0},
		},
	}
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

func (b *bucket) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Limiter tracks one token bucket per (client, rule) pair.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	now     func() time.Time
}

// NewLimiter creates a Limiter. A nil config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{Enabled: false}
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
	}
}

// Allow reports whether a request from clientID to the endpoint may proceed.
func (l *Limiter) Allow(clientID, path, method string) bool {
	if !l.config.Enabled {
		return true
	}

	rule := l.match(path, method)
	if rule.Limit <= 0 {
		return true
	}

	key := clientID + ":" + rule.Path + ":" + rule.Method
	return l.getBucket(key, rule).allow(l.now())
}

func (l *Limiter) match(path, method string) Rule {
	for _, rule := range l.config.Rules {
		if rule.Method == method && strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}
	return Rule{
		Path:   "*",
		Method: method,
		Limit:  l.config.DefaultLimit,
		Window: l.config.DefaultWindow,
		Burst:  l.config.DefaultLimit,
	}
}

func (l *Limiter) getBucket(key string, rule Rule) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b := &bucket{
		tokens:     float64(capacity),
		capacity:   float64(capacity),
		refillRate: float64(rule.Limit) / rule.Window.Seconds(),
		lastRefill: l.now(),
	}
	l.buckets[key] = b
	return b
}
