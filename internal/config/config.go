// Package config loads the engine configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the engine and server read. Values come from
// environment variables; zero-value fields mean the default applies.
type Config struct {
	Port        int    // PORT
	DatabaseURL string // DATABASE_URL (required for serve)
	RedisURL    string // REDIS_URL (optional; empty selects the in-memory cache)

	SemanticSkills  bool          // SEMANTIC_SKILLS
	RecencyHalfLife time.Duration // RECENCY_HALF_LIFE
	IngestExpiry    time.Duration // INGEST_EXPIRY
	IngestChunkSize int           // INGEST_CHUNK_SIZE

	CacheTTL        time.Duration // CACHE_TTL
	CacheMaxResults int           // CACHE_MAX_RESULTS

	ExpiryCronSpec     string // EXPIRY_CRON
	CacheSweepCronSpec string // CACHE_SWEEP_CRON

	LogJSON  bool // LOG_JSON
	LogDebug bool // LOG_DEBUG
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               8080,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		ExpiryCronSpec:     os.Getenv("EXPIRY_CRON"),
		CacheSweepCronSpec: os.Getenv("CACHE_SWEEP_CRON"),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.IngestChunkSize, err = envInt("INGEST_CHUNK_SIZE", 0); err != nil {
		return nil, err
	}
	if cfg.CacheMaxResults, err = envInt("CACHE_MAX_RESULTS", 0); err != nil {
		return nil, err
	}

	if cfg.RecencyHalfLife, err = envDuration("RECENCY_HALF_LIFE"); err != nil {
		return nil, err
	}
	if cfg.IngestExpiry, err = envDuration("INGEST_EXPIRY"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envDuration("CACHE_TTL"); err != nil {
		return nil, err
	}

	if cfg.SemanticSkills, err = envBool("SEMANTIC_SKILLS"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = envBool("LOG_JSON"); err != nil {
		return nil, err
	}
	if cfg.LogDebug, err = envBool("LOG_DEBUG"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Presence of DATABASE_URL is checked by the
// commands that need it, not here.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT %d out of range", c.Port)
	}
	if c.RecencyHalfLife < 0 {
		return fmt.Errorf("config error: RECENCY_HALF_LIFE must be non-negative")
	}
	if c.IngestExpiry < 0 {
		return fmt.Errorf("config error: INGEST_EXPIRY must be non-negative")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: CACHE_TTL must be non-negative")
	}
	if c.IngestChunkSize < 0 {
		return fmt.Errorf("config error: INGEST_CHUNK_SIZE must be non-negative")
	}
	if c.CacheMaxResults < 0 {
		return fmt.Errorf("config error: CACHE_MAX_RESULTS must be non-negative")
	}
	return nil
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config error: %s: %w", key, err)
	}
	return parsed, nil
}

func envDuration(key string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config error: %s: %w", key, err)
	}
	return parsed, nil
}

func envBool(key string) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config error: %s: %w", key, err)
	}
	return parsed, nil
}
