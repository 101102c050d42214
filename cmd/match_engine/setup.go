package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/job-match-engine/internal/config"
	"github.com/jonathan/job-match-engine/internal/db"
	"github.com/jonathan/job-match-engine/internal/engine"
	"github.com/jonathan/job-match-engine/internal/logger"
	"github.com/jonathan/job-match-engine/internal/matchcache"
)

// buildEngine assembles an engine from the environment configuration. The
// caller owns the returned DB handle and must Close it.
func buildEngine(ctx context.Context) (*engine.Engine, *db.DB, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cache, err := buildCache(cfg)
	if err != nil {
		database.Close()
		return nil, nil, nil, nil, err
	}

	eng := engine.New(database, engine.Options{
		SemanticSkills:  cfg.SemanticSkills,
		RecencyHalfLife: cfg.RecencyHalfLife,
		IngestExpiry:    cfg.IngestExpiry,
		IngestChunkSize: cfg.IngestChunkSize,
		Cache:           cache,
		Logger:          log,
	})
	return eng, database, cfg, log, nil
}

// buildCache selects Redis when REDIS_URL is set, the in-process cache
// otherwise.
func buildCache(cfg *config.Config) (matchcache.ResultCache, error) {
	if cfg.RedisURL == "" {
		return matchcache.NewMemoryCacheWith(cfg.CacheTTL, cfg.CacheMaxResults), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	return matchcache.NewRedisCacheWith(redis.NewClient(opts), cfg.CacheTTL, cfg.CacheMaxResults), nil
}
