// Package scheduler runs the periodic maintenance work: the expiry sweep
// that degrades overdue postings and the cache sweep that drops stale
// ranking entries.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Default schedules. Expiry is hourly; the cache sweep runs often since
// entries live for about a minute.
const (
	DefaultExpirySpec     = "@hourly"
	DefaultCacheSweepSpec = "@every 1m"
)

// Maintainer is the engine surface the scheduler drives.
type Maintainer interface {
	ExpireStaleJobs(ctx context.Context) (int, error)
	SweepCache(ctx context.Context)
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron       *cron.Cron
	maintainer Maintainer
	log        *zap.Logger
	timeout    time.Duration
}

// New registers the maintenance jobs. Empty specs select the defaults.
func New(maintainer Maintainer, expirySpec, cacheSweepSpec string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expirySpec == "" {
		expirySpec = DefaultExpirySpec
	}
	if cacheSweepSpec == "" {
		cacheSweepSpec = DefaultCacheSweepSpec
	}

	s := &Scheduler{
		cron:       cron.New(),
		maintainer: maintainer,
		log:        logger,
		timeout:    time.Minute,
	}

	if _, err := s.cron.AddFunc(expirySpec, s.runExpiry); err != nil {
		return nil, fmt.Errorf("failed to schedule expiry sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(cacheSweepSpec, s.runCacheSweep); err != nil {
		return nil, fmt.Errorf("failed to schedule cache sweep: %w", err)
	}

	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runExpiry() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	swept, err := s.maintainer.ExpireStaleJobs(ctx)
	if err != nil {
		s.log.Error("expiry sweep failed", zap.Error(err))
		return
	}
	s.log.Debug("expiry sweep done", zap.Int("swept", swept))
}

func (s *Scheduler) runCacheSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.maintainer.SweepCache(ctx)
}
