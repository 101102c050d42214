// Package engine is the facade over the matching core: it owns the store,
// the scorers, the deduplicator, and the result cache, and exposes the
// operations the transport layer calls.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-match-engine/internal/ingestion"
	"github.com/jonathan/job-match-engine/internal/matchcache"
	"github.com/jonathan/job-match-engine/internal/ranking"
	"github.com/jonathan/job-match-engine/internal/scoring"
	"github.com/jonathan/job-match-engine/internal/types"
)

// Filters narrows the job pool before ranking. The zero value applies no
// filtering and the default result limit.
type Filters struct {
	WorkMode  string `json:"work_mode,omitempty" validate:"omitempty,oneof=remote hybrid onsite"`
	Location  string `json:"location,omitempty"`
	MinSalary *int   `json:"min_salary,omitempty" validate:"omitempty,min=0"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// DefaultLimit caps ranked results when the caller does not ask for a limit.
const DefaultLimit = 50

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	SemanticSkills  bool
	RecencyHalfLife time.Duration
	IngestExpiry    time.Duration
	IngestChunkSize int
	Cache           matchcache.ResultCache
	Logger          *zap.Logger
}

// Engine wires the matching core together.
type Engine struct {
	store    Store
	ranker   *ranking.Ranker
	dedup    *ingestion.Deduplicator
	cache    matchcache.ResultCache
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

// New builds an Engine over the given store.
func New(store Store, opts Options) *Engine {
	if opts.Cache == nil {
		opts.Cache = matchcache.NewMemoryCache()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	skills := scoring.SkillScorer{Semantic: opts.SemanticSkills}
	return &Engine{
		store:    store,
		ranker:   ranking.NewRankerWith(skills, opts.RecencyHalfLife),
		dedup:    ingestion.NewDeduplicatorWith(store, opts.IngestExpiry, opts.IngestChunkSize),
		cache:    opts.Cache,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      opts.Logger,
		now:      time.Now,
	}
}

// RankJobsForCandidate returns the candidate's ranked job matches, best
// first, honoring the filters. Results are cached briefly per
// (candidate, filters) pair.
func (e *Engine) RankJobsForCandidate(ctx context.Context, candidateID uuid.UUID, filters Filters) ([]types.MatchResult, error) {
	if err := e.validate.Struct(filters); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if filters.Limit == 0 {
		filters.Limit = DefaultLimit
	}

	key := cacheKey(candidateID, filters)
	if cached, ok := e.cache.Get(ctx, key); ok {
		e.log.Debug("rank cache hit", zap.String("candidate_id", candidateID.String()))
		return cached, nil
	}

	candidate, err := e.store.FetchCandidateProfile(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch candidate: %v", ErrStorageUnavailable, err)
	}
	if candidate == nil {
		return nil, fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
	}

	signals, err := e.store.FetchCandidateSignals(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch candidate signals: %v", ErrStorageUnavailable, err)
	}

	jobs, err := e.store.FetchActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch active jobs: %v", ErrStorageUnavailable, err)
	}

	results := e.ranker.RankJobsForCandidate(candidate, applyFilters(jobs, filters), signals)
	if len(results) > filters.Limit {
		results = results[:filters.Limit]
	}

	e.cache.Set(ctx, key, results)
	e.log.Info("ranked jobs for candidate",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("pool", len(jobs)),
		zap.Int("matches", len(results)))
	return results, nil
}

// RankCandidatesForJob returns the candidates ranked against one posting,
// for the employer-side view.
func (e *Engine) RankCandidatesForJob(ctx context.Context, jobID uuid.UUID) ([]types.MatchResult, error) {
	job, err := e.store.FetchJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch job: %v", ErrStorageUnavailable, err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}

	candidates, err := e.store.FetchActiveCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch candidates: %v", ErrStorageUnavailable, err)
	}

	results := e.ranker.RankCandidatesForJob(job, candidates)
	e.log.Info("ranked candidates for job",
		zap.String("job_id", jobID.String()),
		zap.Int("pool", len(candidates)),
		zap.Int("matches", len(results)))
	return results, nil
}

// Ingest runs a scraped batch through validation and deduplication.
func (e *Engine) Ingest(ctx context.Context, batch []types.ExternalJobInput) (types.IngestStats, []*ingestion.RecordError, error) {
	stats, recordErrs, err := e.dedup.IngestBatch(ctx, batch)
	if err != nil {
		if errors.Is(err, ingestion.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: ingest: %v", ErrStorageUnavailable, err)
		}
		return stats, recordErrs, err
	}

	e.log.Info("ingested batch",
		zap.Int("received", len(batch)),
		zap.Int("inserted", stats.Inserted),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("errors", stats.Errors))
	return stats, recordErrs, nil
}

// ExpireStaleJobs marks every external posting past its expiry as stale and
// returns how many were swept.
func (e *Engine) ExpireStaleJobs(ctx context.Context) (int, error) {
	swept, err := e.store.SweepExpired(ctx, e.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: sweep expired: %v", ErrStorageUnavailable, err)
	}
	if swept > 0 {
		e.log.Info("swept expired jobs", zap.Int("count", swept))
	}
	return swept, nil
}

// SweepCache drops expired cache entries. Called by the scheduler.
func (e *Engine) SweepCache(ctx context.Context) {
	e.cache.Sweep(ctx)
}

// applyFilters keeps jobs compatible with the request filters.
func applyFilters(jobs []*types.JobPosting, f Filters) []*types.JobPosting {
	if f.WorkMode == "" && f.Location == "" && f.MinSalary == nil {
		return jobs
	}

	kept := make([]*types.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if f.WorkMode != "" && job.WorkMode != f.WorkMode {
			continue
		}
		if f.Location != "" && !locationMatches(job, f.Location) {
			continue
		}
		if f.MinSalary != nil && job.SalaryMax != nil && *job.SalaryMax < *f.MinSalary {
			continue
		}
		kept = append(kept, job)
	}
	return kept
}

// locationMatches is a loose containment check. Remote jobs match any
// location filter.
func locationMatches(job *types.JobPosting, wanted string) bool {
	if job.WorkMode == types.WorkModeRemote {
		return true
	}
	if job.Location == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*job.Location), strings.ToLower(wanted))
}
