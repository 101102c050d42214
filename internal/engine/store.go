package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-match-engine/internal/types"
)

// Store is the persistence surface the engine depends on. The pgx
// implementation lives in internal/db; tests substitute fakes.
type Store interface {
	FetchActiveJobs(ctx context.Context) ([]*types.JobPosting, error)
	FetchJob(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	FetchCandidateProfile(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error)
	FetchCandidateSignals(ctx context.Context, id uuid.UUID) ([]types.CandidateSignal, error)
	FetchActiveCandidates(ctx context.Context) ([]*types.CandidateProfile, error)

	UpsertJob(ctx context.Context, job *types.JobPosting) (inserted bool, err error)
	FindJobBySourceKey(ctx context.Context, externalID, source string) (*types.JobPosting, error)
	UpdateJobLiveness(ctx context.Context, id uuid.UUID, status string, checkedAt time.Time) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
