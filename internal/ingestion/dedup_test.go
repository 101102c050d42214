package ingestion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-match-engine/internal/types"
)

type fakeStore struct {
	mu      sync.Mutex
	jobs    map[string]*types.JobPosting
	findErr error
	saveErr error

	// blindFinds makes lookups miss even for stored keys, simulating a
	// concurrent ingester that inserts between the lookup and the upsert.
	blindFinds bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{jobs: make(map[string]*types.JobPosting)}
}

func (f *fakeStore) key(externalID, source string) string {
	return externalID + "|" + source
}

func (f *fakeStore) FindJobBySourceKey(_ context.Context, externalID, source string) (*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.blindFinds {
		return nil, nil
	}
	job, ok := f.jobs[f.key(externalID, source)]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (f *fakeStore) UpsertJob(_ context.Context, job *types.JobPosting) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return false, f.saveErr
	}
	key := f.key(derefStr(job.ExternalID), job.Source)
	_, existed := f.jobs[key]
	copied := *job
	f.jobs[key] = &copied
	return !existed, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func validInput(externalID string) types.ExternalJobInput {
	return types.ExternalJobInput{
		Title:      "Backend Engineer",
		Company:    "Acme",
		Skills:     []string{"Go", "PostgreSQL"},
		Source:     "lever",
		ExternalID: externalID,
	}
}

func TestIngestBatch_InsertsNewRecords(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	dedup := NewDeduplicatorAt(store, func() time.Time { return now })

	stats, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{
		validInput("ext-1"),
		validInput("ext-2"),
	})

	require.NoError(t, err)
	assert.Empty(t, recErrMessages(recErrs))
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 0, stats.Duplicates)
	assert.Equal(t, 0, stats.Errors)

	job := store.jobs["ext-1|lever"]
	require.NotNil(t, job)
	assert.Equal(t, 85, job.TrustScore)
	assert.Equal(t, types.LivenessUnknown, job.LivenessStatus, "first sighting is not yet a confirmation")
	assert.Equal(t, []string{"go", "postgresql"}, job.Skills)
	require.NotNil(t, job.ExpiresAt)
	assert.Equal(t, now.Add(DefaultExpiry), *job.ExpiresAt)
	assert.Equal(t, types.JobStatusActive, job.Status)
}

func TestIngestBatch_DeduplicatesBySourceKey(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	dedup := NewDeduplicatorAt(store, func() time.Time { return now })

	_, _, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{validInput("ext-1")})
	require.NoError(t, err)
	originalID := store.jobs["ext-1|lever"].ID

	// Same key arrives again with an updated title.
	later := now.Add(48 * time.Hour)
	dedup.now = func() time.Time { return later }
	updated := validInput("ext-1")
	updated.Title = "Senior Backend Engineer"

	stats, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{updated})
	require.NoError(t, err)
	require.Empty(t, recErrs)
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 1, stats.Duplicates)

	job := store.jobs["ext-1|lever"]
	assert.Equal(t, originalID, job.ID, "identity survives re-ingestion")
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, later.Add(DefaultExpiry), *job.ExpiresAt, "expiry window restarts")
}

func TestIngestBatch_DuplicateWithinSameBatch(t *testing.T) {
	store := newFakeStore()
	dedup := NewDeduplicator(store)

	stats, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{
		validInput("ext-1"),
		validInput("ext-1"),
	})

	require.NoError(t, err)
	require.Empty(t, recErrs)
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Len(t, store.jobs, 1)
}

func TestIngestBatch_SameExternalIDDifferentSources(t *testing.T) {
	store := newFakeStore()
	dedup := NewDeduplicator(store)

	other := validInput("ext-1")
	other.Source = "indeed"

	stats, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{
		validInput("ext-1"),
		other,
	})

	require.NoError(t, err)
	require.Empty(t, recErrs)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 70, store.jobs["ext-1|indeed"].TrustScore)
}

func TestIngestBatch_BadRecordDoesNotAbortBatch(t *testing.T) {
	store := newFakeStore()
	dedup := NewDeduplicator(store)

	missing := validInput("ext-2")
	missing.Title = ""

	stats, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{
		validInput("ext-1"),
		missing,
		validInput("ext-3"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 1, stats.Errors)
	require.Len(t, recErrs, 1)
	assert.Equal(t, 1, recErrs[0].Index)
	assert.Equal(t, "ext-2", recErrs[0].ExternalID)
}

func TestIngestBatch_RejectsPlatformSource(t *testing.T) {
	store := newFakeStore()
	dedup := NewDeduplicator(store)

	forged := validInput("ext-1")
	forged.Source = "Platform"

	stats, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{forged})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Errors)
	require.Len(t, recErrs, 1)
	assert.ErrorIs(t, recErrs[0], errPlatformSource)
}

func TestIngestBatch_StoreOutageAbortsBatch(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("connection refused")
	dedup := NewDeduplicator(store)

	stats, _, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{validInput("ext-1")})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Zero(t, stats.Errors, "an outage is not a record error")
}

func TestIngestBatch_LookupOutageAbortsBatch(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("connection refused")
	dedup := NewDeduplicator(store)

	_, _, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{validInput("ext-1")})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestIngestBatch_RacingInsertCountsAsDuplicate(t *testing.T) {
	store := newFakeStore()
	store.blindFinds = true
	dedup := NewDeduplicator(store)

	// First pass lands the row. The second pass cannot see it through the
	// lookup, mimicking a concurrent ingester, but the idempotent upsert
	// reports the conflict so the stats still read one insert, one duplicate.
	first, _, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{validInput("ext-1")})
	require.NoError(t, err)
	second, _, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{validInput("ext-1")})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Inserted)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 1, second.Duplicates)
	assert.Len(t, store.jobs, 1)
}

func TestIngestBatch_SanitizesDescription(t *testing.T) {
	store := newFakeStore()
	dedup := NewDeduplicator(store)

	input := validInput("ext-1")
	input.Description = "<p>Build APIs</p><ul><li>Go</li><li>Postgres</li></ul>"

	_, recErrs, err := dedup.IngestBatch(context.Background(), []types.ExternalJobInput{input})
	require.NoError(t, err)
	require.Empty(t, recErrs)

	desc := store.jobs["ext-1|lever"].Description
	assert.NotContains(t, desc, "<")
	assert.Contains(t, desc, "Build APIs")
	assert.Contains(t, desc, "Postgres")
}

func TestIngestBatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dedup := NewDeduplicator(newFakeStore())
	_, _, err := dedup.IngestBatch(ctx, []types.ExternalJobInput{validInput("ext-1")})
	assert.ErrorIs(t, err, context.Canceled)
}

func recErrMessages(errs []*RecordError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
