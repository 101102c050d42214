// Package ingestion validates, sanitizes, and deduplicates batches of
// externally scraped job postings before they enter the pool.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-match-engine/internal/trust"
	"github.com/jonathan/job-match-engine/internal/types"
)

const (
	// DefaultExpiry is how long an ingested posting stays fresh without a
	// reconfirmation from its feed.
	DefaultExpiry = 60 * 24 * time.Hour

	// defaultChunkSize bounds how many records a single worker handles.
	defaultChunkSize = 50

	// defaultWorkers bounds batch concurrency.
	defaultWorkers = 4
)

// Store is the storage surface the deduplicator needs. (ExternalID, Source)
// is the lookup key; UpsertJob must be idempotent on that key and report
// whether it created a new row.
type Store interface {
	FindJobBySourceKey(ctx context.Context, externalID, source string) (*types.JobPosting, error)
	UpsertJob(ctx context.Context, job *types.JobPosting) (inserted bool, err error)
}

// Deduplicator ingests scraped batches: each record is validated, sanitized,
// and either inserted as a new posting or folded into the existing posting
// with the same (external_id, source) key.
type Deduplicator struct {
	store     Store
	tracker   *trust.Tracker
	validate  *validator.Validate
	expiry    time.Duration
	chunkSize int
	now       func() time.Time
}

// NewDeduplicator returns a Deduplicator with the default expiry window.
func NewDeduplicator(store Store) *Deduplicator {
	return &Deduplicator{
		store:     store,
		tracker:   trust.NewTracker(),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		expiry:    DefaultExpiry,
		chunkSize: defaultChunkSize,
		now:       time.Now,
	}
}

// NewDeduplicatorWith overrides the expiry window and chunk size.
// Non-positive values fall back to the defaults.
func NewDeduplicatorWith(store Store, expiry time.Duration, chunkSize int) *Deduplicator {
	d := NewDeduplicator(store)
	if expiry > 0 {
		d.expiry = expiry
	}
	if chunkSize > 0 {
		d.chunkSize = chunkSize
	}
	return d
}

// NewDeduplicatorAt is NewDeduplicator with an injected clock, for tests.
func NewDeduplicatorAt(store Store, now func() time.Time) *Deduplicator {
	d := NewDeduplicator(store)
	d.now = now
	d.tracker = trust.NewTrackerAt(now)
	return d
}

// IngestBatch processes a scraped batch. Records are validated and upserted
// independently: a bad record is reported and skipped, never aborting its
// batch. Chunks of the batch run concurrently; the returned stats aggregate
// across all of them. The error return is non-nil only when the context is
// canceled mid-batch or the store becomes unavailable (ErrStoreUnavailable),
// both of which abort the batch.
func (d *Deduplicator) IngestBatch(ctx context.Context, inputs []types.ExternalJobInput) (types.IngestStats, []*RecordError, error) {
	var (
		mu    sync.Mutex
		stats types.IngestStats
		errs  []*RecordError
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers)

	for start := 0; start < len(inputs); start += d.chunkSize {
		end := start + d.chunkSize
		if end > len(inputs) {
			end = len(inputs)
		}
		offset, chunk := start, inputs[start:end]

		g.Go(func() error {
			for i, input := range chunk {
				if err := ctx.Err(); err != nil {
					return err
				}

				outcome, err := d.ingestOne(ctx, input)
				if errors.Is(err, ErrStoreUnavailable) {
					return err
				}
				mu.Lock()
				if err != nil {
					stats.Errors++
					errs = append(errs, &RecordError{
						Index:      offset + i,
						ExternalID: input.ExternalID,
						Source:     input.Source,
						Cause:      err,
					})
				} else {
					switch outcome {
					case outcomeInserted:
						stats.Inserted++
					case outcomeDuplicate:
						stats.Duplicates++
					}
				}
				mu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()

	sort.Slice(errs, func(i, j int) bool { return errs[i].Index < errs[j].Index })
	return stats, errs, err
}

type ingestOutcome int

const (
	outcomeInserted ingestOutcome = iota
	outcomeDuplicate
)

func (d *Deduplicator) ingestOne(ctx context.Context, input types.ExternalJobInput) (ingestOutcome, error) {
	if err := d.validate.Struct(input); err != nil {
		return 0, err
	}
	if strings.EqualFold(strings.TrimSpace(input.Source), types.SourcePlatform) {
		// Platform jobs are authored, never scraped. Rejecting here keeps a
		// feed from impersonating a trust-100 source.
		return 0, errPlatformSource
	}

	source := strings.ToLower(strings.TrimSpace(input.Source))
	externalID := strings.TrimSpace(input.ExternalID)

	existing, err := d.store.FindJobBySourceKey(ctx, externalID, source)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	now := d.now().UTC()
	expires := now.Add(d.expiry)

	if existing != nil {
		// Seen again on its feed: the posting is demonstrably live. Refresh
		// the mutable fields but keep identity and posted time.
		existing.Title = strings.TrimSpace(input.Title)
		existing.Company = strings.TrimSpace(input.Company)
		existing.Description = SanitizeDescription(input.Description)
		existing.Skills = NormalizeSkills(input.Skills)
		existing.Requirements = input.Requirements
		existing.WorkMode = input.WorkMode
		existing.SalaryMin = input.SalaryMin
		existing.SalaryMax = input.SalaryMax
		existing.Location = optional(input.Location)
		existing.ExternalURL = optional(input.ExternalURL)
		existing.ExpiresAt = &expires
		existing.UpdatedAt = now
		d.tracker.Reconfirm(existing)

		if _, err := d.store.UpsertJob(ctx, existing); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return outcomeDuplicate, nil
	}

	job := &types.JobPosting{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Company:      strings.TrimSpace(input.Company),
		Description:  SanitizeDescription(input.Description),
		Skills:       NormalizeSkills(input.Skills),
		Requirements: input.Requirements,
		WorkMode:     input.WorkMode,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Location:     optional(input.Location),
		Source:       source,
		ExternalID:   &externalID,
		ExternalURL:  optional(input.ExternalURL),
		ExpiresAt:    &expires,
		Status:       types.JobStatusActive,
		PostedAt:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.PostedDate != nil {
		job.PostedAt = input.PostedDate.UTC()
	}

	// New postings start with liveness unknown; only a re-sighting on the
	// feed counts as confirmation.
	d.tracker.Assign(job)

	inserted, err := d.store.UpsertJob(ctx, job)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !inserted {
		// A concurrent ingester won the race between our lookup and the
		// upsert; the row landed on the conflict arm, so this sighting is a
		// reconfirmation, not an insert.
		return outcomeDuplicate, nil
	}
	return outcomeInserted, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
