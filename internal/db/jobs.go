package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-match-engine/internal/types"
)

const jobColumns = `id, title, company, description, skills, requirements,
	work_mode, salary_min, salary_max, location, industry,
	source, external_id, external_url,
	trust_score, liveness_status, last_liveness_check, expires_at,
	status, posted_at, created_at, updated_at`

func scanJob(row pgx.Row) (*types.JobPosting, error) {
	var j types.JobPosting
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Description, &j.Skills, &j.Requirements,
		&j.WorkMode, &j.SalaryMin, &j.SalaryMax, &j.Location, &j.Industry,
		&j.Source, &j.ExternalID, &j.ExternalURL,
		&j.TrustScore, &j.LivenessStatus, &j.LastLivenessCheck, &j.ExpiresAt,
		&j.Status, &j.PostedAt, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// FetchActiveJobs returns every posting eligible for ranking: active status,
// not past expiry, liveness not degraded to stale.
func (db *DB) FetchActiveJobs(ctx context.Context) ([]*types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE status = 'active'
		   AND liveness_status <> 'stale'
		   AND (expires_at IS NULL OR expires_at > NOW())
		 ORDER BY posted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*types.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}

// FetchJob retrieves one posting by ID. Returns (nil, nil) when absent.
func (db *DB) FetchJob(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	return job, nil
}

// FindJobBySourceKey looks a posting up by its deduplication key.
// Returns (nil, nil) when absent.
func (db *DB) FindJobBySourceKey(ctx context.Context, externalID, source string) (*types.JobPosting, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE external_id = $1 AND source = $2`,
		externalID, source))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job by source key: %w", err)
	}
	return job, nil
}

// UpsertJob inserts a posting or, when its (external_id, source) key already
// exists, refreshes the mutable fields. The partial unique index behind the
// conflict target only covers external postings; platform jobs conflict on
// their primary key instead. Two ingesters racing on the same key both land
// on the update arm, and the liveness stamp is monotone, so the order does
// not matter. Returns whether a new row was created: xmax is zero on a fresh
// insert and nonzero when the conflict arm updated, which lets the caller
// count inserted vs duplicate without a racy pre-read.
func (db *DB) UpsertJob(ctx context.Context, job *types.JobPosting) (bool, error) {
	conflict := `(id)`
	if job.ExternalID != nil {
		conflict = `(external_id, source)`
	}

	var inserted bool
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		         $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW())
		 ON CONFLICT `+conflict+` DO UPDATE SET
		   title = EXCLUDED.title,
		   company = EXCLUDED.company,
		   description = EXCLUDED.description,
		   skills = EXCLUDED.skills,
		   requirements = EXCLUDED.requirements,
		   work_mode = EXCLUDED.work_mode,
		   salary_min = EXCLUDED.salary_min,
		   salary_max = EXCLUDED.salary_max,
		   location = EXCLUDED.location,
		   industry = EXCLUDED.industry,
		   external_url = EXCLUDED.external_url,
		   trust_score = EXCLUDED.trust_score,
		   liveness_status = EXCLUDED.liveness_status,
		   last_liveness_check = EXCLUDED.last_liveness_check,
		   expires_at = EXCLUDED.expires_at,
		   status = EXCLUDED.status,
		   updated_at = NOW()
		 RETURNING (xmax = 0)`,
		job.ID, job.Title, job.Company, job.Description, job.Skills, job.Requirements,
		job.WorkMode, job.SalaryMin, job.SalaryMax, job.Location, job.Industry,
		job.Source, job.ExternalID, job.ExternalURL,
		job.TrustScore, job.LivenessStatus, job.LastLivenessCheck, job.ExpiresAt,
		job.Status, job.PostedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert job: %w", err)
	}
	return inserted, nil
}

// UpdateJobLiveness stamps a posting's liveness state and check time.
func (db *DB) UpdateJobLiveness(ctx context.Context, id uuid.UUID, status string, checkedAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET liveness_status = $1, last_liveness_check = $2, updated_at = NOW()
		 WHERE id = $3`,
		status, checkedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job liveness: %w", err)
	}
	return nil
}

// SweepExpired closes external postings past their expiry, marking them
// stale, and returns how many rows changed. Only active postings are swept,
// and platform jobs never expire this way.
func (db *DB) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET status = 'closed', liveness_status = 'stale', updated_at = NOW()
		 WHERE source <> 'platform'
		   AND status = 'active'
		   AND expires_at IS NOT NULL
		   AND expires_at < $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired jobs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
