package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-match-engine/internal/types"
)

const candidateColumns = `id, skills, experience, industry, work_mode,
	salary_min, salary_max, location`

func scanCandidate(row pgx.Row) (*types.CandidateProfile, error) {
	var c types.CandidateProfile
	err := row.Scan(&c.ID, &c.Skills, &c.Experience, &c.Industry, &c.WorkMode,
		&c.SalaryMin, &c.SalaryMax, &c.Location)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FetchCandidateProfile retrieves one candidate. Returns (nil, nil) when
// absent.
func (db *DB) FetchCandidateProfile(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error) {
	candidate, err := scanCandidate(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch candidate profile: %w", err)
	}
	return candidate, nil
}

// FetchActiveCandidates returns every candidate open to matching.
func (db *DB) FetchActiveCandidates(ctx context.Context) ([]*types.CandidateProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidate_profiles
		 WHERE active = TRUE
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*types.CandidateProfile
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

// FetchCandidateSignals returns the candidate's saved/applied/hidden history
// joined with the posting fields the personalization scorer compares on.
func (db *DB) FetchCandidateSignals(ctx context.Context, id uuid.UUID) ([]types.CandidateSignal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.candidate_id, s.job_id, s.kind,
		        COALESCE(j.company, ''), COALESCE(j.industry, ''), COALESCE(j.title, ''),
		        s.created_at
		 FROM candidate_signals s
		 LEFT JOIN jobs j ON j.id = s.job_id
		 WHERE s.candidate_id = $1
		 ORDER BY s.created_at DESC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate signals: %w", err)
	}
	defer rows.Close()

	var signals []types.CandidateSignal
	for rows.Next() {
		var s types.CandidateSignal
		if err := rows.Scan(&s.CandidateID, &s.JobID, &s.Kind,
			&s.Company, &s.Industry, &s.JobTitle, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate signal: %w", err)
		}
		signals = append(signals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidate signals: %w", err)
	}
	return signals, nil
}
