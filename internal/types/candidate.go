package types

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile is the matching core's read-only view of a candidate.
// Profile mutation happens elsewhere; the engine only consumes it.
type CandidateProfile struct {
	ID         uuid.UUID `json:"id"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience,omitempty"` // free-text narrative
	Industry   *string   `json:"industry,omitempty"`
	WorkMode   string    `json:"work_mode,omitempty"`
	SalaryMin  *int      `json:"salary_min,omitempty"`
	SalaryMax  *int      `json:"salary_max,omitempty"`
	Location   *string   `json:"location,omitempty"`
}

// Candidate behavior signal kinds used by the personalization component.
const (
	SignalSaved   = "saved"
	SignalApplied = "applied"
	SignalHidden  = "hidden"
)

// CandidateSignal is one historical interaction between a candidate and a
// job posting (saved, applied, or hidden).
type CandidateSignal struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	Kind        string    `json:"kind"`
	Company     string    `json:"company,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	JobTitle    string    `json:"job_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
