// Package types defines the core data model shared across the match engine.
package types

import (
	"time"

	"github.com/google/uuid"
)

// SourcePlatform identifies internally authored job postings. Every other
// source value names an external feed.
const SourcePlatform = "platform"

// LivenessStatus constants for externally sourced postings.
const (
	LivenessActive  = "active"
	LivenessStale   = "stale"
	LivenessUnknown = "unknown"
)

// JobStatus constants.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusPaused = "paused"
)

// WorkMode constants.
const (
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
	WorkModeOnsite = "onsite"
)

// JobPosting represents a job in the pool, internally authored or ingested
// from an external feed. (ExternalID, Source) is the deduplication key for
// non-platform jobs. Trust and liveness fields are owned by the trust
// tracker and the ingestion deduplicator; scorers treat them as read-only.
type JobPosting struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Skills       []string  `json:"skills"`
	Requirements []string  `json:"requirements"`
	WorkMode     string    `json:"work_mode,omitempty"`
	SalaryMin    *int      `json:"salary_min,omitempty"`
	SalaryMax    *int      `json:"salary_max,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Industry     *string   `json:"industry,omitempty"`

	Source      string  `json:"source"`
	ExternalID  *string `json:"external_id,omitempty"`
	ExternalURL *string `json:"external_url,omitempty"`

	TrustScore        int        `json:"trust_score"`
	LivenessStatus    string     `json:"liveness_status"`
	LastLivenessCheck *time.Time `json:"last_liveness_check,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`

	Status   string    `json:"status"`
	PostedAt time.Time `json:"posted_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPlatform reports whether the posting was authored on the platform
// rather than ingested from an external feed.
func (j *JobPosting) IsPlatform() bool {
	return j.Source == SourcePlatform
}

// IsExpired reports whether the posting's expiry has passed. Platform jobs
// may carry no expiry and never expire.
func (j *JobPosting) IsExpired(now time.Time) bool {
	if j.ExpiresAt == nil {
		return false
	}
	return now.After(*j.ExpiresAt)
}

// Rankable reports whether the posting belongs in a ranking candidate pool:
// active status, not expired, and liveness not degraded to stale.
func (j *JobPosting) Rankable(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.IsExpired(now) {
		return false
	}
	return j.LivenessStatus == LivenessActive || j.LivenessStatus == LivenessUnknown
}

// ExternalJobInput is one record in a scraped batch handed to the ingestion
// deduplicator by the (out-of-scope) scraper subsystem.
type ExternalJobInput struct {
	Title        string     `json:"title" validate:"required"`
	Company      string     `json:"company" validate:"required"`
	Location     string     `json:"location,omitempty"`
	Description  string     `json:"description,omitempty"`
	Requirements []string   `json:"requirements,omitempty"`
	Skills       []string   `json:"skills" validate:"required,min=1"`
	WorkMode     string     `json:"work_mode,omitempty" validate:"omitempty,oneof=remote hybrid onsite"`
	SalaryMin    *int       `json:"salary_min,omitempty"`
	SalaryMax    *int       `json:"salary_max,omitempty"`
	Source       string     `json:"source" validate:"required"`
	ExternalID   string     `json:"external_id" validate:"required"`
	ExternalURL  string     `json:"external_url,omitempty" validate:"omitempty,url"`
	PostedDate   *time.Time `json:"posted_date,omitempty"`
}
