// Package trust assigns trust scores to job postings by source and tracks
// their liveness state across re-verification cycles.
package trust

import (
	"strings"
	"time"

	"github.com/jonathan/job-match-engine/internal/types"
)

// Trust score bounds and notable thresholds.
const (
	MaxTrustScore = 100
	MinTrustScore = 0

	// DirectCompanyThreshold marks postings trusted enough to carry the
	// direct-from-company badge.
	DirectCompanyThreshold = 85

	// UnknownSourceScore is assigned when the source is not in the table.
	UnknownSourceScore = 50
)

// sourceScores is the fixed per-source trust table. Platform-authored jobs
// always score 100; external feeds are ranked by how close they sit to the
// hiring company.
var sourceScores = map[string]int{
	types.SourcePlatform: MaxTrustScore,
	"company-direct":     95,
	"lever":              85,
	"greenhouse":         85,
	"workable":           80,
	"linkedin":           75,
	"indeed":             70,
	"adzuna":             65,
	"aggregator":         65,
}

// ScoreForSource returns the trust score for a posting source. Unknown
// sources get a conservative middle score rather than zero: an unlisted
// feed is unproven, not fraudulent.
func ScoreForSource(source string) int {
	if score, ok := sourceScores[strings.ToLower(strings.TrimSpace(source))]; ok {
		return score
	}
	return UnknownSourceScore
}

// Tracker mutates the trust and liveness fields of job postings. It is the
// only component allowed to do so besides the ingestion deduplicator.
type Tracker struct {
	now func() time.Time
}

// NewTracker returns a Tracker using wall-clock time.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// NewTrackerAt returns a Tracker with an injected clock, for tests.
func NewTrackerAt(now func() time.Time) *Tracker {
	return &Tracker{now: now}
}

// Assign stamps a freshly ingested posting with its source-derived trust
// score and the unknown liveness state. Platform jobs keep trust 100
// unconditionally.
func (t *Tracker) Assign(job *types.JobPosting) {
	job.TrustScore = ScoreForSource(job.Source)
	if job.LivenessStatus == "" {
		job.LivenessStatus = types.LivenessUnknown
	}
}

// Reconfirm records a successful re-verification of an already-known
// posting: liveness becomes active and the check time advances. Idempotent
// and safe to call repeatedly; the timestamp is monotone under the clock so
// concurrent reconfirms converge on the same state.
func (t *Tracker) Reconfirm(job *types.JobPosting) {
	checked := t.now().UTC()
	job.LivenessStatus = types.LivenessActive
	job.LastLivenessCheck = &checked
}

// Refresh degrades liveness for postings whose expiry has passed without a
// reconfirmation. Platform jobs are exempt from expiry-driven staleness.
// Returns true when the status changed.
func (t *Tracker) Refresh(job *types.JobPosting) bool {
	if job.IsPlatform() {
		return false
	}
	if job.ExpiresAt == nil || !t.now().After(*job.ExpiresAt) {
		return false
	}
	if job.LivenessStatus == types.LivenessStale {
		return false
	}
	job.LivenessStatus = types.LivenessStale
	return true
}

// LivenessFactor converts trust and liveness into the 0-1 component used
// by the hybrid ranking formula: trust/100, halved when stale.
func LivenessFactor(job *types.JobPosting) float64 {
	factor := float64(job.TrustScore) / float64(MaxTrustScore)
	if job.LivenessStatus == types.LivenessStale {
		factor *= 0.5
	}
	return factor
}

// IsVerifiedActive reports whether the posting earns the verified-active
// badge: confirmed live and from a highly trusted source.
func IsVerifiedActive(job *types.JobPosting) bool {
	return job.LivenessStatus == types.LivenessActive && job.TrustScore >= DirectCompanyThreshold
}

// IsDirectFromCompany reports whether the posting earns the
// direct-from-company badge.
func IsDirectFromCompany(job *types.JobPosting) bool {
	return job.TrustScore >= DirectCompanyThreshold
}
