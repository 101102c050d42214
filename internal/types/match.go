package types

import "github.com/google/uuid"

// ScoreBreakdown carries the normalized component scores behind a final
// hybrid score. All values are in [0,1].
type ScoreBreakdown struct {
	Semantic        float64 `json:"semantic"`
	Recency         float64 `json:"recency"`
	Liveness        float64 `json:"liveness"`
	Personalization float64 `json:"personalization"`

	// Sub-scores feeding the semantic blend, kept on their native 0-100
	// scale for explanations.
	SkillScore      float64 `json:"skill_score"`
	ExperienceScore float64 `json:"experience_score"`
	ContextScore    float64 `json:"context_score"`
}

// MatchResult is one ranked candidate-job pairing. It is computed on demand
// and never persisted as a source of truth.
type MatchResult struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`

	FinalScore    float64        `json:"final_score"` // 0-1
	Breakdown     ScoreBreakdown `json:"breakdown"`
	MatchedSkills []string       `json:"matched_skills,omitempty"`
	Explanation   string         `json:"explanation"`

	// Derived badges, never stored.
	IsVerifiedActive    bool `json:"is_verified_active"`
	IsDirectFromCompany bool `json:"is_direct_from_company"`
}

// IngestStats summarizes one ingestion batch for observability.
type IngestStats struct {
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Add folds another stats value into the receiver, used when a batch is
// processed in chunks.
func (s *IngestStats) Add(other IngestStats) {
	s.Inserted += other.Inserted
	s.Duplicates += other.Duplicates
	s.Errors += other.Errors
}
