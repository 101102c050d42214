package ranking

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-match-engine/internal/scoring"
	"github.com/jonathan/job-match-engine/internal/trust"
	"github.com/jonathan/job-match-engine/internal/types"
)

// Ranker scores and orders candidate-job pairings. It holds no storage; the
// caller supplies already-fetched profiles, jobs, and signals.
type Ranker struct {
	skills   scoring.SkillScorer
	halfLife time.Duration
	now      func() time.Time
}

// NewRanker returns a Ranker with the default recency half-life and the
// lexical skill scorer.
func NewRanker() *Ranker {
	return &Ranker{halfLife: DefaultRecencyHalfLife, now: time.Now}
}

// NewRankerWith configures the skill scorer and half-life. A zero half-life
// falls back to the default.
func NewRankerWith(skills scoring.SkillScorer, halfLife time.Duration) *Ranker {
	if halfLife <= 0 {
		halfLife = DefaultRecencyHalfLife
	}
	return &Ranker{skills: skills, halfLife: halfLife, now: time.Now}
}

// NewRankerAt is NewRankerWith plus an injected clock, for tests.
func NewRankerAt(skills scoring.SkillScorer, halfLife time.Duration, now func() time.Time) *Ranker {
	r := NewRankerWith(skills, halfLife)
	r.now = now
	return r
}

// RankJobsForCandidate scores every rankable job against the candidate and
// returns matches at or above MinMatchScore, best first. Ties on the final
// score break toward higher trust, then the more recently posted job.
func (r *Ranker) RankJobsForCandidate(candidate *types.CandidateProfile, jobs []*types.JobPosting, signals []types.CandidateSignal) []types.MatchResult {
	now := r.now().UTC()

	results := make([]types.MatchResult, 0, len(jobs))
	for _, job := range jobs {
		if !job.Rankable(now) {
			continue
		}

		breakdown, skill := r.breakdownFor(candidate, job, signals, now)
		final := finalScore(breakdown)
		if final < MinMatchScore {
			continue
		}

		results = append(results, types.MatchResult{
			CandidateID:         candidate.ID,
			JobID:               job.ID,
			FinalScore:          final,
			Breakdown:           breakdown,
			MatchedSkills:       skill.MatchedSkills,
			Explanation:         buildExplanation(breakdown, skill.MatchedSkills, job),
			IsVerifiedActive:    trust.IsVerifiedActive(job),
			IsDirectFromCompany: trust.IsDirectFromCompany(job),
		})
	}

	sortResults(results, jobs)
	return results
}

// RankCandidatesForJob is the symmetric operation: one posting, many
// candidates. The job-side components (recency, liveness) apply uniformly
// and personalization has no per-candidate signal here, so ordering is
// driven by the semantic blend. The threshold and ordering rules are the
// same as the candidate-side ranking.
func (r *Ranker) RankCandidatesForJob(job *types.JobPosting, candidates []*types.CandidateProfile) []types.MatchResult {
	now := r.now().UTC()
	if !job.Rankable(now) {
		return []types.MatchResult{}
	}

	results := make([]types.MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		breakdown, skill := r.breakdownFor(candidate, job, nil, now)
		final := finalScore(breakdown)
		if final < MinMatchScore {
			continue
		}

		results = append(results, types.MatchResult{
			CandidateID:         candidate.ID,
			JobID:               job.ID,
			FinalScore:          final,
			Breakdown:           breakdown,
			MatchedSkills:       skill.MatchedSkills,
			Explanation:         buildExplanation(breakdown, skill.MatchedSkills, job),
			IsVerifiedActive:    trust.IsVerifiedActive(job),
			IsDirectFromCompany: trust.IsDirectFromCompany(job),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	return results
}

// sortResults orders matches by final score descending, breaking ties by
// trust then posting time. Jobs are passed for the tie-break fields.
func sortResults(results []types.MatchResult, jobs []*types.JobPosting) {
	byID := make(map[uuid.UUID]*types.JobPosting, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		a, b := byID[results[i].JobID], byID[results[j].JobID]
		if a == nil || b == nil {
			return false
		}
		if a.TrustScore != b.TrustScore {
			return a.TrustScore > b.TrustScore
		}
		return a.PostedAt.After(b.PostedAt)
	})
}
