// Package ranking combines the semantic scorers with recency, liveness, and
// personalization into a single hybrid relevance score per candidate-job pair.
package ranking

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/job-match-engine/internal/scoring"
	"github.com/jonathan/job-match-engine/internal/trust"
	"github.com/jonathan/job-match-engine/internal/types"
)

// Outer weights of the hybrid formula.
const (
	semanticWeight        = 0.45
	recencyWeight         = 0.25
	livenessWeight        = 0.20
	personalizationWeight = 0.10
)

// Inner weights of the semantic blend.
const (
	skillComponentWeight      = 0.45
	experienceComponentWeight = 0.30
	contextComponentWeight    = 0.25
)

// MinMatchScore is the relevance cutoff: pairs scoring below it are dropped
// rather than shown as poor matches.
const MinMatchScore = 0.6

// DefaultRecencyHalfLife controls how fast the recency component decays: a
// posting this old scores 0.5.
const DefaultRecencyHalfLife = 14 * 24 * time.Hour

// Personalization signal adjustments, each scaled by the affinity between
// the signal's posting and the one being scored.
const (
	neutralPersonalization = 0.5
	savedBoost             = 0.10
	appliedBoost           = 0.20
	hiddenPenalty          = 0.25
)

// semanticScore blends the three semantic sub-scores into [0,1].
func semanticScore(skill, experience, context float64) float64 {
	blended := skillComponentWeight*skill +
		experienceComponentWeight*experience +
		contextComponentWeight*context
	return blended / 100
}

// recencyScore decays exponentially with posting age. Postings dated in the
// future score 1.0 rather than above it.
func recencyScore(postedAt, now time.Time, halfLife time.Duration) float64 {
	age := now.Sub(postedAt)
	if age <= 0 {
		return 1.0
	}
	return math.Exp(-math.Ln2 * float64(age) / float64(halfLife))
}

// personalizationScore shifts the neutral 0.5 by the candidate's history:
// saving or applying to similar postings pushes up, hiding pushes down.
// Similarity is judged on company, industry, and title overlap.
func personalizationScore(job *types.JobPosting, signals []types.CandidateSignal) float64 {
	score := neutralPersonalization
	for _, sig := range signals {
		aff := signalAffinity(job, sig)
		if aff == 0 {
			continue
		}
		switch sig.Kind {
		case types.SignalApplied:
			score += appliedBoost * aff
		case types.SignalSaved:
			score += savedBoost * aff
		case types.SignalHidden:
			score -= hiddenPenalty * aff
		}
	}
	return clamp01(score)
}

// signalAffinity measures how similar a historical signal's posting is to
// the one being scored, in [0,1]. Same company dominates, same industry is a
// weaker tie, and shared title words weaker still.
func signalAffinity(job *types.JobPosting, sig types.CandidateSignal) float64 {
	best := 0.0
	if sig.Company != "" && strings.EqualFold(sig.Company, job.Company) {
		best = 1.0
	}
	if best < 0.6 && sig.Industry != "" && job.Industry != nil &&
		strings.EqualFold(sig.Industry, *job.Industry) {
		best = 0.6
	}
	if overlap := titleOverlap(sig.JobTitle, job.Title); 0.4*overlap > best {
		best = 0.4 * overlap
	}
	return best
}

// titleOverlap is the fraction of significant words in the scored job's
// title that also appear in the signal's title.
func titleOverlap(sigTitle, jobTitle string) float64 {
	sigWords := significantWords(sigTitle)
	jobWords := significantWords(jobTitle)
	if len(sigWords) == 0 || len(jobWords) == 0 {
		return 0
	}

	shared := 0
	for word := range jobWords {
		if _, ok := sigWords[word]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(jobWords))
}

var titleStopwords = map[string]struct{}{
	"and": {}, "for": {}, "the": {}, "with": {}, "of": {},
}

func significantWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.Trim(word, ".,()/-")
		if len(word) < 3 {
			continue
		}
		if _, stop := titleStopwords[word]; stop {
			continue
		}
		words[word] = struct{}{}
	}
	return words
}

// finalScore applies the outer weights to a breakdown.
func finalScore(b types.ScoreBreakdown) float64 {
	return clamp01(semanticWeight*b.Semantic +
		recencyWeight*b.Recency +
		livenessWeight*b.Liveness +
		personalizationWeight*b.Personalization)
}

// breakdownFor computes the full component breakdown for one pairing.
func (r *Ranker) breakdownFor(candidate *types.CandidateProfile, job *types.JobPosting, signals []types.CandidateSignal, now time.Time) (types.ScoreBreakdown, scoring.SkillMatch) {
	skill := r.skills.Score(candidate.Skills, job.Skills, job.Requirements)
	experience := scoring.ScoreExperience(candidate.Experience, jobText(job))
	context := scoring.ScoreContext(candidate, job)

	return types.ScoreBreakdown{
		Semantic:        semanticScore(skill.Score, experience.Score, context.Score),
		Recency:         recencyScore(job.PostedAt, now, r.halfLife),
		Liveness:        trust.LivenessFactor(job),
		Personalization: personalizationScore(job, signals),
		SkillScore:      skill.Score,
		ExperienceScore: experience.Score,
		ContextScore:    context.Score,
	}, skill
}

// jobText is the free text the experience scorer reads the job's seniority
// requirements from.
func jobText(job *types.JobPosting) string {
	parts := make([]string, 0, 2+len(job.Requirements))
	parts = append(parts, job.Title, job.Description)
	parts = append(parts, job.Requirements...)
	return strings.Join(parts, " ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
