package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-match-engine/internal/trust"
	"github.com/jonathan/job-match-engine/internal/types"
)

// buildExplanation creates a brief, deterministic explanation of a match.
func buildExplanation(b types.ScoreBreakdown, matchedSkills []string, job *types.JobPosting) string {
	var parts []string

	// Skill match description
	if len(matchedSkills) > 0 {
		joined := strings.Join(matchedSkills, ", ")
		if b.SkillScore >= 70 {
			parts = append(parts, fmt.Sprintf("Strong skill match (%s)", joined))
		} else if b.SkillScore >= 40 {
			parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", joined))
		} else {
			parts = append(parts, fmt.Sprintf("Weak skill match (%s)", joined))
		}
	} else {
		parts = append(parts, "No direct skill matches")
	}

	// Experience fit description
	if b.ExperienceScore >= 85 {
		parts = append(parts, "Experience level fits")
	} else if b.ExperienceScore >= 60 {
		parts = append(parts, "Experience level close to the stated requirement")
	} else {
		parts = append(parts, "Experience level below the stated requirement")
	}

	// Freshness description
	if b.Recency >= 0.7 {
		parts = append(parts, "Recently posted")
	} else if b.Recency < 0.3 {
		parts = append(parts, "Older posting")
	}

	// Source confidence
	if trust.IsDirectFromCompany(job) {
		parts = append(parts, "From a highly trusted source")
	}
	if job.LivenessStatus == types.LivenessStale {
		parts = append(parts, "Listing may be out of date")
	}

	return strings.Join(parts, ". ")
}
