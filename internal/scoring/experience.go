package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// Seniority levels, ordinal.
const (
	levelEntry = iota
	levelMid
	levelSenior
	levelExecutive
)

// Penalty weights: being under-leveled for a role costs twice what being
// over-leveled does, and over-qualification never drags the score below 60.
const (
	underQualPenaltyPerLevel = 30.0
	overQualPenaltyPerLevel  = 15.0
	overQualFloor            = 60.0

	requiredYearsBonus       = 10.0
	requiredYearsPenaltyStep = 10.0
)

var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*years?`)

// levelKeywords maps title/narrative keywords onto seniority levels. A
// keyword hit overrides the years-derived level.
var levelKeywords = []struct {
	level int
	terms []string
}{
	{levelExecutive, []string{"executive", "director", "vp", "vice president", "head of", "chief", "cto", "ceo"}},
	{levelSenior, []string{"senior", "sr.", "sr ", "lead", "principal", "staff"}},
	{levelMid, []string{"mid-level", "midlevel", "intermediate", "associate"}},
	{levelEntry, []string{"junior", "jr.", "jr ", "entry", "intern", "graduate"}},
}

// ExperienceMatch is the result of comparing a candidate's experience
// narrative against a job's description.
type ExperienceMatch struct {
	Score          float64 // 0-100
	CandidateLevel int
	JobLevel       int
	CandidateYears int
	RequiredYears  int // 0 when the job states none
}

// ScoreExperience extracts seniority and years from both free-text sides
// and scores the gap. Missing information defaults to zero years / entry
// level rather than erroring: scorers never fail on sparse input.
func ScoreExperience(candidateText, jobText string) ExperienceMatch {
	candidateYears := extractYears(candidateText)
	requiredYears := extractYears(jobText)

	candidateLevel := resolveLevel(candidateText, candidateYears)
	jobLevel := resolveLevel(jobText, requiredYears)

	score := 100.0
	switch {
	case candidateLevel < jobLevel:
		score -= underQualPenaltyPerLevel * float64(jobLevel-candidateLevel)
	case candidateLevel > jobLevel:
		score -= overQualPenaltyPerLevel * float64(candidateLevel-jobLevel)
		if score < overQualFloor {
			score = overQualFloor
		}
	}

	if requiredYears > 0 {
		if candidateYears >= requiredYears {
			score += requiredYearsBonus
		} else {
			score -= requiredYearsPenaltyStep * float64(requiredYears-candidateYears)
		}
	}

	return ExperienceMatch{
		Score:          clamp(score, 0, 100),
		CandidateLevel: candidateLevel,
		JobLevel:       jobLevel,
		CandidateYears: candidateYears,
		RequiredYears:  requiredYears,
	}
}

// extractYears returns the first "<N> years" figure found in the text, or 0.
func extractYears(text string) int {
	m := yearsPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return years
}

// resolveLevel maps years to an ordinal level, overridden by an explicit
// level keyword when one appears in the text.
func resolveLevel(text string, years int) int {
	lower := strings.ToLower(text)
	for _, group := range levelKeywords {
		for _, term := range group.terms {
			if strings.Contains(lower, term) {
				return group.level
			}
		}
	}
	return levelFromYears(years)
}

func levelFromYears(years int) int {
	switch {
	case years <= 2:
		return levelEntry
	case years <= 5:
		return levelMid
	case years <= 10:
		return levelSenior
	default:
		return levelExecutive
	}
}
