package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreExperience_ExtractsYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"plain", "I have 7 years of backend development", 7},
		{"plus suffix", "3+ years React", 3},
		{"singular", "1 year of Go", 1},
		{"absent", "strong engineer, fast learner", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractYears(tt.text))
		})
	}
}

func TestScoreExperience_KeywordOverridesYears(t *testing.T) {
	// Twelve years would map to executive, but the explicit "senior"
	// keyword wins.
	m := ScoreExperience("Senior engineer with 12 years of experience", "senior backend role")
	assert.Equal(t, levelSenior, m.CandidateLevel)
	assert.Equal(t, levelSenior, m.JobLevel)
}

func TestScoreExperience_PerfectLevelMatch(t *testing.T) {
	m := ScoreExperience("4 years of Go development", "mid-level backend engineer")

	assert.Equal(t, levelMid, m.CandidateLevel)
	assert.Equal(t, levelMid, m.JobLevel)
	assert.Equal(t, 100.0, m.Score)
}

func TestScoreExperience_UnderQualifiedPenalty(t *testing.T) {
	// Entry candidate, senior job: gap of 2 levels, -60. No explicit
	// required years in the job text.
	m := ScoreExperience("1 year of experience", "senior platform engineer")
	assert.Equal(t, 40.0, m.Score)
}

func TestScoreExperience_OverQualifiedFlooredAtSixty(t *testing.T) {
	// Executive candidate vs entry job: a 3-level gap would subtract 45,
	// but over-qualification floors at 60.
	m := ScoreExperience("Director of engineering, 15 years", "junior developer position")
	assert.Equal(t, overQualFloor, m.Score)
}

func TestScoreExperience_OverQualifiedLessPenalizedThanUnder(t *testing.T) {
	under := ScoreExperience("junior developer", "senior engineer role")
	over := ScoreExperience("senior engineer", "junior developer role")
	assert.Greater(t, over.Score, under.Score)
}

func TestScoreExperience_RequiredYearsBonus(t *testing.T) {
	// Both sides senior; candidate exceeds the stated 5 years: 100 + 10,
	// clamped to 100.
	m := ScoreExperience("senior engineer with 8 years", "senior role, 5 years required")
	assert.Equal(t, 5, m.RequiredYears)
	assert.Equal(t, 100.0, m.Score)
}

func TestScoreExperience_RequiredYearsShortfall(t *testing.T) {
	// Keyword pins both to senior so the level term is neutral; the
	// 3-year shortfall subtracts 30.
	m := ScoreExperience("senior engineer with 2 years", "senior role, 5 years required")
	assert.Equal(t, 70.0, m.Score)
}

func TestScoreExperience_ClampedToRange(t *testing.T) {
	// Entry candidate with no years against an executive job demanding 20:
	// raw score goes far below zero and must clamp.
	m := ScoreExperience("recent graduate", "chief technology officer, 20 years required")
	assert.Equal(t, 0.0, m.Score)

	// And the ceiling.
	high := ScoreExperience("senior, 30 years", "senior, 5 years")
	assert.LessOrEqual(t, high.Score, 100.0)
}

func TestScoreExperience_EmptyInputsAreNeutral(t *testing.T) {
	// Both sides default to entry level with zero years: no gap, no
	// required-years adjustment.
	m := ScoreExperience("", "")
	assert.Equal(t, 100.0, m.Score)
}
