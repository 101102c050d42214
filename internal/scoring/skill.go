// Package scoring provides the pure compatibility scorers used by the
// hybrid ranking aggregator: skill, experience, and contextual fit.
package scoring

import (
	"sort"
	"strings"

	"github.com/jonathan/job-match-engine/internal/vectors"
)

// Weights for the skill compatibility formula. Exact matches dominate,
// partial matches help, and covering the job's core skills adds the rest.
const (
	skillWeightExact   = 0.7
	skillWeightPartial = 0.2
	skillWeightCore    = 0.1

	// Substring matches below this length are noise ("go" inside "django").
	minSubstringLen = 3

	// Number of leading job skills treated as core in addition to any skill
	// named in the requirements text.
	coreSkillHead = 3

	// neutralSkillScore is returned when the job lists no skills at all;
	// an empty requirement set says nothing about the candidate.
	neutralSkillScore = 50.0
)

// Cosine similarity thresholds for the semantic mode. A pair above
// semanticMatchThreshold counts as matched; above semanticExactThreshold it
// is treated as an exact match for scoring purposes.
const (
	semanticMatchThreshold = 0.6
	semanticExactThreshold = 0.85
)

// Match kinds, in preference order.
const (
	matchExact = iota
	matchSynonym
	matchSubstring
	matchNone
)

// synonymGroups is the fixed synonym table. Terms in one group are
// interchangeable for matching purposes.
var synonymGroups = [][]string{
	{"javascript", "js", "node.js", "nodejs", "node"},
	{"typescript", "ts"},
	{"go", "golang"},
	{"postgresql", "postgres", "psql"},
	{"kubernetes", "k8s"},
	{"c#", "csharp", ".net", "dotnet"},
	{"amazon web services", "aws"},
	{"google cloud", "google cloud platform", "gcp"},
	{"machine learning", "ml"},
	{"continuous integration", "ci/cd", "cicd"},
	{"react", "reactjs", "react.js"},
	{"vue", "vuejs", "vue.js"},
	{"angular", "angularjs"},
}

var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() map[string]int {
	idx := make(map[string]int)
	for i, group := range synonymGroups {
		for _, term := range group {
			idx[term] = i
		}
	}
	return idx
}

// SkillMatch is the result of comparing a candidate's skills against a
// job's required skills.
type SkillMatch struct {
	Score          float64  // 0-100
	MatchedSkills  []string // job skill strings, exact matches first
	ExactMatches   int
	PartialMatches int
}

// SkillScorer compares skill lists. The zero value uses lexical matching
// (exact, synonym, substring); Semantic switches to vector similarity with
// the same result contract.
type SkillScorer struct {
	Semantic bool
	Embedder vectors.Embedder
}

// Score computes skill compatibility between candidate skills and the
// job's required skills plus its free-text requirements. Pure: no state
// beyond the fixed synonym table and embedding table is consulted.
func (s SkillScorer) Score(candidateSkills, jobSkills, jobRequirements []string) SkillMatch {
	if len(jobSkills) == 0 {
		return SkillMatch{Score: neutralSkillScore}
	}

	kinds := make([]int, len(jobSkills))
	if s.Semantic {
		embedder := s.Embedder
		if embedder == nil {
			embedder = vectors.NewTableEmbedder()
		}
		semanticMatchKinds(kinds, candidateSkills, jobSkills, embedder)
	} else {
		lexicalMatchKinds(kinds, candidateSkills, jobSkills)
	}

	core := coreSkillSet(jobSkills, jobRequirements)

	var exact, partial, coreMatched int
	for i, kind := range kinds {
		switch kind {
		case matchExact:
			exact++
		case matchSynonym, matchSubstring:
			partial++
		default:
			continue
		}
		if core[normalizeSkill(jobSkills[i])] {
			coreMatched++
		}
	}

	// The 0.2 term rewards overall coverage (exact or partial), so a job
	// whose every skill is matched exactly scores a full 100.
	total := float64(len(jobSkills))
	exactRatio := float64(exact) / total
	partialRatio := float64(exact+partial) / total
	coreRatio := 0.0
	if len(core) > 0 {
		coreRatio = float64(coreMatched) / float64(len(core))
	}

	score := 100 * (skillWeightExact*exactRatio + skillWeightPartial*partialRatio + skillWeightCore*coreRatio)
	return SkillMatch{
		Score:          clamp(score, 0, 100),
		MatchedSkills:  matchedSkillList(jobSkills, kinds),
		ExactMatches:   exact,
		PartialMatches: partial,
	}
}

// lexicalMatchKinds fills kinds with the best match kind found for each job
// skill, preferring exact > synonym > substring. Each job skill is matched
// at most once.
func lexicalMatchKinds(kinds []int, candidateSkills, jobSkills []string) {
	normalized := make([]string, len(candidateSkills))
	for i, cs := range candidateSkills {
		normalized[i] = normalizeSkill(cs)
	}

	for i, js := range jobSkills {
		job := normalizeSkill(js)
		kinds[i] = matchNone
		for _, cand := range normalized {
			if cand == "" {
				continue
			}
			kind := classifyPair(cand, job)
			if kind < kinds[i] {
				kinds[i] = kind
			}
			if kinds[i] == matchExact {
				break
			}
		}
	}
}

func classifyPair(candidate, job string) int {
	if candidate == job {
		return matchExact
	}
	cg, cok := synonymIndex[candidate]
	jg, jok := synonymIndex[job]
	if cok && jok && cg == jg {
		return matchSynonym
	}
	if len(candidate) >= minSubstringLen && len(job) >= minSubstringLen {
		if strings.Contains(candidate, job) || strings.Contains(job, candidate) {
			return matchSubstring
		}
	}
	return matchNone
}

// semanticMatchKinds classifies each job skill by the best cosine
// similarity against any candidate skill.
func semanticMatchKinds(kinds []int, candidateSkills, jobSkills []string, embedder vectors.Embedder) {
	candVecs := make([]vectors.Vector, len(candidateSkills))
	for i, cs := range candidateSkills {
		candVecs[i] = embedder.Embed(cs)
	}

	for i, js := range jobSkills {
		jobVec := embedder.Embed(js)
		best := -1.0
		for _, cv := range candVecs {
			if sim := vectors.Cosine(cv, jobVec); sim > best {
				best = sim
			}
		}
		switch {
		case best >= semanticExactThreshold:
			kinds[i] = matchExact
		case best > semanticMatchThreshold:
			kinds[i] = matchSubstring
		default:
			kinds[i] = matchNone
		}
	}
}

// coreSkillSet returns the normalized job skills considered core: present
// in the requirements text or among the first coreSkillHead listed skills.
func coreSkillSet(jobSkills, jobRequirements []string) map[string]bool {
	requirementsText := strings.ToLower(strings.Join(jobRequirements, " "))
	core := make(map[string]bool)
	for i, js := range jobSkills {
		norm := normalizeSkill(js)
		if norm == "" {
			continue
		}
		if i < coreSkillHead || strings.Contains(requirementsText, norm) {
			core[norm] = true
		}
	}
	return core
}

// matchedSkillList returns the matched job skill strings, exact matches
// first, preserving the job's listing order within each group.
func matchedSkillList(jobSkills []string, kinds []int) []string {
	type entry struct {
		skill string
		kind  int
		pos   int
	}
	var entries []entry
	for i, kind := range kinds {
		if kind == matchNone {
			continue
		}
		entries = append(entries, entry{skill: jobSkills[i], kind: kind, pos: i})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if (entries[i].kind == matchExact) != (entries[j].kind == matchExact) {
			return entries[i].kind == matchExact
		}
		return entries[i].pos < entries[j].pos
	})

	matched := make([]string, 0, len(entries))
	for _, e := range entries {
		matched = append(matched, e.skill)
	}
	return matched
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
