package scoring

import (
	"strings"

	"github.com/jonathan/job-match-engine/internal/types"
)

// Neutral sub-scores used when comparison data is missing on either side.
// Sparse profiles are never penalized below these floors.
const (
	neutralLocation = 70.0
	neutralSalary   = 80.0
	neutralWorkMode = 80.0
	neutralIndustry = 80.0
)

// metroAreas groups city aliases that count as the same hiring market.
var metroAreas = map[string]string{
	"san francisco": "bay area",
	"oakland":       "bay area",
	"berkeley":      "bay area",
	"san jose":      "bay area",
	"palo alto":     "bay area",
	"mountain view": "bay area",
	"new york":      "nyc metro",
	"nyc":           "nyc metro",
	"brooklyn":      "nyc metro",
	"jersey city":   "nyc metro",
	"hoboken":       "nyc metro",
	"dallas":        "dfw",
	"fort worth":    "dfw",
	"plano":         "dfw",
	"seattle":       "puget sound",
	"bellevue":      "puget sound",
	"redmond":       "puget sound",
	"london":        "greater london",
	"croydon":       "greater london",
}

// relatedIndustries groups industries treated as adjacent.
var relatedIndustries = [][]string{
	{"fintech", "banking", "finance", "insurance", "payments"},
	{"healthcare", "biotech", "pharma", "medtech", "health tech"},
	{"e-commerce", "ecommerce", "retail", "marketplace"},
	{"software", "saas", "technology", "it services", "cloud"},
	{"media", "entertainment", "gaming", "streaming"},
	{"logistics", "transportation", "supply chain", "delivery"},
	{"education", "edtech", "e-learning"},
}

var relatedIndustryIndex = buildRelatedIndustryIndex()

func buildRelatedIndustryIndex() map[string]int {
	idx := make(map[string]int)
	for i, group := range relatedIndustries {
		for _, name := range group {
			idx[name] = i
		}
	}
	return idx
}

// ContextMatch breaks the contextual fit score into its sub-scores, each
// 0-100.
type ContextMatch struct {
	Score    float64
	Location float64
	Salary   float64
	WorkMode float64
	Industry float64
}

// ScoreContext combines location, salary, work-mode, and industry fit into
// one 0-100 context score by equal-weight averaging.
func ScoreContext(candidate *types.CandidateProfile, job *types.JobPosting) ContextMatch {
	m := ContextMatch{
		Location: scoreLocation(candidate, job),
		Salary:   scoreSalary(candidate, job),
		WorkMode: scoreWorkMode(candidate.WorkMode, job.WorkMode),
		Industry: scoreIndustry(candidate.Industry, job.Industry),
	}
	m.Score = (m.Location + m.Salary + m.WorkMode + m.Industry) / 4
	return m
}

// scoreLocation compares location strings. Remote jobs score high no matter
// where the candidate lives; otherwise comparison proceeds from exact match
// down through city, metro area, and state/region segments.
func scoreLocation(candidate *types.CandidateProfile, job *types.JobPosting) float64 {
	if strings.EqualFold(job.WorkMode, types.WorkModeRemote) {
		return 95
	}
	if candidate.Location == nil || job.Location == nil {
		return neutralLocation
	}

	cand := strings.ToLower(strings.TrimSpace(*candidate.Location))
	jobLoc := strings.ToLower(strings.TrimSpace(*job.Location))
	if cand == "" || jobLoc == "" {
		return neutralLocation
	}
	if cand == jobLoc {
		return 100
	}
	if strings.Contains(cand, jobLoc) || strings.Contains(jobLoc, cand) {
		return 90
	}

	candCity, candRegion := splitLocation(cand)
	jobCity, jobRegion := splitLocation(jobLoc)
	if candCity != "" && candCity == jobCity {
		return 85
	}
	if sameMetro(candCity, jobCity) {
		return 80
	}
	if candRegion != "" && candRegion == jobRegion {
		return 60
	}
	return 30
}

// splitLocation returns the first (city) and second (state/region) comma
// segments of a location string.
func splitLocation(loc string) (city, region string) {
	parts := strings.Split(loc, ",")
	city = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		region = strings.TrimSpace(parts[1])
	}
	return city, region
}

func sameMetro(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ma, aok := metroAreas[a]
	mb, bok := metroAreas[b]
	return aok && bok && ma == mb
}

// scoreSalary compares the candidate's floor to the job's ceiling. A
// comfortable surplus pushes the score from 85 toward 100; a shortfall
// drops it from 80 toward 0 in proportion to the gap.
func scoreSalary(candidate *types.CandidateProfile, job *types.JobPosting) float64 {
	if candidate.SalaryMin == nil || job.SalaryMax == nil {
		return neutralSalary
	}
	floor := float64(*candidate.SalaryMin)
	ceiling := float64(*job.SalaryMax)
	if floor <= 0 {
		return neutralSalary
	}

	if floor <= ceiling {
		surplus := (ceiling - floor) / floor
		return 85 + clamp(surplus*30, 0, 15)
	}

	shortfall := (floor - ceiling) / floor
	return clamp(80*(1-shortfall), 0, 80)
}

// workModePairs is the asymmetric compatibility matrix keyed by
// (candidate preference, job mode). Hybrid is flexible toward both ends;
// a remote-only candidate facing an onsite job is the worst pairing.
var workModePairs = map[[2]string]float64{
	{types.WorkModeRemote, types.WorkModeHybrid}: 70,
	{types.WorkModeRemote, types.WorkModeOnsite}: 25,
	{types.WorkModeHybrid, types.WorkModeRemote}: 85,
	{types.WorkModeHybrid, types.WorkModeOnsite}: 85,
	{types.WorkModeOnsite, types.WorkModeRemote}: 50,
	{types.WorkModeOnsite, types.WorkModeHybrid}: 75,
}

func scoreWorkMode(candidateMode, jobMode string) float64 {
	cand := strings.ToLower(strings.TrimSpace(candidateMode))
	job := strings.ToLower(strings.TrimSpace(jobMode))
	if cand == "" || job == "" {
		return neutralWorkMode
	}
	if cand == job {
		return 100
	}
	if score, ok := workModePairs[[2]string{cand, job}]; ok {
		return score
	}
	return neutralWorkMode
}

func scoreIndustry(candidateIndustry, jobIndustry *string) float64 {
	if candidateIndustry == nil || jobIndustry == nil {
		return neutralIndustry
	}
	cand := strings.ToLower(strings.TrimSpace(*candidateIndustry))
	job := strings.ToLower(strings.TrimSpace(*jobIndustry))
	if cand == "" || job == "" {
		return neutralIndustry
	}
	if cand == job {
		return 100
	}
	cg, cok := relatedIndustryIndex[cand]
	jg, jok := relatedIndustryIndex[job]
	if cok && jok && cg == jg {
		return 75
	}
	return 50
}
