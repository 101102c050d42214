package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-match-engine/internal/engine"
)

var (
	rankCandidateID string
	rankJobID       string
	rankWorkMode    string
	rankLocation    string
	rankMinSalary   int
	rankLimit       int
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank matches for a candidate or a job",
	Long:  "Print ranked matches as JSON, either the job matches for one candidate or the candidate matches for one posting.",
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankCandidateID, "candidate", "", "Candidate ID to rank jobs for")
	rankCmd.Flags().StringVar(&rankJobID, "job", "", "Job ID to rank candidates for")
	rankCmd.Flags().StringVar(&rankWorkMode, "work-mode", "", "Filter jobs by work mode (remote, hybrid, onsite)")
	rankCmd.Flags().StringVar(&rankLocation, "location", "", "Filter jobs by location")
	rankCmd.Flags().IntVar(&rankMinSalary, "min-salary", 0, "Filter jobs by minimum salary")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "Maximum number of matches to return")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankCandidateID == "" && rankJobID == "" {
		return fmt.Errorf("either --candidate or --job must be provided")
	}
	if rankCandidateID != "" && rankJobID != "" {
		return fmt.Errorf("--candidate and --job are mutually exclusive; provide only one")
	}

	eng, database, _, log, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer log.Sync()

	results, err := rankMatches(cmd, eng)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func rankMatches(cmd *cobra.Command, eng *engine.Engine) (any, error) {
	if rankJobID != "" {
		jobID, err := uuid.Parse(rankJobID)
		if err != nil {
			return nil, fmt.Errorf("invalid job ID: %w", err)
		}
		return eng.RankCandidatesForJob(cmd.Context(), jobID)
	}

	candidateID, err := uuid.Parse(rankCandidateID)
	if err != nil {
		return nil, fmt.Errorf("invalid candidate ID: %w", err)
	}

	filters := engine.Filters{
		WorkMode: rankWorkMode,
		Location: rankLocation,
		Limit:    rankLimit,
	}
	if rankMinSalary > 0 {
		filters.MinSalary = &rankMinSalary
	}
	return eng.RankJobsForCandidate(cmd.Context(), candidateID, filters)
}
