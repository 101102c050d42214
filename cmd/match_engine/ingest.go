package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-match-engine/internal/schemas"
	"github.com/jonathan/job-match-engine/internal/types"
)

var ingestFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a scraped job batch from a JSON file",
	Long:  "Validate a scraped batch file against the batch schema, then run it through deduplication into the job pool.",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to the batch JSON file (required)")
	ingestCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(ingestCmd)
}

type batchFile struct {
	Jobs []types.ExternalJobInput `json:"jobs"`
}

func runIngest(cmd *cobra.Command, _ []string) error {
	schemaPath := schemas.ResolveSchemaPath(schemas.ExternalJobSchema)
	if schemaPath == "" {
		return fmt.Errorf("batch schema not found: %s", schemas.ExternalJobSchema)
	}
	if err := schemas.ValidateJSON(schemaPath, ingestFile); err != nil {
		return fmt.Errorf("batch file rejected: %w", err)
	}

	data, err := os.ReadFile(ingestFile)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	var batch batchFile
	if err := json.Unmarshal(data, &batch); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}

	eng, database, _, log, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer log.Sync()

	stats, recordErrs, err := eng.Ingest(cmd.Context(), batch.Jobs)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Ingested %d records: %d inserted, %d duplicates, %d errors\n",
		len(batch.Jobs), stats.Inserted, stats.Duplicates, stats.Errors)
	for _, recErr := range recordErrs {
		fmt.Fprintf(os.Stderr, "  record %d (%s/%s): %v\n",
			recErr.Index, recErr.Source, recErr.ExternalID, recErr.Cause)
	}
	return nil
}
