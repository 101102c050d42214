// Package main provides the entry point for the job match engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_engine",
	Short: "Job match engine",
	Long:  "Job match engine ranks job postings for candidates and candidates for postings, combining skill, recency, source liveness, and personalization scoring over an ingested external job pool.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
