package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var expireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Sweep expired external postings",
	Long:  "Mark every external posting past its expiry window as stale, the same sweep the serve scheduler runs hourly.",
	RunE:  runExpire,
}

func init() {
	rootCmd.AddCommand(expireCmd)
}

func runExpire(cmd *cobra.Command, _ []string) error {
	eng, database, _, log, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer log.Sync()

	swept, err := eng.ExpireStaleJobs(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Swept %d expired postings\n", swept)
	return nil
}
