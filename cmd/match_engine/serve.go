package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-match-engine/internal/scheduler"
	"github.com/jonathan/job-match-engine/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the matching, ingestion, and maintenance endpoints, with background expiry and cache sweeps.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	eng, database, cfg, log, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer log.Sync()

	sched, err := scheduler.New(eng, cfg.ExpiryCronSpec, cfg.CacheSweepCronSpec, log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	// Sweep anything already past expiry before taking traffic.
	if _, err := eng.ExpireStaleJobs(context.Background()); err != nil {
		return err
	}

	srv := server.New(server.Config{Port: port}, eng, log)
	return srv.Start()
}
