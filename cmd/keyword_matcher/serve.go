package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-matcher/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing /analyze, /analyze/batch, /analyze/stream, /keywords,
/categories and /health. The port defaults to $PORT, then 8080. Rate limits are read
from RATE_LIMIT_* variables and the body size limit from MAX_BODY_BYTES.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:             cfg.Port,
		BatchConcurrency: cfg.BatchConcurrency,
		Verbose:          cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(cmd.Context())
}
