// Package main provides the keyword_matcher command line tool and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-matcher/internal/config"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "keyword_matcher",
	Short: "Compare a resume against a job description by keyword overlap",
	Long: `keyword_matcher extracts ranked keywords from a job description, checks which of
them appear in a resume, and reports a match percentage with prioritized suggestions.

Configuration can be loaded from a JSON or TOML file using --config. Command-line
flags override config file values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (.json or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the --config file, if one was given. Callers validate
// after applying their flag overrides.
// Verbose is enabled when either the flag or the file asks for it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cfg.Verbose && configPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Loaded config from: %s\n", configPath)
	}
	return cfg, nil
}
