package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-matcher/internal/config"
	"github.com/jonathan/keyword-matcher/internal/ingestion"
	"github.com/jonathan/keyword-matcher/internal/pipeline"
	"github.com/jonathan/keyword-matcher/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch candidate...",
	Short: "Rank several candidate documents against one requirement",
	Long:  "Match every candidate file against the same requirement document and print them ranked by match percentage.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchRequirement    string
	batchRequirementURL string
	batchOutput         string
	batchFormat         string
	batchConcurrency    int
	batchUseBrowser     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchRequirement, "requirement", "r", "", "Path to requirement (job description) file")
	batchCmd.Flags().StringVar(&batchRequirementURL, "requirement-url", "", "URL to fetch the requirement text from")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write the ranking to this file instead of stdout")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", config.FormatText, "Output format: json or text")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", pipeline.DefaultBatchConcurrency, "Maximum parallel analyses")
	batchCmd.Flags().BoolVar(&batchUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered pages (requires Chrome)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("requirement") {
		cfg.Requirement = batchRequirement
		cfg.RequirementURL = ""
	}
	if flags.Changed("requirement-url") {
		cfg.RequirementURL = batchRequirementURL
		if !flags.Changed("requirement") {
			cfg.Requirement = ""
		}
	}
	if flags.Changed("output") {
		cfg.Output = batchOutput
	}
	if flags.Changed("concurrency") {
		cfg.BatchConcurrency = batchConcurrency
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = batchUseBrowser
	}
	if flags.Changed("format") || cfg.Format == "" {
		cfg.Format = batchFormat
	}
	cfg = cfg.MergeWithDefaults(config.Config{BatchConcurrency: pipeline.DefaultBatchConcurrency})

	if cfg.Requirement == "" && cfg.RequirementURL == "" {
		return fmt.Errorf("either --requirement or --requirement-url must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	var requirement string
	if cfg.RequirementURL != "" {
		requirement, _, err = ingestion.IngestFromURL(ctx, cfg.RequirementURL, cfg.UseBrowser, cfg.Verbose)
	} else {
		requirement, _, err = ingestion.IngestFromFile(cfg.Requirement)
	}
	if err != nil {
		return fmt.Errorf("requirement ingestion failed: %w", err)
	}

	candidates, err := pipeline.LoadCandidates(ctx, args, cfg.BatchConcurrency)
	if err != nil {
		return err
	}

	resp, err := pipeline.RunBatch(ctx, requirement, candidates, pipeline.BatchOptions{
		Concurrency: cfg.BatchConcurrency,
		Verbose:     cfg.Verbose,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output != "" {
		f, createErr := os.Create(cfg.Output)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}
	return writeBatch(out, cfg.Format, resp)
}

func writeBatch(w io.Writer, format string, resp *types.BatchAnalyzeResponse) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case config.FormatText:
		for i, entry := range resp.Entries {
			if _, err := fmt.Fprintf(w, "#%-2d %-30s %3d%%  %s\n", i+1, entry.Name, entry.Result.MatchPercentage, entry.Interpretation); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, config.FormatJSON, config.FormatText)
	}
}
