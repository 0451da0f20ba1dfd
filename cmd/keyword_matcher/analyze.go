package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-matcher/internal/config"
	"github.com/jonathan/keyword-matcher/internal/pipeline"
	"github.com/jonathan/keyword-matcher/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Match a candidate document against a requirement document",
	Long: `Extract keywords from the requirement document (file or URL), look for each in the
candidate document and print the analysis. Supported files: .txt, .md, .html, .docx, .pdf.

With --output the report is validated against the analysis schema and written to the
given file, or to resume_analysis_YYYY-MM-DD.<ext> when the path is a directory.`,
	RunE: runAnalyze,
}

var (
	analyzeRequirement    string
	analyzeRequirementURL string
	analyzeCandidate      string
	analyzeOutput         string
	analyzeFormat         string
	analyzeUseBrowser     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeRequirement, "requirement", "r", "", "Path to requirement (job description) file (mutually exclusive with --requirement-url)")
	analyzeCmd.Flags().StringVar(&analyzeRequirementURL, "requirement-url", "", "URL to fetch the requirement text from")
	analyzeCmd.Flags().StringVarP(&analyzeCandidate, "candidate", "c", "", "Path to candidate (resume) file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the report to this file or directory instead of stdout")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", config.FormatJSON, "Report format: json or text")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for JavaScript-rendered pages (requires Chrome)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Command-line args take priority over the config file
	flags := cmd.Flags()
	if flags.Changed("requirement") {
		cfg.Requirement = analyzeRequirement
		cfg.RequirementURL = ""
	}
	if flags.Changed("requirement-url") {
		cfg.RequirementURL = analyzeRequirementURL
		if !flags.Changed("requirement") {
			cfg.Requirement = ""
		}
	}
	if flags.Changed("candidate") {
		cfg.Candidate = analyzeCandidate
	}
	if flags.Changed("output") {
		cfg.Output = analyzeOutput
	}
	if flags.Changed("format") {
		cfg.Format = analyzeFormat
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}
	cfg = cfg.MergeWithDefaults(config.Config{Format: config.FormatJSON})

	if cfg.Requirement == "" && cfg.RequirementURL == "" {
		return fmt.Errorf("either --requirement or --requirement-url must be provided (via flag or config)")
	}
	if cfg.Requirement != "" && cfg.RequirementURL != "" {
		return fmt.Errorf("--requirement and --requirement-url are mutually exclusive; provide only one")
	}
	if cfg.Candidate == "" {
		return fmt.Errorf("--candidate must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	outcome, err := pipeline.Analyze(cmd.Context(), pipeline.RunOptions{
		RequirementPath: cfg.Requirement,
		RequirementURL:  cfg.RequirementURL,
		CandidatePath:   cfg.Candidate,
		UseBrowser:      cfg.UseBrowser,
		Verbose:         cfg.Verbose,
		Out:             cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return report.Write(cmd.OutOrStdout(), cfg.Format, &outcome.Result)
	}

	path, err := report.Export(cfg.Output, cfg.Format, &outcome.Result)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d%%)\n", outcome.Interpretation, outcome.Result.MatchPercentage)
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to: %s\n", path)
	return nil
}
