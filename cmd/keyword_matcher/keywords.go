package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-matcher/internal/config"
	"github.com/jonathan/keyword-matcher/internal/ingestion"
	"github.com/jonathan/keyword-matcher/internal/keywords"
	"github.com/jonathan/keyword-matcher/internal/observability"
	"github.com/jonathan/keyword-matcher/internal/types"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [file]",
	Short: "List the ranked keywords of a document",
	Long:  "Tokenize a document (or --text), drop stop words and print the most frequent terms with their category.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeywords,
}

var (
	keywordsText   string
	keywordsTopN   int
	keywordsFormat string
)

func init() {
	keywordsCmd.Flags().StringVar(&keywordsText, "text", "", "Inline text to analyze instead of a file")
	keywordsCmd.Flags().IntVarP(&keywordsTopN, "top-n", "n", keywords.DefaultTopN, "Number of keywords to list (0 lists all)")
	keywordsCmd.Flags().StringVarP(&keywordsFormat, "format", "f", config.FormatText, "Output format: json or text")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	topN := keywords.DefaultTopN
	if cfg.TopN > 0 {
		topN = cfg.TopN
	}
	if cmd.Flags().Changed("top-n") {
		topN = keywordsTopN
	}
	if topN < 0 {
		return fmt.Errorf("--top-n must be non-negative")
	}

	var text string
	switch {
	case keywordsText != "" && len(args) > 0:
		return fmt.Errorf("--text and a file argument are mutually exclusive; provide only one")
	case keywordsText != "":
		text = keywordsText
	case len(args) == 1:
		text, _, err = ingestion.IngestFromFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", args[0], err)
		}
	default:
		return fmt.Errorf("either --text or a file argument must be provided")
	}

	format := keywordsFormat
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	cfg.TopN = topN
	cfg.Format = strings.ToLower(format)
	if err := cfg.Validate(); err != nil {
		return err
	}

	kws := keywords.ExtractKeywords(text, topN)
	switch strings.ToLower(format) {
	case config.FormatText:
		if len(kws) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No keywords found.")
			return nil
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(kws)
		return nil
	case config.FormatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(types.KeywordsResponse{Keywords: kws})
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, config.FormatJSON, config.FormatText)
	}
}
