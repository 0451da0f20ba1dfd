// Package report renders analysis results as JSON or plain text reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/keyword-matcher/internal/schemas"
	"github.com/jonathan/keyword-matcher/internal/types"
)

// Report formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Interpretation thresholds on the match percentage.
const (
	ExcellentThreshold = 75
	GoodThreshold      = 55
)

const noSuggestions = "Great! No major improvements needed."

// Interpret returns the one-line verdict for a match percentage.
func Interpret(percentage int) string {
	switch {
	case percentage >= ExcellentThreshold:
		return "Excellent match!"
	case percentage >= GoodThreshold:
		return "Good match, can improve!"
	default:
		return "Significant optimization needed."
	}
}

// CategoryBreakdown counts requirement keywords per category across present,
// partial and missing records. Every category is listed, in display order.
func CategoryBreakdown(result *types.AnalysisResult) []types.CategoryCount {
	counts := make(map[types.Category]int, len(types.AllCategories))
	for _, group := range [][]types.MatchRecord{result.PresentKeywords, result.PartialMatches, result.MissingKeywords} {
		for _, rec := range group {
			counts[rec.Category]++
		}
	}

	out := make([]types.CategoryCount, 0, len(types.AllCategories))
	for _, c := range types.AllCategories {
		out = append(out, types.CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, result *types.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}
	return nil
}

// WriteText writes a plain text report.
func WriteText(w io.Writer, result *types.AnalysisResult) error {
	var sb strings.Builder

	sb.WriteString("Resume Keyword Match Report\n\n")
	fmt.Fprintf(&sb, "Match Score: %d%% (%s)\n", result.MatchPercentage, Interpret(result.MatchPercentage))
	fmt.Fprintf(&sb, "Total Keywords: %d\n", result.TotalRequirementKeywords)
	fmt.Fprintf(&sb, "Found: %d\n", result.ExactMatches)
	fmt.Fprintf(&sb, "Partial Matches: %d\n", len(result.PartialMatches))
	fmt.Fprintf(&sb, "Missing: %d\n", result.MissingCount)

	sb.WriteString("\n----------------------\nMissing Keywords:\n")
	for _, kw := range result.MissingKeywords {
		priority := 0.0
		if kw.Priority != nil {
			priority = *kw.Priority
		}
		fmt.Fprintf(&sb, "- %s (%s) Priority: %.2f\n", kw.Term, kw.Category, priority)
	}

	sb.WriteString("\n----------------------\nRecommendations:\n")
	if len(result.Suggestions) == 0 {
		sb.WriteString(noSuggestions + "\n")
	}
	for i, s := range result.Suggestions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Write renders result in the given format.
func Write(w io.Writer, format string, result *types.AnalysisResult) error {
	switch format {
	case "", FormatJSON:
		return WriteJSON(w, result)
	case FormatText:
		return WriteText(w, result)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// DefaultFilename returns resume_analysis_YYYY-MM-DD.<ext> for the UTC date of now.
func DefaultFilename(ext string, now time.Time) string {
	return fmt.Sprintf("resume_analysis_%s.%s", now.UTC().Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}

// Extension returns the file extension used for a report format.
func Extension(format string) string {
	if format == FormatText {
		return "txt"
	}
	return "json"
}

// Export validates result against the analysis schema and writes it to path.
// When path is a directory the default filename is used inside it.
// Returns the path written.
func Export(path, format string, result *types.AnalysisResult) (string, error) {
	if err := schemas.ValidateAnalysisResult(result); err != nil {
		return "", fmt.Errorf("refusing to export invalid result: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename(Extension(format), time.Now()))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := Write(f, format, result); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}
