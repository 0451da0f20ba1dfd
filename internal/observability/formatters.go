// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/keyword-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxKeywordsToShow caps every keyword list
	maxKeywordsToShow = 15
	// barWidth is the width of a full category bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the inner box width, counting runes.
func pad(line string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// PrintAnalysis outputs the score, counts, keyword lists and suggestions of an analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match:    %d%%\n", result.MatchPercentage)
	fmt.Fprintf(&sb, "Keywords: %d total, %d exact, %d partial, %d missing\n",
		result.TotalRequirementKeywords, result.ExactMatches, len(result.PartialMatches), result.MissingCount)

	writeRecords(&sb, "Present", result.PresentKeywords, false)
	writeRecords(&sb, "Partial", result.PartialMatches, false)
	writeRecords(&sb, "Missing", result.MissingKeywords, true)

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for i, s := range result.Suggestions {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, s)
		}
	}

	p.printBox("KEYWORD MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeRecords(sb *strings.Builder, label string, records []types.MatchRecord, withPriority bool) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", label)
	count := min(len(records), maxKeywordsToShow)
	for _, rec := range records[:count] {
		fmt.Fprintf(sb, "  • %s [%s]", rec.Term, rec.Category)
		if withPriority && rec.Priority != nil {
			fmt.Fprintf(sb, " %.2f", *rec.Priority)
		}
		sb.WriteString("\n")
	}
	if len(records) > maxKeywordsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(records)-maxKeywordsToShow)
	}
}

// PrintKeywords outputs a ranked keyword list with scores.
func (p *Printer) PrintKeywords(keywords []types.Keyword) {
	if len(keywords) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Distinct keywords: %d\n\n", len(keywords))
	count := min(len(keywords), maxKeywordsToShow)
	for i, kw := range keywords[:count] {
		fmt.Fprintf(&sb, "#%-2d %-20s %.3f  %s\n", i+1, kw.Term, kw.Score, kw.Category)
	}
	if len(keywords) > maxKeywordsToShow {
		fmt.Fprintf(&sb, "... and %d more\n", len(keywords)-maxKeywordsToShow)
	}

	p.printBox("RANKED KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCategoryBreakdown outputs one bar per category scaled to the largest count.
func (p *Printer) PrintCategoryBreakdown(breakdown []types.CategoryCount) {
	if len(breakdown) == 0 {
		return
	}

	maxCount := 0
	for _, cc := range breakdown {
		maxCount = max(maxCount, cc.Count)
	}

	var sb strings.Builder
	for _, cc := range breakdown {
		bar := 0
		if maxCount > 0 {
			bar = cc.Count * barWidth / maxCount
		}
		fmt.Fprintf(&sb, "%-20s %s %d\n", cc.Category, strings.Repeat("█", bar), cc.Count)
	}

	p.printBox("CATEGORY BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}
