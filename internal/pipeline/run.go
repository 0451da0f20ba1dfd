// Package pipeline orchestrates document ingestion and keyword matching.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/keyword-matcher/internal/fetch"
	"github.com/jonathan/keyword-matcher/internal/ingestion"
	"github.com/jonathan/keyword-matcher/internal/matching"
	"github.com/jonathan/keyword-matcher/internal/observability"
	"github.com/jonathan/keyword-matcher/internal/report"
	"github.com/jonathan/keyword-matcher/internal/types"
)

// Step names reported through ProgressEvent.Step
const (
	StepIngestRequirement = "ingest_requirement"
	StepIngestCandidate   = "ingest_candidate"
	StepMatch             = "match"
	StepBatchEntry        = "batch_entry"
	StepComplete          = "complete"
)

// Step categories reported through ProgressEvent.Category
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
)

// SourceInline marks metadata of text passed directly rather than read from a file or URL.
const SourceInline = "inline"

var (
	// ErrMissingRequirement is returned when no requirement source is set
	ErrMissingRequirement = errors.New("no requirement text, file or URL provided")
	// ErrMissingCandidate is returned when no candidate source is set
	ErrMissingCandidate = errors.New("no candidate text or file provided")
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step       string `json:"step"`
	Category   string `json:"category"`
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs.
// Batch runs may call it from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for a single analysis. Each document is
// taken from the first non-empty of its text, URL and path fields.
type RunOptions struct {
	RequirementText string
	RequirementURL  string
	RequirementPath string
	CandidateText   string
	CandidatePath   string

	UseBrowser bool
	Verbose    bool
	Fetch      *fetch.Options
	Render     fetch.Renderer
	Out        io.Writer // verbose output; defaults to stdout
	OnProgress ProgressCallback
}

// Outcome is the result of Analyze.
type Outcome struct {
	AnalysisID          uuid.UUID
	Result              types.AnalysisResult
	Interpretation      string
	CategoryBreakdown   []types.CategoryCount
	RequirementMetadata *ingestion.Metadata
	CandidateMetadata   *ingestion.Metadata
}

// Response converts the outcome into its API form.
func (o *Outcome) Response() types.AnalyzeResponse {
	return types.AnalyzeResponse{
		AnalysisID:        o.AnalysisID,
		Interpretation:    o.Interpretation,
		CategoryBreakdown: o.CategoryBreakdown,
		Result:            o.Result,
	}
}

type document struct {
	text     string
	metadata *ingestion.Metadata
}

// emitProgress calls the progress callback if configured
func emitProgress(cb ProgressCallback, id uuid.UUID, step, category, message string, content any) {
	if cb != nil {
		cb(ProgressEvent{
			Step:       step,
			Category:   category,
			Message:    message,
			AnalysisID: id.String(),
			Content:    content,
		})
	}
}

// Analyze resolves both documents concurrently and matches them.
func Analyze(ctx context.Context, opts RunOptions) (*Outcome, error) {
	if opts.RequirementText == "" && opts.RequirementURL == "" && opts.RequirementPath == "" {
		return nil, ErrMissingRequirement
	}
	if opts.CandidateText == "" && opts.CandidatePath == "" {
		return nil, ErrMissingCandidate
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)
	id := uuid.New()

	var requirement, candidate document
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		doc, err := resolveRequirement(gCtx, opts)
		if err != nil {
			return fmt.Errorf("requirement ingestion failed: %w", err)
		}
		requirement = doc
		emitProgress(opts.OnProgress, id, StepIngestRequirement, CategoryIngestion,
			fmt.Sprintf("Loaded requirement text (%d words)", doc.metadata.Words), doc.metadata)
		return nil
	})

	g.Go(func() error {
		doc, err := resolveDocument(opts.CandidateText, opts.CandidatePath)
		if err != nil {
			return fmt.Errorf("candidate ingestion failed: %w", err)
		}
		candidate = doc
		emitProgress(opts.OnProgress, id, StepIngestCandidate, CategoryIngestion,
			fmt.Sprintf("Loaded candidate text (%d words)", doc.metadata.Words), doc.metadata)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := matching.Match(candidate.text, requirement.text)
	outcome := &Outcome{
		AnalysisID:          id,
		Result:              result,
		Interpretation:      report.Interpret(result.MatchPercentage),
		CategoryBreakdown:   report.CategoryBreakdown(&result),
		RequirementMetadata: requirement.metadata,
		CandidateMetadata:   candidate.metadata,
	}
	emitProgress(opts.OnProgress, id, StepMatch, CategoryAnalysis,
		fmt.Sprintf("Matched %d of %d requirement keywords", result.ExactMatches+len(result.PartialMatches), result.TotalRequirementKeywords), nil)

	if opts.Verbose {
		printer.PrintAnalysis(&outcome.Result)
		printer.PrintCategoryBreakdown(outcome.CategoryBreakdown)
	}

	emitProgress(opts.OnProgress, id, StepComplete, CategoryAnalysis, outcome.Interpretation, outcome.Response())
	return outcome, nil
}

func resolveRequirement(ctx context.Context, opts RunOptions) (document, error) {
	if opts.RequirementText == "" && opts.RequirementURL != "" {
		text, meta, err := ingestion.IngestFromURLWith(ctx, opts.RequirementURL, ingestion.URLOptions{
			UseBrowser: opts.UseBrowser,
			Verbose:    opts.Verbose,
			Fetch:      opts.Fetch,
			Render:     opts.Render,
		})
		if err != nil {
			return document{}, err
		}
		return document{text: text, metadata: meta}, nil
	}
	return resolveDocument(opts.RequirementText, opts.RequirementPath)
}

// resolveDocument prefers inline text over a file path.
func resolveDocument(text, path string) (document, error) {
	if text != "" {
		return document{text: text, metadata: ingestion.NewMetadata(text, SourceInline, ingestion.FormatText)}, nil
	}
	cleaned, meta, err := ingestion.IngestFromFile(path)
	if err != nil {
		return document{}, err
	}
	return document{text: cleaned, metadata: meta}, nil
}
