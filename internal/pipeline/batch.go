package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/keyword-matcher/internal/ingestion"
	"github.com/jonathan/keyword-matcher/internal/matching"
	"github.com/jonathan/keyword-matcher/internal/report"
	"github.com/jonathan/keyword-matcher/internal/types"
)

// DefaultBatchConcurrency bounds parallel analyses when none is configured.
const DefaultBatchConcurrency = 4

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Concurrency int
	Verbose     bool
	OnProgress  ProgressCallback
}

// RunBatch matches every candidate against one requirement text. Entries
// are ordered by match percentage, highest first, then by name.
func RunBatch(ctx context.Context, requirementText string, candidates []types.CandidateDocument, opts BatchOptions) (*types.BatchAnalyzeResponse, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	id := uuid.New()
	start := time.Now()
	entries := make([]types.BatchEntry, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, candidate := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result := matching.Match(candidate.Text, requirementText)
			entries[i] = types.BatchEntry{
				Name:           candidate.Name,
				Interpretation: report.Interpret(result.MatchPercentage),
				Result:         result,
			}
			emitProgress(opts.OnProgress, id, StepBatchEntry, CategoryAnalysis,
				fmt.Sprintf("%s: %d%%", candidate.Name, result.MatchPercentage), nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch analysis aborted: %w", err)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Result.MatchPercentage != entries[b].Result.MatchPercentage {
			return entries[a].Result.MatchPercentage > entries[b].Result.MatchPercentage
		}
		return entries[a].Name < entries[b].Name
	})

	if opts.Verbose {
		log.Printf("[batch] %s: %d candidates in %v (concurrency %d)", id, len(entries), time.Since(start), limit)
	}
	return &types.BatchAnalyzeResponse{AnalysisID: id, Entries: entries}, nil
}

// LoadCandidates ingests candidate files concurrently. Each document is
// named after its file name.
func LoadCandidates(ctx context.Context, paths []string, concurrency int) ([]types.CandidateDocument, error) {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	docs := make([]types.CandidateDocument, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			text, _, err := ingestion.IngestFromFile(path)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", path, err)
			}
			docs[i] = types.CandidateDocument{Name: filepath.Base(path), Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
