package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonathan/keyword-matcher/internal/types"
)

func TestRunBatch_RankedByPercentageThenName(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	candidates := []types.CandidateDocument{
		{Name: "zoe", Text: "java"},
		{Name: "carol", Text: "nothing relevant"},
		{Name: "alice", Text: "java"},
		{Name: "bob", Text: "java react docker"},
	}

	resp, err := RunBatch(context.Background(), "java react docker", candidates, BatchOptions{Concurrency: 2})
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"bob", "alice", "zoe", "carol"}, names)
	assert.Equal(t, 100, resp.Entries[0].Result.MatchPercentage)
	assert.Equal(t, "Excellent match!", resp.Entries[0].Interpretation)
	assert.Equal(t, 33, resp.Entries[1].Result.MatchPercentage)
	assert.Equal(t, 0, resp.Entries[3].Result.MatchPercentage)
}

func TestRunBatch_ManyCandidates(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	candidates := make([]types.CandidateDocument, 50)
	for i := range candidates {
		candidates[i] = types.CandidateDocument{Name: fmt.Sprintf("c%02d", i), Text: "go kubernetes"}
	}

	var events atomic.Int32
	resp, err := RunBatch(context.Background(), "go kubernetes terraform", candidates, BatchOptions{
		Concurrency: 8,
		OnProgress:  func(ProgressEvent) { events.Add(1) },
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 50)
	assert.Equal(t, int32(50), events.Load())
	assert.Equal(t, "c00", resp.Entries[0].Name)
	assert.Equal(t, "c49", resp.Entries[49].Name)
	for _, e := range resp.Entries {
		assert.Equal(t, 67, e.Result.MatchPercentage)
	}
}

func TestRunBatch_Empty(t *testing.T) {
	resp, err := RunBatch(context.Background(), "go", nil, BatchOptions{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Entries)
	assert.Empty(t, resp.Entries)
}

func TestRunBatch_CanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunBatch(ctx, "go", []types.CandidateDocument{{Name: "a", Text: "go"}}, BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadCandidates(t *testing.T) {
	a := writeFile(t, "alice.txt", "Go   and Rust")
	b := writeFile(t, "bob.md", "# Bob\n- Java")

	docs, err := LoadCandidates(context.Background(), []string{a, b}, 2)
	require.NoError(t, err)
	assert.Equal(t, []types.CandidateDocument{
		{Name: "alice.txt", Text: "Go and Rust"},
		{Name: "bob.md", Text: "# Bob\n- Java"},
	}, docs)
}

func TestLoadCandidates_Error(t *testing.T) {
	good := writeFile(t, "alice.txt", "Go")

	_, err := LoadCandidates(context.Background(), []string{good, "/missing/resume.txt"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing/resume.txt")
}
