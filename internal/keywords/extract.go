// Package keywords derives frequency-ranked, categorized keyword lists from free text.
package keywords

import (
	"sort"

	"github.com/jonathan/keyword-matcher/internal/textproc"
	"github.com/jonathan/keyword-matcher/internal/types"
)

// DefaultTopN is the number of keywords kept when no limit is given
const DefaultTopN = 30

// ExtractKeywords tokenizes text, scores each distinct term by relative
// frequency and returns the topN highest-scoring keywords.
// Terms with equal scores keep their first-occurrence order.
// A topN of zero or less keeps every term.
func ExtractKeywords(text string, topN int) []types.Keyword {
	tokens := textproc.Tokenize(text)
	if len(tokens) == 0 {
		return []types.Keyword{}
	}

	// Count frequencies, remembering first-occurrence order
	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	total := float64(len(tokens))
	keywords := make([]types.Keyword, 0, len(order))
	for _, term := range order {
		keywords = append(keywords, types.Keyword{
			Term:     term,
			Score:    float64(counts[term]) / total,
			Category: Categorize(term),
		})
	}

	// Sort by score (descending)
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})

	if topN > 0 && len(keywords) > topN {
		keywords = keywords[:topN]
	}

	return keywords
}
