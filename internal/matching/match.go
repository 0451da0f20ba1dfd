// Package matching compares a requirement document's keywords against a candidate
// document and scores the overlap.
package matching

import (
	"math"
	"strings"

	"github.com/jonathan/keyword-matcher/internal/keywords"
	"github.com/jonathan/keyword-matcher/internal/textproc"
	"github.com/jonathan/keyword-matcher/internal/types"
)

const (
	// RequirementTopN is how many requirement keywords are compared
	RequirementTopN = 50
	// SuggestionLimit is how many missing keywords feed the suggestions
	SuggestionLimit = 10
)

// candidate holds the lookup structures built once per candidate text
type candidate struct {
	lower  string
	tokens []string // distinct, first-occurrence order
	set    map[string]bool
}

func newCandidate(text string) *candidate {
	tokens := textproc.TokenSet(text)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return &candidate{
		lower:  strings.ToLower(text),
		tokens: tokens,
		set:    set,
	}
}

// classify returns the match type for a lowercase term, or "" when missing.
// Partial containment is checked in both directions, so very short terms
// can match unrelated tokens.
func (c *candidate) classify(term string) types.MatchType {
	if strings.Contains(c.lower, term) || c.set[term] {
		return types.MatchExact
	}
	for _, tok := range c.tokens {
		if strings.Contains(term, tok) || strings.Contains(tok, term) {
			return types.MatchPartial
		}
	}
	return ""
}

// Match compares candidateText against the top requirement keywords of
// requirementText. It never fails: an empty requirement yields a zero
// result and an empty candidate leaves every keyword missing.
func Match(candidateText, requirementText string) types.AnalysisResult {
	reqKeywords := keywords.ExtractKeywords(requirementText, RequirementTopN)
	cand := newCandidate(candidateText)

	present := make([]types.MatchRecord, 0)
	partial := make([]types.MatchRecord, 0)
	missing := make([]types.MatchRecord, 0)

	for _, kw := range reqKeywords {
		switch cand.classify(strings.ToLower(kw.Term)) {
		case types.MatchExact:
			present = append(present, types.MatchRecord{Keyword: kw, MatchType: types.MatchExact})
		case types.MatchPartial:
			partial = append(partial, types.MatchRecord{Keyword: kw, MatchType: types.MatchPartial})
		default:
			priority := Priority(kw)
			missing = append(missing, types.MatchRecord{Keyword: kw, Priority: &priority})
		}
	}

	return types.AnalysisResult{
		MatchPercentage:          percentage(len(present)+len(partial), len(reqKeywords)),
		TotalRequirementKeywords: len(reqKeywords),
		ExactMatches:             len(present),
		PartialMatches:           partial,
		MissingCount:             len(missing),
		PresentKeywords:          present,
		MissingKeywords:          missing,
		Suggestions:              Suggest(TopMissing(missing, SuggestionLimit)),
	}
}

// percentage rounds 100*matched/total half up; zero total is defined as 0%.
// The product is taken before the division so 23/40 yields 58.
func percentage(matched, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}
