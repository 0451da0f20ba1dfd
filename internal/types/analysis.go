package types

// AnalysisResult is the keyword-overlap report produced by one comparison.
// Slices are always non-nil so the JSON form uses [] rather than null.
type AnalysisResult struct {
	MatchPercentage          int           `json:"matchPercentage"`
	TotalRequirementKeywords int           `json:"totalRequirementKeywords"`
	ExactMatches             int           `json:"exactMatches"`
	PartialMatches           []MatchRecord `json:"partialMatches"`
	MissingCount             int           `json:"missingCount"`
	PresentKeywords          []MatchRecord `json:"presentKeywords"`
	MissingKeywords          []MatchRecord `json:"missingKeywords"`
	Suggestions              []string      `json:"suggestions"`
}

// Consistent checks the partition invariant and the per-list annotations.
func (r *AnalysisResult) Consistent() bool {
	if r.ExactMatches+len(r.PartialMatches)+r.MissingCount != r.TotalRequirementKeywords {
		return false
	}
	if r.ExactMatches != len(r.PresentKeywords) || r.MissingCount != len(r.MissingKeywords) {
		return false
	}
	for _, rec := range r.PresentKeywords {
		if rec.MatchType != MatchExact || rec.Priority != nil {
			return false
		}
	}
	for _, rec := range r.PartialMatches {
		if rec.MatchType != MatchPartial || rec.Priority != nil {
			return false
		}
	}
	for _, rec := range r.MissingKeywords {
		if !rec.IsMissing() {
			return false
		}
	}
	return r.MatchPercentage >= 0 && r.MatchPercentage <= 100
}

// CategoryCount is the number of requirement keywords in one category
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}
