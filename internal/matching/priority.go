package matching

import (
	"sort"

	"github.com/jonathan/keyword-matcher/internal/types"
)

// Category weights for missing-keyword priority
const (
	weightProgrammingLanguage = 1.5
	weightFrameworkOrLibrary  = 1.3
	weightDatabase            = 1.2
	weightCloudOrDevOps       = 1.2
	weightTechnicalSkill      = 1.1
	weightSoftSkill           = 0.8
	weightDefault             = 1.0
)

// CategoryWeight returns the priority multiplier for a category.
func CategoryWeight(c types.Category) float64 {
	switch c {
	case types.ProgrammingLanguage:
		return weightProgrammingLanguage
	case types.FrameworkOrLibrary:
		return weightFrameworkOrLibrary
	case types.Database:
		return weightDatabase
	case types.CloudOrDevOps:
		return weightCloudOrDevOps
	case types.TechnicalSkill:
		return weightTechnicalSkill
	case types.SoftSkill:
		return weightSoftSkill
	default:
		return weightDefault
	}
}

// Priority weighs a keyword's frequency score by its category.
func Priority(kw types.Keyword) float64 {
	return kw.Score * CategoryWeight(kw.Category)
}

// TopMissing returns up to limit missing records ordered by priority (descending).
// Equal priorities keep their input order. The input slice is not modified.
func TopMissing(missing []types.MatchRecord, limit int) []types.MatchRecord {
	ranked := make([]types.MatchRecord, len(missing))
	copy(ranked, missing)

	sort.SliceStable(ranked, func(i, j int) bool {
		return priorityOf(ranked[i]) > priorityOf(ranked[j])
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// priorityOf falls back to computing the priority when a record lacks one
func priorityOf(rec types.MatchRecord) float64 {
	if rec.Priority != nil {
		return *rec.Priority
	}
	return Priority(rec.Keyword)
}
