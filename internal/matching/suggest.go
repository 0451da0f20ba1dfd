package matching

import (
	"strings"

	"github.com/jonathan/keyword-matcher/internal/types"
)

// suggestionPrefixes lists the categories that produce a suggestion line, in output order
var suggestionPrefixes = []struct {
	category types.Category
	prefix   string
}{
	{types.ProgrammingLanguage, "Add languages: "},
	{types.FrameworkOrLibrary, "Include frameworks: "},
	{types.CloudOrDevOps, "Highlight cloud/DevOps: "},
}

// Suggest groups missing keywords by category and emits one line per
// non-empty suggestion category. Terms keep the order they were given in.
func Suggest(missing []types.MatchRecord) []string {
	suggestions := make([]string, 0, len(suggestionPrefixes))
	if len(missing) == 0 {
		return suggestions
	}

	grouped := make(map[types.Category][]string)
	for _, rec := range missing {
		grouped[rec.Category] = append(grouped[rec.Category], rec.Term)
	}

	for _, sp := range suggestionPrefixes {
		terms := grouped[sp.category]
		if len(terms) == 0 {
			continue
		}
		suggestions = append(suggestions, sp.prefix+strings.Join(terms, ", "))
	}

	return suggestions
}
