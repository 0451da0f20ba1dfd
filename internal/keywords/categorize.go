package keywords

import (
	"strings"

	"github.com/jonathan/keyword-matcher/internal/types"
)

// Static membership lists. Categorize checks them in categoryOrder.
var (
	languageTerms = []string{
		"java", "python", "javascript", "typescript", "c++", "c#",
		"php", "ruby", "go", "rust", "swift", "kotlin",
	}
	frameworkTerms = []string{
		"react", "angular", "vue", "nodejs", "express", "django",
		"flask", "spring", "laravel",
	}
	databaseTerms = []string{
		"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
		"cassandra", "elasticsearch",
	}
	cloudTerms = []string{
		"aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
		"git", "gitlab", "cicd", "devops",
	}
	softSkillTerms = []string{
		"leadership", "communication", "teamwork", "analytical", "problem", "solving",
	}
)

// categoryOrder is the lookup priority; TechnicalSkill is the fallback
var categoryOrder = []types.Category{
	types.ProgrammingLanguage,
	types.FrameworkOrLibrary,
	types.Database,
	types.CloudOrDevOps,
	types.SoftSkill,
}

// categoryIndex maps each listed term to the first category containing it
var categoryIndex = buildCategoryIndex()

func buildCategoryIndex() map[string]types.Category {
	index := make(map[string]types.Category)
	for _, c := range categoryOrder {
		for _, term := range termsFor(c) {
			if _, exists := index[term]; !exists {
				index[term] = c
			}
		}
	}
	return index
}

// termsFor returns the backing list for a category without copying
func termsFor(c types.Category) []string {
	switch c {
	case types.ProgrammingLanguage:
		return languageTerms
	case types.FrameworkOrLibrary:
		return frameworkTerms
	case types.Database:
		return databaseTerms
	case types.CloudOrDevOps:
		return cloudTerms
	case types.SoftSkill:
		return softSkillTerms
	default:
		return nil
	}
}

// Categorize assigns a term to a category. The lookup is case-insensitive
// and total: unlisted terms are TechnicalSkill.
func Categorize(term string) types.Category {
	if c, ok := categoryIndex[strings.ToLower(term)]; ok {
		return c
	}
	return types.TechnicalSkill
}

// Terms returns a copy of the membership list for a category.
// TechnicalSkill has no list and yields an empty slice.
func Terms(c types.Category) []string {
	list := termsFor(c)
	out := make([]string, len(list))
	copy(out, list)
	return out
}
