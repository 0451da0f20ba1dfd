package matching

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/jonathan/keyword-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleResume = `John Doe
Software Developer
- Java, Spring Boot, REST APIs, MySQL
- Web: HTML, CSS, JavaScript
- Tools: Git, Docker, Agile
`
	sampleJob = `Senior Backend Engineer
Requirements:
- Java, Spring Boot
- REST API, Microservices
- MySQL, PostgreSQL
- AWS, Docker, Kubernetes
`
)

func terms(records []types.MatchRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Term)
	}
	return out
}

func TestMatch_ExactAndMissing(t *testing.T) {
	result := Match("I know Java and Spring", "Java Spring Boot")

	assert.Equal(t, 3, result.TotalRequirementKeywords)
	assert.Equal(t, 2, result.ExactMatches)
	assert.Equal(t, []string{"java", "spring"}, terms(result.PresentKeywords))
	assert.Equal(t, types.ProgrammingLanguage, result.PresentKeywords[0].Category)
	assert.Equal(t, types.FrameworkOrLibrary, result.PresentKeywords[1].Category)
	assert.Empty(t, result.PartialMatches)
	assert.Equal(t, 1, result.MissingCount)
	assert.Equal(t, []string{"boot"}, terms(result.MissingKeywords))
	assert.Equal(t, 67, result.MatchPercentage)
	assert.True(t, result.Consistent())
}

func TestMatch_PartialBySubstringOfTerm(t *testing.T) {
	result := Match("kube", "Kubernetes")

	assert.Equal(t, 0, result.ExactMatches)
	require.Len(t, result.PartialMatches, 1)
	assert.Equal(t, "kubernetes", result.PartialMatches[0].Term)
	assert.Equal(t, types.MatchPartial, result.PartialMatches[0].MatchType)
	assert.Nil(t, result.PartialMatches[0].Priority)
	assert.Equal(t, 100, result.MatchPercentage)
}

func TestMatch_PartialByTokenContainingTerm(t *testing.T) {
	// "postgresql" never appears verbatim but contains the candidate token "sql"
	result := Match("postgres, sql", "PostgreSQL")

	require.Len(t, result.PartialMatches, 1)
	assert.Equal(t, "postgresql", result.PartialMatches[0].Term)
}

func TestMatch_EmptyRequirement(t *testing.T) {
	for _, req := range []string{"", "   ", "the and of", "a b c"} {
		result := Match("Go developer with Kubernetes", req)

		assert.Equal(t, 0, result.TotalRequirementKeywords)
		assert.Equal(t, 0, result.MatchPercentage)
		assert.Equal(t, 0, result.ExactMatches)
		assert.Equal(t, 0, result.MissingCount)
		assert.NotNil(t, result.PartialMatches)
		assert.NotNil(t, result.PresentKeywords)
		assert.NotNil(t, result.MissingKeywords)
		assert.NotNil(t, result.Suggestions)
		assert.Empty(t, result.PartialMatches)
		assert.Empty(t, result.PresentKeywords)
		assert.Empty(t, result.MissingKeywords)
		assert.Empty(t, result.Suggestions)
	}
}

func TestMatch_FullWidthRequirementHasNoKeywords(t *testing.T) {
	result := Match("I write Java", "Ｊａｖａ")

	assert.Zero(t, result.TotalRequirementKeywords)
	assert.Zero(t, result.ExactMatches)
	assert.Zero(t, result.MatchPercentage)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		matched, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{23, 40, 58},
		{5, 5, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentage(tt.matched, tt.total), "%d/%d", tt.matched, tt.total)
	}
}

func TestMatch_EmptyCandidate(t *testing.T) {
	result := Match("", "Java Spring Boot Kubernetes")

	assert.Equal(t, 4, result.TotalRequirementKeywords)
	assert.Equal(t, 0, result.ExactMatches)
	assert.Empty(t, result.PartialMatches)
	assert.Equal(t, 4, result.MissingCount)
	assert.Equal(t, 0, result.MatchPercentage)
	for _, rec := range result.MissingKeywords {
		require.NotNil(t, rec.Priority)
		assert.InDelta(t, rec.Score*CategoryWeight(rec.Category), *rec.Priority, 1e-9)
		assert.Empty(t, rec.MatchType)
	}
}

func TestMatch_SuggestionsForMissingCategories(t *testing.T) {
	result := Match("cobol", "java react docker")

	assert.Equal(t, 3, result.MissingCount)
	assert.Equal(t, []string{
		"Add languages: java",
		"Include frameworks: react",
		"Highlight cloud/DevOps: docker",
	}, result.Suggestions)
}

func TestMatch_SampleDocuments(t *testing.T) {
	result := Match(sampleResume, sampleJob)

	assert.True(t, result.Consistent())
	assert.Contains(t, terms(result.PresentKeywords), "java,")
	assert.Contains(t, terms(result.PresentKeywords), "docker,")
	assert.Contains(t, terms(result.MissingKeywords), "kubernetes")
	assert.Contains(t, terms(result.MissingKeywords), "aws,")
	assert.Greater(t, result.MatchPercentage, 0)
	assert.Less(t, result.MatchPercentage, 100)
}

func TestMatch_RequirementLimitedToTopN(t *testing.T) {
	var words []string
	for i := 0; i < 80; i++ {
		words = append(words, "skill"+strings.Repeat("x", i+1))
	}
	result := Match("", strings.Join(words, " "))

	assert.Equal(t, RequirementTopN, result.TotalRequirementKeywords)
	assert.Equal(t, RequirementTopN, result.MissingCount)
}

func TestMatch_SuggestionsUseHighestPriority(t *testing.T) {
	// All scores tie, so "rust" ranks last but its language weight lifts it
	// into the ten highest-priority missing keywords.
	req := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima rust"
	result := Match("", req)

	require.Equal(t, 13, result.MissingCount)
	assert.Equal(t, "rust", result.MissingKeywords[12].Term)
	assert.Equal(t, []string{"Add languages: rust"}, result.Suggestions)
}

func TestMatch_Totality(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefgh ijk.,-+#!?/\n\tXYZ😀é")

	randomText := func() string {
		n := rng.Intn(60)
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(runes)
	}

	for i := 0; i < 300; i++ {
		a, b := randomText(), randomText()
		result := Match(a, b)
		assert.True(t, result.Consistent(), "candidate %q requirement %q", a, b)
	}
}
