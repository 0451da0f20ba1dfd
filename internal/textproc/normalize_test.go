package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "lowercases", input: "Java Spring Boot", expected: "java spring boot"},
		{name: "keeps symbol set", input: "C++, C#, Node.js - 5+ years", expected: "c++, c#, node.js - 5+ years"},
		{name: "replaces punctuation", input: "REST/APIs (Go!)", expected: "rest apis go"},
		{name: "collapses whitespace", input: "  a \t\n  b   ", expected: "a b"},
		{name: "keeps underscores", input: "snake_case", expected: "snake_case"},
		{name: "drops non ascii letters", input: "café naïve", expected: "caf na ve"},
		{name: "blanks full width forms", input: "Ｊａｖａ", expected: ""},
		{name: "blanks full width words", input: "Ｊａｖａ Ｄｅｖｅｌｏｐｅｒ", expected: ""},
		{name: "blanks ligatures", input: "ﬁrebase", expected: "rebase"},
		{name: "blanks superscripts", input: "x² engineer", expected: "x engineer"},
		{name: "dotted capital i", input: "İstanbul", expected: "istanbul"},
		{name: "only punctuation", input: "!!! ??? ***", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Senior Backend Engineer\nRequirements:\n- Java, Spring Boot",
		"• Kubernetes — Docker · AWS",
		"ＡＢＣ ﬁle   x",
		"\xff\xfe invalid utf8",
		"   ...   ,,,   ",
	}

	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("I know Java and Spring, a bit of Go")
	assert.Equal(t, []string{"know", "java", "spring,", "bit", "go"}, tokens)
}

func TestTokenize_FiltersStopWordsAndSingleChars(t *testing.T) {
	tokens := Tokenize("The a an and or but in on at to for of with by is are was were x y z")
	assert.Empty(t, tokens)
	assert.NotNil(t, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Equal(t, []string{}, Tokenize(""))
	assert.Equal(t, []string{}, Tokenize("   \n\t "))
}

func TestTokenize_PreservesOrderAndDuplicates(t *testing.T) {
	tokens := Tokenize("go rust go")
	assert.Equal(t, []string{"go", "rust", "go"}, tokens)
}

func TestTokenSet(t *testing.T) {
	assert.Equal(t, []string{"go", "rust"}, TokenSet("Go rust GO go"))
	assert.Empty(t, TokenSet(""))
}

func TestStopWords(t *testing.T) {
	words := StopWords()
	assert.Len(t, words, 18)
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("were"))
	assert.False(t, IsStopWord("java"))
	assert.IsIncreasing(t, words)
}
