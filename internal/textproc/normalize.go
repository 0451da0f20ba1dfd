// Package textproc normalizes free text into canonical lowercase tokens for keyword matching.
package textproc

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// anything outside ASCII word characters, whitespace and . , - + #
	reDisallowed = regexp.MustCompile(`[^\w\s.,+#-]`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// stopWords are function words never treated as keywords
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
}

// Clean lowercases text, replaces every disallowed character with a space,
// collapses whitespace runs and trims the result.
// Compatibility forms are not folded: full-width letters and ligatures are
// blanked like any other non-ASCII rune. strings.ToLower maps U+0130 to a
// plain "i", so "İstanbul" cleans to "istanbul".
// The output is pure ASCII, so Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = reDisallowed.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokenize cleans text and returns its tokens in original order,
// dropping single-character tokens and stop words.
func Tokenize(text string) []string {
	cleaned := Clean(text)
	if cleaned == "" {
		return []string{}
	}

	words := strings.Split(cleaned, " ")
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 1 || stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TokenSet returns the distinct tokens of text in first-occurrence order.
func TokenSet(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]bool, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}
	return unique
}

// IsStopWord reports whether a lowercase word is in the stop-word set
func IsStopWord(word string) bool {
	return stopWords[word]
}

// StopWords returns the stop-word set as a sorted slice.
func StopWords() []string {
	words := make([]string, 0, len(stopWords))
	for w := range stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
