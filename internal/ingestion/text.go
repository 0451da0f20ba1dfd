// Package ingestion turns resumes and job postings into clean plain text.
package ingestion

import (
	"regexp"
	"strings"
)

const markdownBullet = "- "

var (
	reInnerSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	reBlankLines = regexp.MustCompile(`\n{3,}`)
	bulletGlyphs = []string{"• ", "· ", "▪ ", "◦ ", "– "}
)

// CleanText normalizes line endings and spacing while keeping the line
// structure (headings, bullets, paragraphs) of the document.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := reBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner runs of spaces, keeps leading indentation and
// rewrites typographic bullets as markdown bullets.
func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	indent := len(line) - len(trimmed)

	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			trimmed = markdownBullet + strings.TrimPrefix(trimmed, glyph)
			break
		}
	}

	body := strings.TrimSpace(reInnerSpace.ReplaceAllString(trimmed, " "))
	return strings.Repeat(" ", indent) + body
}
