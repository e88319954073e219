// Package textutil cleans up completion output for plain-text delivery.
package textutil

import (
	"regexp"
	"strings"
)

var (
	ansiEscape     = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)
	boxDrawing     = regexp.MustCompile(`[\x{2500}-\x{257F}]`)
	headingMarker  = regexp.MustCompile(`(?m)^#+\s+`)
	boldText       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicText     = regexp.MustCompile(`\*([^*]+)\*`)
	codeText       = regexp.MustCompile("`([^`]+)`")
	linkTarget     = regexp.MustCompile(`\]\([^)]+\)`)
	linkLabel      = regexp.MustCompile(`\[[^\]]+\]`)
	ruleOnlyLine   = regexp.MustCompile(`(?m)^\s*[-•=]+\s*$`)
	bulletMarker   = regexp.MustCompile(`(?m)^\s*•\s*`)
	multiSpace     = regexp.MustCompile(`[ \t]{2,}`)
	multiBlankLine = regexp.MustCompile(`\n{3,}`)
)

// StripANSI removes ANSI escape sequences from text.
func StripANSI(text string) string {
	return ansiEscape.ReplaceAllString(text, "")
}

// ExtractContent converts decorated completion output to plain readable text:
// ANSI sequences, box-drawing characters and markdown markers are removed and
// whitespace is collapsed.
func ExtractContent(text string) string {
	content := StripANSI(text)
	content = boxDrawing.ReplaceAllString(content, "")
	content = headingMarker.ReplaceAllString(content, "")
	content = boldText.ReplaceAllString(content, "$1")
	content = italicText.ReplaceAllString(content, "$1")
	content = codeText.ReplaceAllString(content, "$1")
	content = linkTarget.ReplaceAllString(content, "")
	content = linkLabel.ReplaceAllString(content, "")
	content = ruleOnlyLine.ReplaceAllString(content, "")
	content = bulletMarker.ReplaceAllString(content, "- ")
	content = strings.ReplaceAll(content, "•", "-")
	content = multiSpace.ReplaceAllString(content, " ")
	content = multiBlankLine.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
