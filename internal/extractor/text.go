package extractor

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText normalises line endings, drops NUL bytes and blank lines, and
// composes the result to NFC so equivalent glyph sequences reach the model
// in one form.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")

	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	result := strings.Join(cleanedLines, "\n")

	return norm.NFC.String(strings.TrimSpace(result))
}
