package ingest

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// cleanCell prepares one extracted cell value: valid UTF-8, control
// characters gone, inner whitespace collapsed to single spaces, ends
// trimmed. The semantic content stays verbatim, coercion is the
// normalizer's job.
func cleanCell(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = reWhitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanText is cleanCell for multi-line values (the HTML detail-block
// text): line structure survives, control noise does not.
func cleanText(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
