package util

import (
	"strings"
	"unicode"
)

// NormalizeTitle reduces a coursework title or vocabulary file name to its
// alphanumeric characters, lower-cased. Both sides of a vocabulary lookup go
// through this before comparison.
func NormalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
