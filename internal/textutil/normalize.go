// Package textutil normalizes extracted text before it enters reports.
package textutil

import (
	"regexp"
	"strings"
)

// disallowed matches every character outside the allow-list of word
// characters, whitespace and common punctuation. Word characters are the
// Unicode letter, mark and number classes, so Devanagari and accented text
// from regional feeds survives intact. Matches are deleted, not escaped; the
// cleanup is intentionally lossy.
var disallowed = regexp.MustCompile("[^\\p{L}\\p{M}\\p{N}_\\s\\-.,!?;:()\\[\\]\"'/@#$%&*+=<>{}|\\\\`~]")

// whitespace matches any run of whitespace, newlines and tabs included.
var whitespace = regexp.MustCompile(`\s+`)

// Normalize strips characters outside the allow-list and collapses
// whitespace runs to a single space. It is idempotent and never fails;
// empty input returns an empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := disallowed.ReplaceAllString(raw, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
