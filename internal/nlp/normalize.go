package nlp

import "strings"

// Normalize maps raw user text to the canonical lookup key:
// lowercased with leading/trailing whitespace removed.
//
// Internal whitespace and punctuation are kept as-is. Lookups are
// exact-match, so "how are you" and "how  are you" stay distinct keys.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
