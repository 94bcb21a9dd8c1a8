// Package textnorm folds free text into a canonical form used for case and
// accent insensitive comparisons of product names, codes and categories.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes s, drops combining marks and recomposes the rest.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases s, removes accents and collapses whitespace runs into a
// single space. Leading and trailing whitespace is trimmed.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(stripAccents(s))), " ")
}

// Compact is Normalize with every whitespace character removed. Product codes
// are compared in this form so that "abc 123" matches "ABC123".
func Compact(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(stripAccents(s))), "")
}

// Tokens splits the normalized form of s into keywords.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// ContainsAll reports whether every token appears in haystack.
func ContainsAll(haystack string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}
