// Package words holds the word-level text helpers shared by the suggestion
// engine and the completion providers.
//
// Comparisons are case-insensitive under Unicode simple case folding.
package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s. A Caser holds state, so each call
// gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// HasPrefixFold reports whether s begins with prefix under case folding.
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(Fold(s), Fold(prefix))
}

// TrimPrefixFold removes prefix from s when s begins with it under case
// folding. The returned suffix keeps the casing of s.
func TrimPrefixFold(s, prefix string) (string, bool) {
	if prefix == "" {
		return s, true
	}
	rs := []rune(s)
	n := len([]rune(prefix))
	if n > len(rs) || !EqualFold(string(rs[:n]), prefix) {
		return s, false
	}
	return string(rs[n:]), true
}

// Split breaks text into words separated by runs of whitespace.
func Split(text string) []string {
	return strings.Fields(text)
}

// Join joins words with single spaces.
func Join(ws []string) string {
	return strings.Join(ws, " ")
}

// Trailing returns the run of non-space runes that ends text, or "" when
// text ends in whitespace.
func Trailing(text string) string {
	rs := []rune(text)
	i := len(rs)
	for i > 0 && !unicode.IsSpace(rs[i-1]) {
		i--
	}
	return string(rs[i:])
}

// Last returns the last whitespace-separated word of text.
func Last(text string) string {
	ws := Split(text)
	if len(ws) == 0 {
		return ""
	}
	return ws[len(ws)-1]
}

// EndsWithSpace reports whether the last rune of text is whitespace.
func EndsWithSpace(text string) bool {
	if text == "" {
		return false
	}
	rs := []rune(text)
	return unicode.IsSpace(rs[len(rs)-1])
}

// StartsWithSpace reports whether the first rune of text is whitespace.
func StartsWithSpace(text string) bool {
	for _, r := range text {
		return unicode.IsSpace(r)
	}
	return false
}
