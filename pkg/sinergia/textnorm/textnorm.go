package textnorm

import (
	"strings"
	"unicode"
)

// technicalSymbols are kept so tokens like "c++", "c#", "node.js" and "ci/cd"
// survive normalization.
const technicalSymbols = "+#.-/"

// Normalize lowercases text, replaces every rune outside the allowed set with a
// space, collapses whitespace runs and trims the result.
//
// Allowed runes: Latin-script letters (accented letters, ñ and ü included),
// decimal digits, whitespace and the technical symbols + # . - /
//
// Examples:
//   - Normalize("Node.JS, C++ & CI/CD!") -> "node.js c++ ci/cd"
//   - Normalize("  Comunicación\tEfectiva ") -> "comunicación efectiva"
//   - Normalize("") -> ""
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		if !keep(r) || unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

// keep reports whether r survives normalization (whitespace included; the
// caller collapses it).
func keep(r rune) bool {
	switch {
	case unicode.IsSpace(r):
		return true
	case unicode.IsDigit(r) && r < unicode.MaxASCII:
		return true
	case unicode.IsLetter(r) && unicode.Is(unicode.Latin, r):
		return true
	case strings.ContainsRune(technicalSymbols, r):
		return true
	}
	return false
}

// Words splits text on Unicode whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
