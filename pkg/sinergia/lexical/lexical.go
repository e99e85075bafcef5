package lexical

import (
	"iter"
	"strings"
)

// Tag marks how a word takes part in a diff.
type Tag string

const (
	Equal  Tag = "equal"  // present in both, in order
	Delete Tag = "delete" // present only in the first text
	Insert Tag = "insert" // present only in the second text
)

// Token is a tagged word of a diff.
type Token struct {
	Tag  Tag    `json:"tag"`
	Text string `json:"text"`
}

// Result bundles the character-level ratio with the word-level diff.
type Result struct {
	Ratio float64 `json:"ratio"`
	Diff  []Token `json:"diff"`
}

// Ratio returns the character-level similarity of a and b in [0, 1].
//
// The pair is evaluated in a canonical order (shorter text first, then
// lexicographic) so Ratio(a, b) == Ratio(b, a). Both empty -> 1.0,
// exactly one empty -> 0.0.
func Ratio(a, b string, opts ...Option) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	if len(rb) < len(ra) || (len(ra) == len(rb) && b < a) {
		ra, rb = rb, ra
	}
	return clamp(NewMatcher(ra, rb, opts...).Ratio())
}

// WordRatio is Ratio computed over whitespace-separated words instead of
// characters.
func WordRatio(a, b string, opts ...Option) float64 {
	wa, wb := strings.Fields(a), strings.Fields(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1.0
	}
	if len(wa) == 0 || len(wb) == 0 {
		return 0.0
	}
	if len(wb) < len(wa) || (len(wa) == len(wb) && strings.Join(wb, " ") < strings.Join(wa, " ")) {
		wa, wb = wb, wa
	}
	return clamp(NewMatcher(wa, wb, opts...).Ratio())
}

// Diff lazily yields the word-level change map from a to b. For every gap
// between matching blocks the words only in a come first (Delete), then the
// words only in b (Insert); block words are yielded as Equal.
func Diff(a, b []string, opts ...Option) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		if len(a) == 0 && len(b) == 0 {
			return
		}
		i, j := 0, 0
		for _, blk := range NewMatcher(a, b, opts...).MatchingBlocks() {
			for ; i < blk.A; i++ {
				if !yield(Token{Tag: Delete, Text: a[i]}) {
					return
				}
			}
			for ; j < blk.B; j++ {
				if !yield(Token{Tag: Insert, Text: b[j]}) {
					return
				}
			}
			for k := 0; k < blk.Size; k++ {
				if !yield(Token{Tag: Equal, Text: a[blk.A+k]}) {
					return
				}
			}
			i, j = blk.A+blk.Size, blk.B+blk.Size
		}
	}
}

// DiffWords splits a and b on whitespace and collects their diff.
func DiffWords(a, b string, opts ...Option) []Token {
	var out []Token
	for tok := range Diff(strings.Fields(a), strings.Fields(b), opts...) {
		out = append(out, tok)
	}
	return out
}

// Compare returns the character ratio and word diff of a and b.
func Compare(a, b string, opts ...Option) Result {
	return Result{
		Ratio: Ratio(a, b, opts...),
		Diff:  DiffWords(a, b, opts...),
	}
}

// Render formats a diff the way a line-oriented viewer shows it:
// "  " for equal, "- " for delete, "+ " for insert, joined by spaces.
func Render(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		switch tok.Tag {
		case Delete:
			parts[i] = "- " + tok.Text
		case Insert:
			parts[i] = "+ " + tok.Text
		default:
			parts[i] = "  " + tok.Text
		}
	}
	return strings.Join(parts, " ")
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
