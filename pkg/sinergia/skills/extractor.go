package skills

import (
	"regexp"
	"strings"
)

// candidatePattern scans for technical-looking tokens: 2 to 15 runes from
// lowercase ASCII letters, digits and + # . / -
var candidatePattern = regexp.MustCompile(`[a-z0-9+#./-]{2,15}`)

// DefaultFragments flag a candidate as technology-related.
var DefaultFragments = []string{"js", "ai", "ml", "net", "io"}

// PatternCategory groups keywords found only by the candidate scan.
const PatternCategory = "pattern"

// minCandidateLen is the exclusive lower bound on pattern candidates.
const minCandidateLen = 2

// Extractor detects skill keywords in text by dictionary lookup plus a
// pattern-based candidate scan.
type Extractor struct {
	dict      *Dictionary
	fragments []string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithFragments replaces the technology-indicative fragments used by the
// candidate scan. No fragments disables the scan.
func WithFragments(fragments ...string) ExtractorOption {
	return func(e *Extractor) {
		e.fragments = append([]string(nil), fragments...)
	}
}

// NewExtractor creates an extractor over dict. A nil dict means the default
// dictionary.
func NewExtractor(dict *Dictionary, opts ...ExtractorOption) *Extractor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	e := &Extractor{
		dict:      dict,
		fragments: append([]string(nil), DefaultFragments...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dictionary returns the dictionary backing the extractor.
func (e *Extractor) Dictionary() *Dictionary {
	return e.dict
}

// Extract returns the union of dictionary hits and pattern candidates found
// in text. Text should already be normalized; it is lowercased again here.
//
// A dictionary term matches when " term " occurs in " text ". Multi-word
// terms use the same padded substring test, so a term followed by
// punctuation kept by normalization (e.g. "aws.") is not found.
func (e *Extractor) Extract(text string) Set {
	found := make(Set)
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return found
	}

	padded := " " + text + " "
	for _, term := range e.dict.terms {
		if strings.Contains(padded, " "+term+" ") {
			found.Add(term)
		}
	}

	if len(e.fragments) == 0 {
		return found
	}
	for _, cand := range candidatePattern.FindAllString(text, -1) {
		if len(cand) <= minCandidateLen {
			continue
		}
		if e.isTechnical(cand) {
			found.Add(cand)
		}
	}

	return found
}

func (e *Extractor) isTechnical(candidate string) bool {
	for _, frag := range e.fragments {
		if strings.Contains(candidate, frag) {
			return true
		}
	}
	return false
}

// Categorize groups the members of set by dictionary category. Members that
// are not dictionary terms go under PatternCategory. Terms listed in several
// categories appear in each of them. Groups are sorted.
func (e *Extractor) Categorize(set Set) map[string][]string {
	groups := make(map[string][]string)
	for _, item := range set.Sorted() {
		cats := e.dict.index[item]
		if len(cats) == 0 {
			groups[PatternCategory] = append(groups[PatternCategory], item)
			continue
		}
		for _, cat := range cats {
			groups[cat] = append(groups[cat], item)
		}
	}
	return groups
}
