// Package lexical measures character and word level similarity between texts
// with a longest-matching-block algorithm and produces word diffs.
package lexical

import "sort"

// Match is a contiguous block where a[A:A+Size] == b[B:B+Size].
type Match struct {
	A    int
	B    int
	Size int
}

// Option configures a Matcher.
type Option func(*options)

type options struct {
	autoJunk bool
}

// WithAutoJunk toggles the popular-element heuristic (off by default). When
// enabled and b has at least autoJunkMinLen elements, elements occurring more
// than len(b)/100+1 times are not used as match seeds; matches can still be
// extended across them. On long natural-language texts spaces and vowels
// become popular and ratios of near-identical texts collapse toward 0.
func WithAutoJunk(enabled bool) Option {
	return func(o *options) { o.autoJunk = enabled }
}

const autoJunkMinLen = 200

// Matcher aligns two sequences by repeatedly taking the longest matching block
// and recursing into the gaps on both sides of it.
//
// The same algorithm serves character-level ratios and word-level diffs, so
// both views of a pair stay consistent.
type Matcher[T comparable] struct {
	a, b    []T
	b2j     map[T][]int
	popular map[T]struct{}
	blocks  []Match
}

// NewMatcher indexes b and prepares to align a against it.
func NewMatcher[T comparable](a, b []T, opts ...Option) *Matcher[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Matcher[T]{
		a:       a,
		b:       b,
		b2j:     make(map[T][]int),
		popular: make(map[T]struct{}),
	}
	for j, elt := range b {
		m.b2j[elt] = append(m.b2j[elt], j)
	}

	if o.autoJunk && len(b) >= autoJunkMinLen {
		limit := len(b)/100 + 1
		for elt, idxs := range m.b2j {
			if len(idxs) > limit {
				m.popular[elt] = struct{}{}
			}
		}
		for elt := range m.popular {
			delete(m.b2j, elt)
		}
	}

	return m
}

// LongestMatch finds the longest block with a[alo:ahi] and b[blo:bhi].
// Ties go to the block starting earliest in a, then earliest in b.
// Returns a zero-size Match at (alo, blo) when nothing matches.
func (m *Matcher[T]) LongestMatch(alo, ahi, blo, bhi int) Match {
	besti, bestj, bestSize := alo, blo, 0

	// j2len[j] = length of the longest match ending with a[i-1] and b[j]
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}

	// Popular elements were never seeds; grow the block across equal
	// neighbours on both sides.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestSize = besti-1, bestj-1, bestSize+1
	}
	for besti+bestSize < ahi && bestj+bestSize < bhi && m.a[besti+bestSize] == m.b[bestj+bestSize] {
		bestSize++
	}

	return Match{A: besti, B: bestj, Size: bestSize}
}

// MatchingBlocks returns the non-adjacent matching blocks in increasing order
// of A and B, terminated by the sentinel {len(a), len(b), 0}.
func (m *Matcher[T]) MatchingBlocks() []Match {
	if m.blocks != nil {
		return m.blocks
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var found []Match

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.LongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}
		found = append(found, x)
		if s.alo < x.A && s.blo < x.B {
			queue = append(queue, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			queue = append(queue, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].A != found[j].A {
			return found[i].A < found[j].A
		}
		if found[i].B != found[j].B {
			return found[i].B < found[j].B
		}
		return found[i].Size < found[j].Size
	})

	// Merge blocks that touch end-to-start in both sequences.
	blocks := make([]Match, 0, len(found)+1)
	cur := Match{}
	for _, x := range found {
		if cur.A+cur.Size == x.A && cur.B+cur.Size == x.B {
			cur.Size += x.Size
			continue
		}
		if cur.Size > 0 {
			blocks = append(blocks, cur)
		}
		cur = x
	}
	if cur.Size > 0 {
		blocks = append(blocks, cur)
	}
	blocks = append(blocks, Match{A: len(m.a), B: len(m.b), Size: 0})

	m.blocks = blocks
	return blocks
}

// Matched returns the total number of elements covered by matching blocks.
func (m *Matcher[T]) Matched() int {
	total := 0
	for _, blk := range m.MatchingBlocks() {
		total += blk.Size
	}
	return total
}

// Ratio returns 2*M/T where M is the matched element count and T the combined
// length of both sequences. Two empty sequences are identical (1.0).
func (m *Matcher[T]) Ratio() float64 {
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(m.Matched()) / float64(total)
}

// OpKind names an edit operation.
type OpKind string

const (
	OpEqual   OpKind = "equal"
	OpReplace OpKind = "replace"
	OpDelete  OpKind = "delete"
	OpInsert  OpKind = "insert"
)

// Opcode describes how to turn a[I1:I2] into b[J1:J2].
type Opcode struct {
	Kind   OpKind
	I1, I2 int
	J1, J2 int
}

// Opcodes converts the matching blocks into a list of edit operations
// covering both sequences from start to end.
func (m *Matcher[T]) Opcodes() []Opcode {
	var ops []Opcode
	i, j := 0, 0
	for _, blk := range m.MatchingBlocks() {
		var kind OpKind
		switch {
		case i < blk.A && j < blk.B:
			kind = OpReplace
		case i < blk.A:
			kind = OpDelete
		case j < blk.B:
			kind = OpInsert
		}
		if kind != "" {
			ops = append(ops, Opcode{Kind: kind, I1: i, I2: blk.A, J1: j, J2: blk.B})
		}
		i, j = blk.A+blk.Size, blk.B+blk.Size
		if blk.Size > 0 {
			ops = append(ops, Opcode{Kind: OpEqual, I1: blk.A, I2: i, J1: blk.B, J2: j})
		}
	}
	return ops
}
