package semantic

import (
	"context"
	"strings"
)

// Matcher scores the semantic similarity of two texts as the cosine of their
// embeddings.
type Matcher struct {
	handle *Handle
	cache  *Cache
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithCache memoizes embeddings in cache.
func WithCache(cache *Cache) MatcherOption {
	return func(m *Matcher) {
		m.cache = cache
	}
}

// NewMatcher returns a matcher backed by handle.
func NewMatcher(handle *Handle, opts ...MatcherOption) *Matcher {
	m := &Matcher{handle: handle}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Similarity returns cos(embed(a), embed(b)). If either text is blank the
// score is 0 and the model is not loaded.
func (m *Matcher) Similarity(ctx context.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}
	vecs, err := m.EmbedAll(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	return Cosine(vecs[0], vecs[1]), nil
}

// EmbedAll embeds texts, consulting the cache first and sending only the
// misses to the model in a single batch.
func (m *Matcher) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	model := m.handle.Name()
	out := make([][]float32, len(texts))

	var (
		pending []string
		slots   []int
	)
	for i, text := range texts {
		if vec, ok := m.cache.Get(model, text); ok {
			out[i] = vec
			continue
		}
		pending = append(pending, text)
		slots = append(slots, i)
	}
	if len(pending) == 0 {
		return out, nil
	}

	vecs, err := m.handle.Embed(ctx, pending)
	if err != nil {
		return nil, err
	}
	for j, vec := range vecs {
		m.cache.Add(model, pending[j], vec)
		out[slots[j]] = vec
	}
	return out, nil
}
