package semantic

import (
	"context"
	"strings"
)

// DefaultHashDimensions is the vector size of a zero-valued HashEmbedder.
const DefaultHashDimensions = 256

// HashEmbedder is a dependency-free Embedder based on feature hashing: each
// lowercased whitespace token is hashed into one of Dimensions buckets with a
// hash-derived sign, and the result is L2-normalized. It captures vocabulary
// overlap, not meaning, and serves as an offline fallback model.
type HashEmbedder struct {
	Dimensions int
}

// Embed implements Embedder. Texts without tokens map to the zero vector.
func (e HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	dims := e.Dimensions
	if dims <= 0 {
		dims = DefaultHashDimensions
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec := make([]float32, dims)
		for _, tok := range strings.Fields(strings.ToLower(text)) {
			h := hash64([]byte(tok))
			bucket := int(h % uint64(dims))
			if h>>63 == 1 {
				vec[bucket]--
			} else {
				vec[bucket]++
			}
		}
		out[i] = Normalize(vec)
	}
	return out, nil
}
