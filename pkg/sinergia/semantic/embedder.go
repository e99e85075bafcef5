// Package semantic scores texts by the cosine similarity of their embeddings.
package semantic

import "context"

// Embedder maps texts to fixed-dimension dense vectors. Implementations are
// treated as pretrained, deterministic functions and must be safe for
// concurrent use once constructed.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, texts []string) ([][]float32, error)

// Embed calls f.
func (f EmbedderFunc) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}
