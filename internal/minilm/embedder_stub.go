//go:build !minilm

package minilm

import (
	"context"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
)

// Embedder is a stub when built without the minilm tag.
type Embedder struct{}

// New returns ErrNotEnabled unless built with -tags minilm.
func New(_ Config) (*Embedder, error) { return nil, internalerr.ErrNotEnabled }

func (e *Embedder) Embed(_ context.Context, _ []string) ([][]float32, error) {
	return nil, internalerr.ErrNotEnabled
}
func (e *Embedder) Dimensions() int { return 0 }
func (e *Embedder) Close() error    { return nil }
