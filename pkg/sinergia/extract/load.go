package extract

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// Loader fetches documents from any location afs understands (local paths,
// file://, mem://, cloud storage schemes) and extracts their text.
type Loader struct {
	fs afs.Service
}

// NewLoader creates a Loader backed by the default afs service.
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Load downloads location and extracts its text.
func (l *Loader) Load(ctx context.Context, location string) (string, error) {
	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", location, err)
	}
	return Text(location, data)
}

// Load downloads location with a fresh Loader and extracts its text.
func Load(ctx context.Context, location string) (string, error) {
	return NewLoader().Load(ctx, location)
}
