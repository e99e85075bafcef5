package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnsupportedFormat   = errors.New("unsupported document format")
	ErrEmbedderUnavailable = errors.New("embedder unavailable")
	ErrEmptyEmbedding      = errors.New("empty embedding")
	ErrNotEnabled          = errors.New("not enabled in this build")
)
