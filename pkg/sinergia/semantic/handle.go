package semantic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
)

// Factory constructs the embedding model. It is expensive (weights loaded from
// disk, remote clients dialed) and is run at most once per Handle.
type Factory func(ctx context.Context) (Embedder, error)

// Handle is a lazily initialized, process-wide embedding model.
//
// The first call to Get runs the factory; every later call, from any
// goroutine, returns the same embedder or the same error. After
// initialization Get takes no lock.
type Handle struct {
	name    string
	factory Factory
	logger  *slog.Logger

	once sync.Once
	emb  Embedder
	err  error
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithLogger sets the logger used to report model initialization.
func WithLogger(logger *slog.Logger) HandleOption {
	return func(h *Handle) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandle wraps factory. name identifies the model (it is part of embedding
// cache keys).
func NewHandle(name string, factory Factory, opts ...HandleOption) *Handle {
	h := &Handle{
		name:    name,
		factory: factory,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StaticHandle wraps an already constructed embedder.
func StaticHandle(name string, emb Embedder) *Handle {
	return NewHandle(name, func(context.Context) (Embedder, error) { return emb, nil })
}

// Name returns the model name.
func (h *Handle) Name() string {
	return h.name
}

// Get returns the embedder, constructing it on first use. The factory runs
// detached from ctx cancellation so an abandoned first request does not poison
// the handle for the rest of the process.
func (h *Handle) Get(ctx context.Context) (Embedder, error) {
	h.once.Do(func() {
		if h.factory == nil {
			h.err = fmt.Errorf("model %q has no factory: %w", h.name, internalerr.ErrEmbedderUnavailable)
			return
		}
		start := time.Now()
		emb, err := h.factory(context.WithoutCancel(ctx))
		if err != nil {
			h.err = fmt.Errorf("load model %q: %w", h.name, err)
			h.logger.Error("embedding model failed to load",
				slog.String("model", h.name),
				slog.Any("error", err),
			)
			return
		}
		if emb == nil {
			h.err = fmt.Errorf("load model %q: %w", h.name, internalerr.ErrEmbedderUnavailable)
			return
		}
		h.emb = emb
		h.logger.Info("embedding model loaded",
			slog.String("model", h.name),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
	return h.emb, h.err
}

// Embed embeds texts with the lazily loaded model.
func (h *Handle) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	emb, err := h.Get(ctx)
	if err != nil {
		return nil, err
	}
	vecs, err := emb.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("model %q returned %d vectors for %d texts", h.name, len(vecs), len(texts))
	}
	return vecs, nil
}

// Close releases the model if it was loaded and implements io.Closer. Closing
// a handle that was never used does not construct the model.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.err = fmt.Errorf("model %q: handle closed: %w", h.name, internalerr.ErrEmbedderUnavailable)
	})
	if c, ok := h.emb.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
