// Package config loads sinergia settings and builds the engine components
// they describe.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cognicore/sinergia/internal/embedapi"
	"github.com/cognicore/sinergia/internal/minilm"
	"github.com/cognicore/sinergia/pkg/sinergia"
	"github.com/cognicore/sinergia/pkg/sinergia/report"
	"github.com/cognicore/sinergia/pkg/sinergia/semantic"
	"github.com/cognicore/sinergia/pkg/sinergia/skills"
)

// Loader turns a File into engine components
type Loader struct {
	File   File
	Logger *slog.Logger
}

// Components holds everything an Engine needs
type Components struct {
	Dictionary *skills.Dictionary
	Fragments  []string
	Thresholds report.Thresholds
	AutoJunk   bool
	Embedder   *semantic.Handle
	Cache      *semantic.Cache
}

// Load validates the file and constructs components. The embedding model is
// not loaded here; the returned handle loads it on first use.
func (l *Loader) Load() (*Components, error) {
	if err := l.File.Validate(); err != nil {
		return nil, err
	}
	comp := &Components{Fragments: l.File.Fragments, AutoJunk: l.File.AutoJunk}

	// Load dictionary
	if l.File.Dictionary != "" {
		dict, err := skills.LoadDictionary(l.File.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		comp.Dictionary = dict
	} else {
		comp.Dictionary = skills.DefaultDictionary()
	}

	thresholds, err := l.File.ThresholdsValue()
	if err != nil {
		return nil, err
	}
	comp.Thresholds = thresholds

	comp.Embedder = l.handle()
	comp.Cache = semantic.NewCache(l.File.Embedder.CacheSize)
	return comp, nil
}

// Options converts components into engine options. The resolved thresholds
// are pinned so zero cut-offs from the file survive engine defaulting.
func (c *Components) Options() sinergia.Options {
	return sinergia.Options{
		Dictionary: c.Dictionary,
		Fragments:  c.Fragments,
		Embedder:   c.Embedder,
		Thresholds: c.Thresholds,
		Overrides:  report.Exact(c.Thresholds),
		Cache:      c.Cache,
		AutoJunk:   c.AutoJunk,
	}
}

func (l *Loader) handle() *semantic.Handle {
	e := l.File.Embedder
	var opts []semantic.HandleOption
	if l.Logger != nil {
		opts = append(opts, semantic.WithLogger(l.Logger))
	}

	switch e.Backend {
	case BackendMiniLM:
		return semantic.NewHandle(minilm.ModelName, func(context.Context) (semantic.Embedder, error) {
			emb, err := minilm.New(minilm.Config{
				ModelPath:     e.ModelPath,
				TokenizerPath: e.TokenizerPath,
				LibraryPath:   e.LibraryPath,
				MaxLength:     e.MaxLength,
			})
			if err != nil {
				return nil, err
			}
			return emb, nil
		}, opts...)
	case BackendOllama, BackendOpenAI:
		name := e.Backend + ":" + e.Model
		return semantic.NewHandle(name, func(context.Context) (semantic.Embedder, error) {
			client := embedapi.New(embedapi.Dialect(e.Backend), e.Model, e.RequestsPerSecond)
			if e.BaseURL != "" {
				client.BaseURL = e.BaseURL
			}
			client.APIKey = e.APIKey
			if e.Timeout > 0 {
				client.HTTPClient = &http.Client{Timeout: e.Timeout}
			}
			return client, nil
		}, opts...)
	default:
		return semantic.NewHandle(sinergia.HashModel, func(context.Context) (semantic.Embedder, error) {
			return semantic.HashEmbedder{Dimensions: e.Dimensions}, nil
		}, opts...)
	}
}
