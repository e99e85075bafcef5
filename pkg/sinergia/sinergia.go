// Package sinergia compares pairs of texts: a draft against its revision, and
// a résumé against a job description.
package sinergia

import (
	"context"

	"github.com/cognicore/sinergia/pkg/sinergia/lexical"
	"github.com/cognicore/sinergia/pkg/sinergia/report"
	"github.com/cognicore/sinergia/pkg/sinergia/semantic"
	"github.com/cognicore/sinergia/pkg/sinergia/skills"
	"github.com/cognicore/sinergia/pkg/sinergia/textnorm"
)

// HashModel names the built-in feature-hashing embedder used when no model
// is configured.
const HashModel = "hash"

// Engine is the main comparison facade
type Engine struct {
	extractor *skills.Extractor
	handle    *semantic.Handle
	builder   *report.Builder
}

// Options configures an Engine. Zero fields fall back to defaults: the
// embedded skill dictionary, the hash embedder and DefaultThresholds. Each
// zero threshold is defaulted on its own, so setting only HighInfluence keeps
// the default alignment bands.
type Options struct {
	Dictionary *skills.Dictionary
	// Fragments overrides the technology fragments of the candidate scan
	// when non-nil. An empty, non-nil slice disables the scan.
	Fragments  []string
	Embedder   *semantic.Handle
	Thresholds report.Thresholds
	// Overrides is applied after defaulting; use it for explicit zero
	// cut-offs.
	Overrides  report.Overrides
	Cache      *semantic.Cache
	// AutoJunk enables the popular-element heuristic for draft comparison.
	AutoJunk   bool
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	var exOpts []skills.ExtractorOption
	if opts.Fragments != nil {
		exOpts = append(exOpts, skills.WithFragments(opts.Fragments...))
	}
	extractor := skills.NewExtractor(opts.Dictionary, exOpts...)

	handle := opts.Embedder
	if handle == nil {
		handle = semantic.StaticHandle(HashModel, semantic.HashEmbedder{})
	}

	thresholds := opts.Overrides.Apply(opts.Thresholds.WithDefaults())

	var builderOpts []report.BuilderOption
	if opts.AutoJunk {
		builderOpts = append(builderOpts, report.WithLexicalOptions(lexical.WithAutoJunk(true)))
	}

	matcher := semantic.NewMatcher(handle, semantic.WithCache(opts.Cache))
	return &Engine{
		extractor: extractor,
		handle:    handle,
		builder:   report.NewBuilder(extractor, matcher, thresholds, builderOpts...),
	}
}

// Close releases the embedding model
func (e *Engine) Close() error {
	return e.handle.Close()
}

// Thresholds returns the labeling cut-offs in use
func (e *Engine) Thresholds() report.Thresholds {
	return e.builder.Thresholds()
}

// CompareDrafts measures how much revised departs from original
func (e *Engine) CompareDrafts(original, revised string) report.Evolution {
	return e.builder.Evolution(original, revised)
}

// MatchCandidate scores a résumé against a job description
func (e *Engine) MatchCandidate(ctx context.Context, cv, job string) (report.Match, error) {
	return e.builder.Match(ctx, cv, job)
}

// ExtractSkills normalizes text and returns the skill keywords it mentions
func (e *Engine) ExtractSkills(text string) skills.Set {
	return e.extractor.Extract(textnorm.Normalize(text))
}

// Categorize groups skills by dictionary category
func (e *Engine) Categorize(set skills.Set) map[string][]string {
	return e.extractor.Categorize(set)
}
