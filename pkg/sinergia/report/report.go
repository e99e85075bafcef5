// Package report assembles evolution and match reports from the lexical,
// semantic, keyword and gap components.
package report

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"sync"

	"github.com/cognicore/sinergia/pkg/sinergia/gap"
	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
	"github.com/cognicore/sinergia/pkg/sinergia/lexical"
	"github.com/cognicore/sinergia/pkg/sinergia/semantic"
	"github.com/cognicore/sinergia/pkg/sinergia/skills"
	"github.com/cognicore/sinergia/pkg/sinergia/textnorm"
	"github.com/oklog/ulid/v2"
)

// Evolution describes how a revised text departs from its original draft.
type Evolution struct {
	ID                string          `json:"id"`
	ChangePercent     float64         `json:"change_percent"`
	FidelityPercent   float64         `json:"fidelity_percent"`
	WordChangePercent float64         `json:"word_change_percent"`
	WordDelta         int             `json:"word_delta"`
	OriginalWords     int             `json:"original_words"`
	RevisedWords      int             `json:"revised_words"`
	Diff              []lexical.Token `json:"diff"`
	Influence         Influence       `json:"influence"`
}

// Match describes how well a résumé fits a job description.
type Match struct {
	ID                   string              `json:"id"`
	SemanticMatchPercent float64             `json:"semantic_match_percent"`
	CVSkills             skills.Set          `json:"cv_skills"`
	JobSkills            skills.Set          `json:"job_skills"`
	Matched              skills.Set          `json:"matched"`
	Missing              skills.Set          `json:"missing"`
	MissingByCategory    map[string][]string `json:"missing_by_category,omitempty"`
	CoveragePercent      float64             `json:"coverage_percent"`
	Alignment            Alignment           `json:"alignment"`
}

// Builder assembles reports. It is safe for concurrent use.
type Builder struct {
	extractor  *skills.Extractor
	matcher    *semantic.Matcher
	thresholds Thresholds
	lexOpts    []lexical.Option

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLexicalOptions sets the matcher options used by Evolution.
func WithLexicalOptions(opts ...lexical.Option) BuilderOption {
	return func(b *Builder) {
		b.lexOpts = append(b.lexOpts, opts...)
	}
}

// NewBuilder creates a report builder. A nil extractor uses the default
// dictionary. A nil matcher makes Match fail for non-empty inputs.
func NewBuilder(extractor *skills.Extractor, matcher *semantic.Matcher, thresholds Thresholds, opts ...BuilderOption) *Builder {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}
	b := &Builder{
		extractor:  extractor,
		matcher:    matcher,
		thresholds: thresholds,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Thresholds returns the cut-offs used for labels.
func (b *Builder) Thresholds() Thresholds {
	return b.thresholds
}

func (b *Builder) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// Evolution compares a draft with its revision. The ratio is computed over
// the raw texts; word counts and the diff use whitespace words.
func (b *Builder) Evolution(original, revised string) Evolution {
	ratio := lexical.Ratio(original, revised, b.lexOpts...)
	change := (1 - ratio) * 100

	origWords := textnorm.WordCount(original)
	revWords := textnorm.WordCount(revised)

	return Evolution{
		ID:                b.newID(),
		ChangePercent:     change,
		FidelityPercent:   ratio * 100,
		WordChangePercent: (1 - lexical.WordRatio(original, revised, b.lexOpts...)) * 100,
		WordDelta:         revWords - origWords,
		OriginalWords:     origWords,
		RevisedWords:      revWords,
		Diff:              lexical.DiffWords(original, revised, b.lexOpts...),
		Influence:         b.thresholds.ClassifyInfluence(change),
	}
}

// Match scores cv against job. Both texts are normalized before semantic
// scoring and keyword extraction.
func (b *Builder) Match(ctx context.Context, cv, job string) (Match, error) {
	cvClean := textnorm.Normalize(cv)
	jobClean := textnorm.Normalize(job)

	score, err := b.similarity(ctx, cvClean, jobClean)
	if err != nil {
		return Match{}, err
	}
	percent := round1(score * 100)

	cvSkills := b.extractor.Extract(cvClean)
	jobSkills := b.extractor.Extract(jobClean)
	res := gap.Analyze(jobSkills, cvSkills)

	var byCategory map[string][]string
	if res.Missing.Len() > 0 {
		byCategory = b.extractor.Categorize(res.Missing)
	}

	return Match{
		ID:                   b.newID(),
		SemanticMatchPercent: percent,
		CVSkills:             cvSkills,
		JobSkills:            jobSkills,
		Matched:              res.Matched,
		Missing:              res.Missing,
		MissingByCategory:    byCategory,
		CoveragePercent:      round1(res.Coverage()),
		Alignment:            b.thresholds.ClassifyAlignment(percent),
	}, nil
}

func (b *Builder) similarity(ctx context.Context, cv, job string) (float64, error) {
	if cv == "" || job == "" {
		return 0, nil
	}
	if b.matcher == nil {
		return 0, fmt.Errorf("semantic match: %w", internalerr.ErrEmbedderUnavailable)
	}
	score, err := b.matcher.Similarity(ctx, cv, job)
	if err != nil {
		return 0, fmt.Errorf("semantic match: %w", err)
	}
	return score, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
