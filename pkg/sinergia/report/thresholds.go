package report

import (
	"fmt"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
)

// Influence labels how strongly a revision departs from its draft.
type Influence string

const (
	InfluenceHigh     Influence = "high_ai_influence"
	InfluenceBalanced Influence = "balanced_collaboration"
)

// Alignment labels how well a résumé fits a job description.
type Alignment string

const (
	AlignmentHigh        Alignment = "highly_aligned"
	AlignmentCompetitive Alignment = "competitive"
	AlignmentLow         Alignment = "low_alignment"
)

// Thresholds are the percent cut-offs used to label reports. Every
// comparison is strictly greater-than.
type Thresholds struct {
	HighInfluence float64 `yaml:"high_influence" json:"high_influence"`
	HighlyAligned float64 `yaml:"highly_aligned" json:"highly_aligned"`
	Competitive   float64 `yaml:"competitive" json:"competitive"`
}

// DefaultThresholds returns the drafting-editor cut-offs (influence above 50%).
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighInfluence: 50,
		HighlyAligned: 75,
		Competitive:   50,
	}
}

// WithDefaults fills every zero field from DefaultThresholds.
func (t Thresholds) WithDefaults() Thresholds {
	def := DefaultThresholds()
	if t.HighInfluence == 0 {
		t.HighInfluence = def.HighInfluence
	}
	if t.HighlyAligned == 0 {
		t.HighlyAligned = def.HighlyAligned
	}
	if t.Competitive == 0 {
		t.Competitive = def.Competitive
	}
	return t
}

// Overrides replaces selected cut-offs. Nil fields keep the base value; a
// field set to zero is applied as zero.
type Overrides struct {
	HighInfluence *float64 `yaml:"high_influence" json:"high_influence,omitempty"`
	HighlyAligned *float64 `yaml:"highly_aligned" json:"highly_aligned,omitempty"`
	Competitive   *float64 `yaml:"competitive" json:"competitive,omitempty"`
}

// Apply returns base with the set fields of o replaced.
func (o Overrides) Apply(base Thresholds) Thresholds {
	if o.HighInfluence != nil {
		base.HighInfluence = *o.HighInfluence
	}
	if o.HighlyAligned != nil {
		base.HighlyAligned = *o.HighlyAligned
	}
	if o.Competitive != nil {
		base.Competitive = *o.Competitive
	}
	return base
}

// Exact returns overrides that pin every field of t.
func Exact(t Thresholds) Overrides {
	return Overrides{
		HighInfluence: &t.HighInfluence,
		HighlyAligned: &t.HighlyAligned,
		Competitive:   &t.Competitive,
	}
}

// UnifiedThresholds returns the combined-application cut-offs, which only
// warn about influence above 60%.
func UnifiedThresholds() Thresholds {
	t := DefaultThresholds()
	t.HighInfluence = 60
	return t
}

// Validate checks that every threshold is a percentage and that the
// alignment bands are ordered.
func (t Thresholds) Validate() error {
	for name, v := range map[string]float64{
		"high_influence": t.HighInfluence,
		"highly_aligned": t.HighlyAligned,
		"competitive":    t.Competitive,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("threshold %s=%v outside [0,100]: %w", name, v, internalerr.ErrInvalidConfig)
		}
	}
	if t.Competitive > t.HighlyAligned {
		return fmt.Errorf("competitive (%v) above highly_aligned (%v): %w",
			t.Competitive, t.HighlyAligned, internalerr.ErrInvalidConfig)
	}
	return nil
}

// ClassifyInfluence labels a change percentage.
func (t Thresholds) ClassifyInfluence(changePercent float64) Influence {
	if changePercent > t.HighInfluence {
		return InfluenceHigh
	}
	return InfluenceBalanced
}

// ClassifyAlignment labels a semantic match percentage.
func (t Thresholds) ClassifyAlignment(matchPercent float64) Alignment {
	switch {
	case matchPercent > t.HighlyAligned:
		return AlignmentHigh
	case matchPercent > t.Competitive:
		return AlignmentCompetitive
	default:
		return AlignmentLow
	}
}
