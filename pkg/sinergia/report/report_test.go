package report

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
	"github.com/cognicore/sinergia/pkg/sinergia/lexical"
	"github.com/cognicore/sinergia/pkg/sinergia/semantic"
	"github.com/cognicore/sinergia/pkg/sinergia/skills"
)

const eps = 1e-9

func hashMatcher() *semantic.Matcher {
	return semantic.NewMatcher(semantic.StaticHandle("hash", semantic.HashEmbedder{}))
}

func fixedMatcher(score float32) *semantic.Matcher {
	// Two unit vectors whose cosine is score.
	emb := semantic.EmbedderFunc(func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			if i%2 == 0 {
				out[i] = []float32{1, 0}
			} else {
				out[i] = []float32{score, float32(math.Sqrt(float64(1 - score*score)))}
			}
		}
		return out, nil
	})
	return semantic.NewMatcher(semantic.StaticHandle("fixed", emb))
}

func TestEvolutionExample(t *testing.T) {
	b := NewBuilder(nil, nil, DefaultThresholds())
	ev := b.Evolution(
		"Manejé un equipo de 3 personas",
		"Lideré un equipo de 5 profesionales altamente calificados",
	)

	if ev.WordDelta != 2 {
		t.Errorf("WordDelta = %d, want 2", ev.WordDelta)
	}
	if ev.OriginalWords != 6 || ev.RevisedWords != 8 {
		t.Errorf("word counts = %d/%d, want 6/8", ev.OriginalWords, ev.RevisedWords)
	}
	if math.Abs(ev.ChangePercent-44.827586206896555) > 1e-6 {
		t.Errorf("ChangePercent = %v, want ~44.83", ev.ChangePercent)
	}
	if math.Abs(ev.ChangePercent+ev.FidelityPercent-100) > eps {
		t.Errorf("change + fidelity = %v, want 100", ev.ChangePercent+ev.FidelityPercent)
	}
	if math.Abs(ev.WordChangePercent-57.14285714285714) > 1e-6 {
		t.Errorf("WordChangePercent = %v, want ~57.14", ev.WordChangePercent)
	}
	if ev.Influence != InfluenceBalanced {
		t.Errorf("Influence = %q, want %q", ev.Influence, InfluenceBalanced)
	}
	if len(ev.Diff) != 11 {
		t.Errorf("Diff has %d tokens, want 11", len(ev.Diff))
	}
	if ev.ID == "" {
		t.Error("missing report ID")
	}
}

func TestEvolutionIdentical(t *testing.T) {
	b := NewBuilder(nil, nil, DefaultThresholds())
	for _, text := range []string{"", "same text here"} {
		ev := b.Evolution(text, text)
		if ev.ChangePercent != 0 || ev.FidelityPercent != 100 {
			t.Errorf("Evolution(%q, same): change=%v fidelity=%v", text, ev.ChangePercent, ev.FidelityPercent)
		}
		if ev.WordDelta != 0 {
			t.Errorf("Evolution(%q, same): WordDelta=%d", text, ev.WordDelta)
		}
	}
}

func TestEvolutionHighInfluence(t *testing.T) {
	b := NewBuilder(nil, nil, DefaultThresholds())
	ev := b.Evolution("abc", "xyz")
	if ev.ChangePercent != 100 {
		t.Fatalf("ChangePercent = %v, want 100", ev.ChangePercent)
	}
	if ev.Influence != InfluenceHigh {
		t.Errorf("Influence = %q, want %q", ev.Influence, InfluenceHigh)
	}
}

func TestUniqueIDs(t *testing.T) {
	b := NewBuilder(nil, nil, DefaultThresholds())
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := b.Evolution("a", "b").ID
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != 50 {
		t.Errorf("got %d distinct IDs, want 50", len(seen))
	}
}

func TestMatchGap(t *testing.T) {
	b := NewBuilder(nil, hashMatcher(), DefaultThresholds())
	m, err := b.Match(context.Background(), "Python SQL Docker", "python java docker kubernetes")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if got := m.Matched.Sorted(); !reflect.DeepEqual(got, []string{"docker", "python"}) {
		t.Errorf("Matched = %v", got)
	}
	if got := m.Missing.Sorted(); !reflect.DeepEqual(got, []string{"java", "kubernetes"}) {
		t.Errorf("Missing = %v", got)
	}
	if got := m.MissingByCategory["desarrollo"]; !reflect.DeepEqual(got, []string{"java", "kubernetes"}) {
		t.Errorf("MissingByCategory[desarrollo] = %v", got)
	}
	if m.CoveragePercent != 50 {
		t.Errorf("CoveragePercent = %v, want 50", m.CoveragePercent)
	}
	if m.SemanticMatchPercent <= 0 || m.SemanticMatchPercent >= 100 {
		t.Errorf("SemanticMatchPercent = %v, want in (0,100)", m.SemanticMatchPercent)
	}
}

func TestMatchEmptyCV(t *testing.T) {
	// No matcher: empty input must not need one.
	b := NewBuilder(nil, nil, DefaultThresholds())
	m, err := b.Match(context.Background(), "", "python sql docker")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if m.SemanticMatchPercent != 0 {
		t.Errorf("SemanticMatchPercent = %v, want 0", m.SemanticMatchPercent)
	}
	if !m.Missing.Equal(m.JobSkills) {
		t.Errorf("Missing = %v, want job skills %v", m.Missing.Sorted(), m.JobSkills.Sorted())
	}
	if m.Matched.Len() != 0 {
		t.Errorf("Matched = %v, want empty", m.Matched.Sorted())
	}
	if m.Alignment != AlignmentLow {
		t.Errorf("Alignment = %q, want %q", m.Alignment, AlignmentLow)
	}
}

func TestMatchAlignmentBands(t *testing.T) {
	tests := []struct {
		score float32
		want  Alignment
	}{
		{0.9, AlignmentHigh},
		{0.6, AlignmentCompetitive},
		{0.3, AlignmentLow},
	}
	for _, tt := range tests {
		b := NewBuilder(nil, fixedMatcher(tt.score), DefaultThresholds())
		m, err := b.Match(context.Background(), "cv text", "job text")
		if err != nil {
			t.Fatalf("Match: %v", err)
		}
		if m.Alignment != tt.want {
			t.Errorf("score %v: Alignment = %q (%.1f%%), want %q", tt.score, m.Alignment, m.SemanticMatchPercent, tt.want)
		}
		if want := round1(float64(tt.score) * 100); math.Abs(m.SemanticMatchPercent-want) > 0.11 {
			t.Errorf("SemanticMatchPercent = %v, want ~%v", m.SemanticMatchPercent, want)
		}
	}
}

func TestMatchWithoutMatcher(t *testing.T) {
	b := NewBuilder(nil, nil, DefaultThresholds())
	_, err := b.Match(context.Background(), "cv", "job")
	if !errors.Is(err, internalerr.ErrEmbedderUnavailable) {
		t.Errorf("err = %v, want ErrEmbedderUnavailable", err)
	}
}

func TestMatchCustomExtractor(t *testing.T) {
	ex := skills.NewExtractor(skills.NewDictionary(map[string][]string{"lang": {"go", "rust"}}), skills.WithFragments())
	b := NewBuilder(ex, hashMatcher(), DefaultThresholds())
	m, err := b.Match(context.Background(), "go", "go rust")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got := m.MissingByCategory["lang"]; !reflect.DeepEqual(got, []string{"rust"}) {
		t.Errorf("MissingByCategory = %v", m.MissingByCategory)
	}
}

func TestClassify(t *testing.T) {
	def := DefaultThresholds()
	uni := UnifiedThresholds()

	if def.ClassifyInfluence(50) != InfluenceBalanced || def.ClassifyInfluence(50.1) != InfluenceHigh {
		t.Error("default influence boundary should be strictly above 50")
	}
	if uni.ClassifyInfluence(55) != InfluenceBalanced || uni.ClassifyInfluence(60.1) != InfluenceHigh {
		t.Error("unified influence boundary should be strictly above 60")
	}

	tests := []struct {
		pct  float64
		want Alignment
	}{
		{100, AlignmentHigh},
		{75.1, AlignmentHigh},
		{75, AlignmentCompetitive},
		{50.1, AlignmentCompetitive},
		{50, AlignmentLow},
		{0, AlignmentLow},
	}
	for _, tt := range tests {
		if got := def.ClassifyAlignment(tt.pct); got != tt.want {
			t.Errorf("ClassifyAlignment(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Errorf("default thresholds invalid: %v", err)
	}
	bad := []Thresholds{
		{HighInfluence: -1, HighlyAligned: 75, Competitive: 50},
		{HighInfluence: 50, HighlyAligned: 120, Competitive: 50},
		{HighInfluence: 50, HighlyAligned: 40, Competitive: 50},
	}
	for _, th := range bad {
		if err := th.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidConfig", th, err)
		}
	}
}

func TestThresholdsWithDefaults(t *testing.T) {
	got := Thresholds{HighInfluence: 60}.WithDefaults()
	if got != UnifiedThresholds() {
		t.Errorf("WithDefaults() = %+v, want %+v", got, UnifiedThresholds())
	}
	if got := (Thresholds{}).WithDefaults(); got != DefaultThresholds() {
		t.Errorf("zero WithDefaults() = %+v, want defaults", got)
	}
}

func TestOverridesApply(t *testing.T) {
	zero, seventy := 0.0, 70.0
	got := Overrides{Competitive: &zero, HighlyAligned: &seventy}.Apply(DefaultThresholds())
	want := Thresholds{HighInfluence: 50, HighlyAligned: 70, Competitive: 0}
	if got != want {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}
	if got := Exact(want).Apply(DefaultThresholds()); got != want {
		t.Errorf("Exact(%+v).Apply() = %+v", want, got)
	}
	if got := (Overrides{}).Apply(want); got != want {
		t.Errorf("empty Apply() = %+v, want %+v", got, want)
	}
}

func TestEvolutionLexicalOptions(t *testing.T) {
	orig := strings.TrimSpace(strings.Repeat("the quick brown fox jumps over the lazy dog ", 8))
	rev := strings.ReplaceAll(strings.ReplaceAll(orig, "lazy", "sleepy"), "quick", "fast")

	plain := NewBuilder(nil, nil, DefaultThresholds()).Evolution(orig, rev)
	junked := NewBuilder(nil, nil, DefaultThresholds(), WithLexicalOptions(lexical.WithAutoJunk(true))).Evolution(orig, rev)

	if math.Abs(plain.FidelityPercent-83.09859154929577) > 1e-6 {
		t.Errorf("FidelityPercent = %v", plain.FidelityPercent)
	}
	if math.Abs(junked.FidelityPercent-1.1267605633802818) > 1e-6 {
		t.Errorf("auto-junk FidelityPercent = %v", junked.FidelityPercent)
	}
}
