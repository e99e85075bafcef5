package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cognicore/sinergia/pkg/sinergia/lexical"
	"github.com/cognicore/sinergia/pkg/sinergia/report"
)

func renderEvolution(out io.Writer, ev report.Evolution, th report.Thresholds) {
	fmt.Fprintf(out, "Report %s\n", ev.ID)
	fmt.Fprintf(out, "  Transformation:    %.1f%%\n", ev.ChangePercent)
	fmt.Fprintf(out, "  Word changes:      %.1f%%\n", ev.WordChangePercent)
	fmt.Fprintf(out, "  Word difference:   %+d (%d -> %d)\n", ev.WordDelta, ev.OriginalWords, ev.RevisedWords)
	fmt.Fprintf(out, "  Original fidelity: %.1f%%\n", ev.FidelityPercent)
	fmt.Fprintln(out)

	switch ev.Influence {
	case report.InfluenceHigh:
		fmt.Fprintf(out, "High AI influence: more than %.0f%% of the text changed. Check that it still says what you meant.\n", th.HighInfluence)
	default:
		fmt.Fprintln(out, "Balanced collaboration: your voice is preserved with improvements.")
	}

	if len(ev.Diff) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Changes:")
		fmt.Fprintln(out, lexical.Render(ev.Diff))
	}
}

func renderMatch(out io.Writer, m report.Match) {
	fmt.Fprintf(out, "Report %s\n", m.ID)
	fmt.Fprintf(out, "Match: %.1f%%  (keyword coverage %.1f%%)\n\n", m.SemanticMatchPercent, m.CoveragePercent)

	fmt.Fprintf(out, "Skills found (%d): ", m.Matched.Len())
	if m.Matched.Len() == 0 {
		fmt.Fprintln(out, "no exact keyword matches detected.")
	} else {
		fmt.Fprintln(out, strings.Join(m.Matched.Sorted(), ", "))
	}

	if m.Missing.Len() == 0 {
		fmt.Fprintln(out, "No missing skills: you cover every keyword detected.")
	} else {
		fmt.Fprintf(out, "Missing skills (%d): %s\n", m.Missing.Len(), strings.Join(m.Missing.Sorted(), ", "))
		for _, cat := range sortedKeys(m.MissingByCategory) {
			fmt.Fprintf(out, "  %s: %s\n", cat, strings.Join(m.MissingByCategory[cat], ", "))
		}
		fmt.Fprintln(out, "Consider adding these keywords if you have the experience.")
	}
	fmt.Fprintln(out)

	switch m.Alignment {
	case report.AlignmentHigh:
		fmt.Fprintln(out, "Your profile is highly aligned. Apply now!")
	case report.AlignmentCompetitive:
		fmt.Fprintln(out, "Your profile is competitive; add the missing skills before applying.")
	default:
		fmt.Fprintln(out, "Alignment is low. Tailor your résumé to this position.")
	}
}

func renderSkills(out io.Writer, groups map[string][]string) {
	if len(groups) == 0 {
		fmt.Fprintln(out, "No skills detected.")
		return
	}
	for _, cat := range sortedKeys(groups) {
		fmt.Fprintf(out, "%s: %s\n", cat, strings.Join(groups[cat], ", "))
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
