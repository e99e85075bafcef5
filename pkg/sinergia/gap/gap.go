package gap

import "github.com/cognicore/sinergia/pkg/sinergia/skills"

// Result is the outcome of comparing required keywords against possessed ones.
type Result struct {
	Matched skills.Set `json:"matched"` // required ∩ possessed
	Missing skills.Set `json:"missing"` // required − possessed
}

// Analyze compares a required keyword set (e.g. from a job posting) with a
// possessed one (e.g. from a résumé). Inputs are not modified; nil sets are
// treated as empty.
func Analyze(required, possessed skills.Set) Result {
	res := Result{
		Matched: make(skills.Set),
		Missing: make(skills.Set),
	}
	for item := range required {
		if possessed.Has(item) {
			res.Matched.Add(item)
		} else {
			res.Missing.Add(item)
		}
	}
	return res
}

// Coverage returns the share of required keywords that were matched, as a
// percentage. No required keywords yields 0.
func (r Result) Coverage() float64 {
	total := r.Matched.Len() + r.Missing.Len()
	if total == 0 {
		return 0
	}
	return float64(r.Matched.Len()) / float64(total) * 100
}
