package skills

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
	"gopkg.in/yaml.v3"
)

//go:embed data/skills.yaml
var defaultDictionaryYAML []byte

// Dictionary is an immutable categorized list of known skill terms.
//
// Categories only matter for reporting; extraction works on the flattened,
// deduplicated term list. A term may belong to several categories
// (e.g. "sql" is both a development and a data skill).
type Dictionary struct {
	categories map[string][]string
	names      []string            // sorted category names
	terms      []string            // flattened, deduplicated
	index      map[string][]string // term -> categories
}

// dictionaryFile is the YAML shape:
//
//	categories:
//	  desarrollo: [python, java, ci/cd]
//	  soft_skills: [liderazgo, trabajo en equipo]
type dictionaryFile struct {
	Categories map[string][]string `yaml:"categories"`
}

// NewDictionary builds a dictionary from category -> terms. Terms are
// lowercased and trimmed; blanks and duplicates inside a category are dropped.
func NewDictionary(categories map[string][]string) *Dictionary {
	d := &Dictionary{
		categories: make(map[string][]string, len(categories)),
		index:      make(map[string][]string),
	}

	for name := range categories {
		d.names = append(d.names, name)
	}
	sort.Strings(d.names)

	for _, name := range d.names {
		seen := make(map[string]bool)
		var terms []string
		for _, raw := range categories[name] {
			term := strings.ToLower(strings.TrimSpace(raw))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			terms = append(terms, term)

			if _, known := d.index[term]; !known {
				d.terms = append(d.terms, term)
			}
			d.index[term] = append(d.index[term], name)
		}
		d.categories[name] = terms
	}

	return d
}

// ParseDictionary reads a dictionary from YAML bytes.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse skill dictionary: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("skill dictionary has no categories: %w", internalerr.ErrInvalidConfig)
	}
	return NewDictionary(file.Categories), nil
}

// LoadDictionary reads a dictionary from a YAML file.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDictionary(data)
}

var defaultDictionary = sync.OnceValue(func() *Dictionary {
	d, err := ParseDictionary(defaultDictionaryYAML)
	if err != nil {
		panic("skills: embedded dictionary: " + err.Error())
	}
	return d
})

// DefaultDictionary returns the built-in dictionary (development, data and
// soft skills). It is parsed once and shared.
func DefaultDictionary() *Dictionary {
	return defaultDictionary()
}

// Terms returns the flattened term list.
func (d *Dictionary) Terms() []string {
	return append([]string(nil), d.terms...)
}

// Categories returns the sorted category names.
func (d *Dictionary) Categories() []string {
	return append([]string(nil), d.names...)
}

// Category returns the terms of one category, or nil if unknown.
func (d *Dictionary) Category(name string) []string {
	terms, ok := d.categories[name]
	if !ok {
		return nil
	}
	return append([]string(nil), terms...)
}

// CategoriesOf returns every category containing term.
func (d *Dictionary) CategoriesOf(term string) []string {
	return append([]string(nil), d.index[strings.ToLower(term)]...)
}

// Has reports whether term is a dictionary entry.
func (d *Dictionary) Has(term string) bool {
	_, ok := d.index[strings.ToLower(term)]
	return ok
}

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int {
	return len(d.terms)
}
