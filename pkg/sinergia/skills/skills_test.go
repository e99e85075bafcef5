package skills

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
	"github.com/cognicore/sinergia/pkg/sinergia/textnorm"
)

func TestDefaultDictionary(t *testing.T) {
	dict := DefaultDictionary()

	wantCats := []string{"datos", "desarrollo", "soft_skills"}
	if got := dict.Categories(); !reflect.DeepEqual(got, wantCats) {
		t.Errorf("Categories() = %v, want %v", got, wantCats)
	}

	// "sql" is listed twice but counted once.
	if got, want := dict.Len(), 37; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}

	if got := dict.CategoriesOf("sql"); !reflect.DeepEqual(got, []string{"datos", "desarrollo"}) {
		t.Errorf("CategoriesOf(sql) = %v", got)
	}
	if !dict.Has("trabajo en equipo") {
		t.Error("multi-word term missing")
	}
	if dict.Has("cobol") {
		t.Error("unexpected term cobol")
	}
	if DefaultDictionary() != dict {
		t.Error("DefaultDictionary should be shared")
	}
}

func TestDictionaryIsImmutable(t *testing.T) {
	dict := NewDictionary(map[string][]string{"lang": {"Go", " Rust ", "go", ""}})

	terms := dict.Terms()
	if !reflect.DeepEqual(terms, []string{"go", "rust"}) {
		t.Fatalf("Terms() = %v, want [go rust]", terms)
	}
	terms[0] = "mutated"
	if dict.Terms()[0] != "go" {
		t.Error("Terms() leaked internal slice")
	}

	cat := dict.Category("lang")
	cat[0] = "mutated"
	if dict.Category("lang")[0] != "go" {
		t.Error("Category() leaked internal slice")
	}
	if dict.Category("missing") != nil {
		t.Error("unknown category should be nil")
	}
}

func TestParseDictionary(t *testing.T) {
	dict, err := ParseDictionary([]byte(`
categories:
  cloud: [AWS, GCP]
  ops: [terraform, aws]
`))
	if err != nil {
		t.Fatalf("ParseDictionary: %v", err)
	}
	if got := dict.CategoriesOf("aws"); !reflect.DeepEqual(got, []string{"cloud", "ops"}) {
		t.Errorf("CategoriesOf(aws) = %v", got)
	}

	if _, err := ParseDictionary([]byte("other: 1")); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("missing categories: got %v, want ErrInvalidConfig", err)
	}
	if _, err := ParseDictionary([]byte("categories: [unclosed")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  lang: [go, rust]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	dict, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if dict.Len() != 2 {
		t.Errorf("Len() = %d, want 2", dict.Len())
	}

	if _, err := LoadDictionary(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestExtract(t *testing.T) {
	ex := NewExtractor(nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"gap example job", "python sql docker", []string{"docker", "python", "sql"}},
		{"gap example cv", "python java docker kubernetes", []string{"docker", "java", "kubernetes", "python"}},
		{
			"spanish cv",
			"Senior Developer con experiencia en JavaScript, Node.js, React y AWS. Trabajo en equipo y comunicación efectiva.",
			[]string{"comunicación", "javascript", "node.js", "react", "senior", "trabajo en equipo"},
		},
		{
			"data job",
			"Buscamos Data Engineer: Python, Spark, ETL, Power BI, machine learning (ML) y AI. Inglés avanzado. CI/CD con GitHub Actions.",
			[]string{"actions.", "ai.", "ci/cd", "etl", "inglés", "power bi", "python", "spark"},
		},
		{
			"dotnet",
			"Experto en .NET, C#, ASP.NET Core, microservicios y Azure DevOps; resolución de problemas",
			[]string{".net", "asp.net", "azure", "microservicios", "resolución de problemas"},
		},
		{
			"long runs split into candidates",
			"supercalifragilisticexpialidocious javascriptjavascript",
			[]string{"ious"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Extract(textnorm.Normalize(tt.text)).Sorted()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractWholeWordOnly(t *testing.T) {
	ex := NewExtractor(nil, WithFragments())

	got := ex.Extract("javascript developer")
	if got.Has("java") {
		t.Error("java must not match inside javascript")
	}
	if !got.Has("javascript") {
		t.Error("javascript should match")
	}
}

func TestExtractIdempotent(t *testing.T) {
	ex := NewExtractor(nil)
	input := "Lideré equipos ágiles con Scrum, React.js, Node.js y AWS; CI/CD en Azure."

	first := ex.Extract(textnorm.Normalize(input))
	second := ex.Extract(textnorm.Normalize(input))
	if !first.Equal(second) {
		t.Errorf("Extract not deterministic: %v vs %v", first.Sorted(), second.Sorted())
	}
}

func TestExtractCustomFragments(t *testing.T) {
	ex := NewExtractor(NewDictionary(map[string][]string{"x": {"go"}}), WithFragments("db"))
	got := ex.Extract("go mongodb redis").Sorted()
	want := []string{"go", "mongodb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestCategorize(t *testing.T) {
	ex := NewExtractor(nil)
	groups := ex.Categorize(NewSet("sql", "liderazgo", "node.js", "python"))

	want := map[string][]string{
		"datos":       {"sql"},
		"desarrollo":  {"python", "sql"},
		"soft_skills": {"liderazgo"},
		"pattern":     {"node.js"},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("Categorize() = %v, want %v", groups, want)
	}
}

func TestSetJSON(t *testing.T) {
	s := NewSet("b", "a", "c")
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `["a","b","c"]` {
		t.Errorf("Marshal = %s", data)
	}

	var back Set
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(s) {
		t.Errorf("round trip = %v", back.Sorted())
	}
}
