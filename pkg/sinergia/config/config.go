package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/sinergia/pkg/sinergia/internalerr"
	"github.com/cognicore/sinergia/pkg/sinergia/report"
	"gopkg.in/yaml.v3"
)

// Embedding backends.
const (
	BackendHash   = "hash"
	BackendMiniLM = "minilm"
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// Threshold presets.
const (
	PresetEditor  = "editor"
	PresetUnified = "unified"
)

// File is the YAML configuration file.
type File struct {
	// Dictionary is a skill dictionary YAML; empty uses the built-in one.
	Dictionary string           `yaml:"dictionary"`
	// Fragments overrides the technology fragments of the candidate scan.
	Fragments  []string         `yaml:"fragments"`
	// Preset picks the base thresholds (editor or unified); Thresholds
	// fields present in the file override it, zero included.
	Preset     string           `yaml:"preset"`
	Thresholds report.Overrides `yaml:"thresholds"`
	// AutoJunk enables the popular-element heuristic for draft comparison.
	AutoJunk   bool             `yaml:"autojunk"`
	Embedder   Embedder         `yaml:"embedder"`
}

// Embedder configures the semantic model.
type Embedder struct {
	Backend    string `yaml:"backend"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"`

	ModelPath     string `yaml:"model_path"`
	TokenizerPath string `yaml:"tokenizer_path"`
	LibraryPath   string `yaml:"library_path"`
	MaxLength     int    `yaml:"max_length"`

	CacheSize         int           `yaml:"cache_size"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Preset: PresetEditor,
		Embedder: Embedder{
			Backend:   BackendHash,
			CacheSize: 256,
			Timeout:   30 * time.Second,
		},
	}
}

// LoadFile reads a YAML configuration on top of Default.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default.
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &f, nil
}

// ThresholdsValue resolves the preset and explicit thresholds.
func (f *File) ThresholdsValue() (report.Thresholds, error) {
	var base report.Thresholds
	switch strings.ToLower(f.Preset) {
	case "", PresetEditor:
		base = report.DefaultThresholds()
	case PresetUnified:
		base = report.UnifiedThresholds()
	default:
		return report.Thresholds{}, fmt.Errorf("unknown preset %q: %w", f.Preset, internalerr.ErrInvalidConfig)
	}
	base = f.Thresholds.Apply(base)
	return base, base.Validate()
}

// Validate checks backend-specific requirements.
func (f *File) Validate() error {
	if _, err := f.ThresholdsValue(); err != nil {
		return err
	}
	e := f.Embedder
	switch e.Backend {
	case BackendHash:
	case BackendMiniLM:
		if e.ModelPath == "" || e.TokenizerPath == "" {
			return fmt.Errorf("minilm backend needs model_path and tokenizer_path: %w", internalerr.ErrInvalidConfig)
		}
	case BackendOllama:
		if e.Model == "" {
			return fmt.Errorf("ollama backend needs a model: %w", internalerr.ErrInvalidConfig)
		}
	case BackendOpenAI:
		if e.Model == "" || e.APIKey == "" {
			return fmt.Errorf("openai backend needs model and api_key: %w", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown embedder backend %q: %w", e.Backend, internalerr.ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides fields from SINERGIA_* environment variables. The CLI
// loads .env files before calling it.
func (f *File) ApplyEnv() {
	f.Dictionary = getEnv("SINERGIA_DICTIONARY", f.Dictionary)
	f.Preset = getEnv("SINERGIA_PRESET", f.Preset)
	if v, ok := os.LookupEnv("SINERGIA_FRAGMENTS"); ok {
		f.Fragments = splitList(v)
	}
	if v, err := strconv.ParseFloat(os.Getenv("SINERGIA_HIGH_INFLUENCE"), 64); err == nil {
		f.Thresholds.HighInfluence = &v
	}
	if v, err := strconv.ParseBool(os.Getenv("SINERGIA_AUTOJUNK")); err == nil {
		f.AutoJunk = v
	}

	e := &f.Embedder
	e.Backend = getEnv("SINERGIA_EMBEDDER", e.Backend)
	e.Model = getEnv("SINERGIA_EMBED_MODEL", e.Model)
	e.BaseURL = getEnv("SINERGIA_EMBED_URL", e.BaseURL)
	e.APIKey = getEnv("SINERGIA_EMBED_API_KEY", getEnv("OPENAI_API_KEY", e.APIKey))
	e.ModelPath = getEnv("SINERGIA_MINILM_MODEL", e.ModelPath)
	e.TokenizerPath = getEnv("SINERGIA_MINILM_TOKENIZER", e.TokenizerPath)
	e.LibraryPath = getEnv("SINERGIA_ONNXRUNTIME_LIB", e.LibraryPath)
	e.CacheSize = getEnvInt("SINERGIA_EMBED_CACHE", e.CacheSize)
	e.RequestsPerSecond = getEnvFloat("SINERGIA_EMBED_RPS", e.RequestsPerSecond)
	e.Timeout = getEnvDuration("SINERGIA_EMBED_TIMEOUT", e.Timeout)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
