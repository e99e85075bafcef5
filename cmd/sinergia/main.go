package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/cognicore/sinergia/pkg/sinergia"
	"github.com/cognicore/sinergia/pkg/sinergia/config"
	"github.com/cognicore/sinergia/pkg/sinergia/extract"
	"github.com/google/gops/agent"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	_ = godotenv.Load()

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "evolve":
		err = evolveCmd(ctx, os.Args[2:], os.Stdout)
	case "match":
		err = matchCmd(ctx, os.Args[2:], os.Stdout)
	case "skills":
		err = skillsCmd(ctx, os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sinergia <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  evolve  Measure how much a revision departs from the original draft")
	fmt.Fprintln(os.Stderr, "  match   Score a résumé against a job description")
	fmt.Fprintln(os.Stderr, "  skills  List the skills mentioned in a document")
}

// common holds the flags every command accepts.
type common struct {
	configPath string
	jsonOut    bool
	gops       bool
	preset     string
	embedder   string
}

func (c *common) register(flags *flag.FlagSet) {
	flags.StringVar(&c.configPath, "config", "", "YAML config file")
	flags.BoolVar(&c.jsonOut, "json", false, "print the report as JSON")
	flags.BoolVar(&c.gops, "gops", false, "start the gops diagnostics agent")
	flags.StringVar(&c.preset, "preset", "", "threshold preset (editor|unified)")
	flags.StringVar(&c.embedder, "embedder", "", "embedding backend (hash|minilm|ollama|openai)")
}

// engine loads configuration in priority order: defaults, file, environment,
// flags.
func (c *common) engine(tweak func(*config.File)) (*sinergia.Engine, error) {
	if c.gops {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			log.Printf("gops: %v", err)
		}
	}

	file := config.Default()
	if c.configPath != "" {
		loaded, err := config.LoadFile(c.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		file = *loaded
	}
	file.ApplyEnv()
	if c.preset != "" {
		file.Preset = c.preset
	}
	if c.embedder != "" {
		file.Embedder.Backend = c.embedder
	}
	if tweak != nil {
		tweak(&file)
	}

	loader := config.Loader{
		File:   file,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	components, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return sinergia.New(components.Options()), nil
}

func readInput(ctx context.Context, name, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("--%s required", name)
	}
	text, err := extract.Load(ctx, location)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return text, nil
}

func evolveCmd(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("evolve", flag.ContinueOnError)
	var c common
	c.register(flags)
	original := flags.String("original", "", "original draft (path or URL)")
	revised := flags.String("revised", "", "revised text (path or URL)")
	threshold := flags.Float64("threshold", 0, "high influence threshold in percent (overrides preset)")
	autoJunk := flags.Bool("autojunk", false, "ignore very frequent characters in long texts")
	if err := flags.Parse(args); err != nil {
		return err
	}

	origText, err := readInput(ctx, "original", *original)
	if err != nil {
		return err
	}
	revText, err := readInput(ctx, "revised", *revised)
	if err != nil {
		return err
	}

	eng, err := c.engine(func(f *config.File) {
		flags.Visit(func(fl *flag.Flag) {
			if fl.Name == "threshold" {
				f.Thresholds.HighInfluence = threshold
			}
		})
		if *autoJunk {
			f.AutoJunk = true
		}
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	ev := eng.CompareDrafts(origText, revText)
	if c.jsonOut {
		return writeJSON(out, ev)
	}
	renderEvolution(out, ev, eng.Thresholds())
	return nil
}

func matchCmd(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("match", flag.ContinueOnError)
	var c common
	c.register(flags)
	cv := flags.String("cv", "", "résumé (path or URL; txt, md, html, pdf, docx, xlsx, xls)")
	job := flags.String("job", "", "job description (path or URL)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cvText, err := readInput(ctx, "cv", *cv)
	if err != nil {
		return err
	}
	jobText, err := readInput(ctx, "job", *job)
	if err != nil {
		return err
	}

	eng, err := c.engine(nil)
	if err != nil {
		return err
	}
	defer eng.Close()

	m, err := eng.MatchCandidate(ctx, cvText, jobText)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if c.jsonOut {
		return writeJSON(out, m)
	}
	renderMatch(out, m)
	return nil
}

func skillsCmd(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("skills", flag.ContinueOnError)
	var c common
	c.register(flags)
	in := flags.String("in", "", "document (path or URL)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	text, err := readInput(ctx, "in", *in)
	if err != nil {
		return err
	}
	eng, err := c.engine(nil)
	if err != nil {
		return err
	}
	defer eng.Close()

	groups := eng.Categorize(eng.ExtractSkills(text))
	if c.jsonOut {
		return writeJSON(out, groups)
	}
	renderSkills(out, groups)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
