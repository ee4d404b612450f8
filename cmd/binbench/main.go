// Command binbench evaluates binarization strategies on a corpus of images
// and on generated QR codes, and reports decode rates, pixel error scores
// and timings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/ericlevine/binbench/binarizer"
	"github.com/ericlevine/binbench/corpus"
	"github.com/ericlevine/binbench/eval"
	"github.com/ericlevine/binbench/internal/config"
	"github.com/ericlevine/binbench/internal/logger"
	"github.com/ericlevine/binbench/report"
	"github.com/ericlevine/binbench/synth"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "binbench: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("binbench", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML settings file")
	corpusDir := fs.String("corpus", "", "image corpus directory (overrides the config file)")
	limit := fs.Int("limit", -1, "maximum images per folder, 0 for no limit")
	csvPath := fs.String("csv", "", "write per-case results as CSV")
	chartPath := fs.String("chart", "", "write a decode rate bar chart as PNG")
	diffDir := fs.String("diffs", "", "write diff images of cases with ground truth into this directory")
	diffRadius := fs.Int("diff-radius", -1, "shade diff errors by density within this radius, 0 for the plain palette")
	workers := fs.Int("workers", 0, "number of parallel workers")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	all := fs.Bool("all", false, "evaluate every built-in strategy instead of the configured ones")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: binbench [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Evaluate binarization strategies against a corpus and synthetic QR codes.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *corpusDir != "" {
		cfg.Corpus = *corpusDir
	}
	if *limit >= 0 {
		cfg.Limit = *limit
	}
	if *csvPath != "" {
		cfg.Output.CSV = *csvPath
	}
	if *chartPath != "" {
		cfg.Output.Chart = *chartPath
	}
	if *diffDir != "" {
		cfg.Output.Diffs = *diffDir
	}
	if *diffRadius >= 0 {
		cfg.Output.DiffRadius = *diffRadius
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *all {
		cfg.Strategies = binarizer.AllConfigs()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.NewConsole(level)

	cases, err := loadCases(ctx, cfg, log)
	if err != nil {
		return err
	}

	runner := eval.NewRunner(cfg.Strategies)
	runner.Workers = cfg.Workers
	runner.WarmUp = cfg.WarmUp
	runner.KeepMatrix = cfg.Output.Diffs != ""
	runner.Logger = log
	if d, _ := cfg.Decoder(); d != nil {
		runner.NewDecoder = func() eval.Decoder {
			d, _ := cfg.Decoder()
			return d
		}
	}
	results, err := runner.Run(ctx, cases)
	if err != nil {
		return err
	}

	summaries := eval.Summarize(results)
	if err := report.WriteSummary(stdout, summaries, language.English); err != nil {
		return err
	}
	if cfg.Output.CSV != "" {
		if err := writeCSV(cfg, results); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output.CSV).Msg("wrote CSV")
	}
	if cfg.Output.Chart != "" {
		if err := writeFile(cfg.Output.Chart, func(w io.Writer) error {
			return report.ScoreChart(w, summaries, report.DecodeRate)
		}); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output.Chart).Msg("wrote chart")
	}
	if cfg.Output.Diffs != "" {
		n, err := writeDiffs(cfg.Output.Diffs, cfg.Output.DiffRadius, cases, results)
		if err != nil {
			return err
		}
		log.Info().Str("dir", cfg.Output.Diffs).Int("images", n).Msg("wrote diffs")
	}
	return nil
}

func loadCases(ctx context.Context, cfg config.Config, log zerolog.Logger) ([]*eval.Case, error) {
	var cases []*eval.Case
	if cfg.Corpus != "" {
		l := corpus.NewLoader(cfg.Corpus)
		l.Scale = cfg.Scale
		l.Logger = log
		cs, err := l.Cases(ctx, cfg.Limit)
		switch {
		case (errors.Is(err, corpus.ErrNoImages) || errors.Is(err, os.ErrNotExist)) && cfg.Synthetic.Payload != "":
			log.Warn().Err(err).Msg("continuing with synthetic cases only")
		case err != nil:
			return nil, err
		}
		cases = append(cases, cs...)
	}
	if s := cfg.Synthetic; s.Payload != "" {
		cs, err := synth.Cases(s.Payload, s.Size, s.Filters)
		if err != nil {
			return nil, err
		}
		log.Info().Int("cases", len(cs)).Msg("generated synthetic cases")
		cases = append(cases, cs...)
	}
	return cases, nil
}

func writeCSV(cfg config.Config, results []eval.Result) error {
	layout := report.GroupLayout
	if cfg.Synthetic.Payload == "" {
		layout = report.Layout{
			Header: corpus.CSVHeader,
			Split:  func(g string) []string { return corpus.ParseCategory(g).Fields() },
		}
	}
	return writeFile(cfg.Output.CSV, func(w io.Writer) error {
		return report.WriteCSV(w, results, layout)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

var unsafeName = strings.NewReplacer("/", "_", "\\", "_", " ", "", "[", "", "]", "", "|", "-", ",", "-", ":", "")

func writeDiffs(dir string, radius int, cases []*eval.Case, results []eval.Result) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	truth := make(map[string]*eval.Case, len(cases))
	for _, c := range cases {
		truth[c.Name] = c
	}
	n := 0
	for _, r := range results {
		c := truth[r.Case]
		if c == nil || c.Truth == nil || r.Matrix == nil {
			continue
		}
		img, err := eval.ShadedDiffImage(r.Matrix, c.Truth, radius)
		if err != nil {
			return n, fmt.Errorf("%s: %w", r.Case, err)
		}
		name := unsafeName.Replace(strings.TrimSuffix(r.Case, filepath.Ext(r.Case)) + "." + r.Strategy + ".png")
		if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
