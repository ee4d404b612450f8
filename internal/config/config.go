// Package config loads the batch evaluation settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericlevine/binbench/binarizer"
	"github.com/ericlevine/binbench/decode"
	"github.com/ericlevine/binbench/synth"
)

// Output names the report files. Empty paths are not written.
// DiffRadius shades diff images by error density within that many pixels;
// 0 writes the plain palette.
type Output struct {
	CSV        string `yaml:"csv"`
	Chart      string `yaml:"chart"`
	Diffs      string `yaml:"diffs"`
	DiffRadius int    `yaml:"diff_radius"`
}

// Synthetic generates QR cases degraded by filter chains. An empty
// payload disables generation.
type Synthetic struct {
	Payload string   `yaml:"payload"`
	Size    int      `yaml:"size"`
	Filters []string `yaml:"filters"`
}

// Config holds the settings of a batch run.
type Config struct {
	Corpus     string             `yaml:"corpus"`
	Limit      int                `yaml:"limit"`
	Workers    int                `yaml:"workers"`
	WarmUp     int                `yaml:"warm_up"`
	Scale      float64            `yaml:"scale"`
	Decode     string             `yaml:"decode"`
	LogLevel   string             `yaml:"log_level"`
	Output     Output             `yaml:"output"`
	Synthetic  Synthetic          `yaml:"synthetic"`
	Strategies []binarizer.Config `yaml:"strategies"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Corpus:     "testdata",
		Workers:    1,
		WarmUp:     100,
		Scale:      1,
		Decode:     "qr",
		LogLevel:   "info",
		Synthetic:  Synthetic{Size: 200},
		Output:     Output{DiffRadius: 2},
		Strategies: binarizer.DefaultConfigs(),
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads YAML from r over the defaults. Fields absent from the input
// keep their default values.
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", c.Scale))
	}
	if c.Limit < 0 || c.WarmUp < 0 || c.Output.DiffRadius < 0 {
		errs = append(errs, errors.New("limit, warm_up and output.diff_radius must not be negative"))
	}
	if _, err := c.Decoder(); err != nil {
		errs = append(errs, err)
	}
	if c.Synthetic.Payload != "" {
		if c.Synthetic.Size < 21 {
			errs = append(errs, fmt.Errorf("synthetic size must be at least 21, got %d", c.Synthetic.Size))
		}
		for i, f := range c.Synthetic.Filters {
			if _, err := synth.Parse(f); err != nil {
				errs = append(errs, fmt.Errorf("synthetic.filters[%d]: %w", i, err))
			}
		}
	}
	if c.Corpus == "" && c.Synthetic.Payload == "" {
		errs = append(errs, errors.New("neither a corpus nor a synthetic payload is configured"))
	}
	if len(c.Strategies) == 0 {
		errs = append(errs, errors.New("no strategies configured"))
	}
	for i, s := range c.Strategies {
		if _, err := binarizer.New(s); err != nil {
			errs = append(errs, fmt.Errorf("strategies[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Decoder builds the configured decoder. "none" disables decoding and
// returns nil.
func (c Config) Decoder() (decode.Decoder, error) {
	if c.Decode == "none" {
		return nil, nil
	}
	return decode.New(c.Decode)
}
