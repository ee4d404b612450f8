package binarizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/threshold"
)

// ErrUnknownKind is returned by New for an unrecognised strategy kind.
var ErrUnknownKind = errors.New("binarizer: unknown kind")

// ErrInvalidConfig is returned by New for a negative size parameter.
var ErrInvalidConfig = errors.New("binarizer: invalid config")

// Config describes a strategy. Zero fields take the strategy defaults.
type Config struct {
	Kind      string   `yaml:"kind"`
	Finder    string   `yaml:"finder,omitempty"`
	Sampling  string   `yaml:"sampling,omitempty"`
	Fraction  float64  `yaml:"fraction,omitempty"`
	BlockSize int      `yaml:"block_size,omitempty"`
	Threshold float64  `yaml:"threshold,omitempty"`
	NumX      int      `yaml:"num_x,omitempty"`
	NumY      int      `yaml:"num_y,omitempty"`
	Radius    int      `yaml:"radius,omitempty"`
	Window    int      `yaml:"window,omitempty"`
	K         float64  `yaml:"k,omitempty"`
	MinStdDev *float64 `yaml:"min_stddev,omitempty"`
}

// New builds a fresh strategy instance from c.
func New(c Config) (binbench.Binarizer, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	switch normalizeKind(c.Kind) {
	case "global":
		f, err := c.finder(threshold.Otsu{})
		if err != nil {
			return nil, err
		}
		g := NewGlobal(f)
		switch strings.ToLower(c.Sampling) {
		case "", "rows":
		case "full":
			g.Sampling = SampleFull
		default:
			return nil, fmt.Errorf("binarizer: unknown sampling %q", c.Sampling)
		}
		return g, nil
	case "simplewindow":
		s := NewSimpleWindow(orFloat(c.Fraction, 0.13))
		if c.MinStdDev != nil {
			s.MinStdDev = *c.MinStdDev
		}
		return s, nil
	case "fastwindow", "window":
		return NewFastWindow(orInt(c.BlockSize, 8), orFloat(c.Fraction, 0.13)), nil
	case "localaverage":
		return NewLocalAverage(), nil
	case "noisewindow", "windowrn":
		return NewNoiseWindow(orInt(c.BlockSize, 4), orFloat(c.Fraction, 0.129), orFloat(c.Threshold, 6)), nil
	case "split":
		f, err := c.finder(threshold.Otsu{})
		if err != nil {
			return nil, err
		}
		s := NewSplit(orInt(c.NumX, 3), orInt(c.NumY, 3))
		s.Finder = f
		return s, nil
	case "movingotsu":
		return NewMovingOtsu(orInt(c.Radius, 32)), nil
	case "hybrid":
		return NewHybrid(), nil
	case "sauvola":
		return NewSauvola(orInt(c.Window, 31), orFloat(c.K, 0.5)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
}

func (c Config) check() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"fraction", c.Fraction},
		{"block_size", float64(c.BlockSize)},
		{"threshold", c.Threshold},
		{"num_x", float64(c.NumX)},
		{"num_y", float64(c.NumY)},
		{"radius", float64(c.Radius)},
		{"window", float64(c.Window)},
	} {
		if p.v < 0 {
			return fmt.Errorf("%w: %s is %g", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.MinStdDev != nil && *c.MinStdDev < 0 {
		return fmt.Errorf("%w: min_stddev is %g", ErrInvalidConfig, *c.MinStdDev)
	}
	return nil
}

func (c Config) finder(def threshold.Finder) (threshold.Finder, error) {
	if c.Finder == "" {
		return def, nil
	}
	return threshold.Lookup(c.Finder)
}

func normalizeKind(kind string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(kind))
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// DefaultConfigs is the standard batch line-up. SimpleWindow runs twice:
// with the flat-window fallback and with the literal pixel < mean rule.
func DefaultConfigs() []Config {
	literal := 0.0
	return []Config{
		{Kind: "global", Finder: "otsu"},
		{Kind: "global", Finder: "twopeak"},
		{Kind: "hybrid"},
		{Kind: "simplewindow", Fraction: 0.13},
		{Kind: "simplewindow", Fraction: 0.13, MinStdDev: &literal},
	}
}

// AllConfigs lists every strategy with its default parameters, and Global
// with every histogram finder.
func AllConfigs() []Config {
	return []Config{
		{Kind: "global", Finder: "average"},
		{Kind: "global", Finder: "median"},
		{Kind: "global", Finder: "otsu"},
		{Kind: "global", Finder: "kittler"},
		{Kind: "global", Finder: "kapur"},
		{Kind: "global", Finder: "twopeak"},
		{Kind: "simplewindow"},
		{Kind: "fastwindow"},
		{Kind: "localaverage"},
		{Kind: "noisewindow"},
		{Kind: "split"},
		{Kind: "movingotsu"},
		{Kind: "hybrid"},
		{Kind: "sauvola"},
	}
}
