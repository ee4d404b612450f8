package binarizer

import (
	"errors"
	"testing"

	"github.com/ericlevine/binbench/threshold"
)

func TestNew(t *testing.T) {
	zero := 0.0
	tests := []struct {
		c    Config
		want string
	}{
		{Config{Kind: "global"}, "Global [Otsu]"},
		{Config{Kind: "Global", Finder: "kapur", Sampling: "full"}, "Global [Kapur, full]"},
		{Config{Kind: "simple_window"}, "SimpleWindow [0.13|12]"},
		{Config{Kind: "simplewindow", Fraction: 0.2, MinStdDev: &zero}, "SimpleWindow [0.2]"},
		{Config{Kind: "fastwindow"}, "Window [8|0.13]"},
		{Config{Kind: "localaverage"}, "Window [6|0.13]"},
		{Config{Kind: "noise-window"}, "Window (Reduced Noise) [4|0.129|6]"},
		{Config{Kind: "split", Finder: "zxing", NumX: 2}, "Split [2x3|TwoPeak]"},
		{Config{Kind: "movingotsu", Radius: 16}, "MovingOtsu [16]"},
		{Config{Kind: "hybrid"}, "Hybrid"},
		{Config{Kind: "sauvola", K: 0.3}, "Sauvola [31|0.3]"},
	}
	for _, tt := range tests {
		b, err := New(tt.c)
		if err != nil {
			t.Errorf("New(%+v): %v", tt.c, err)
			continue
		}
		if got := b.String(); got != tt.want {
			t.Errorf("New(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Config{Kind: "magic"}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind err = %v, want ErrUnknownKind", err)
	}
	if _, err := New(Config{Kind: "global", Finder: "nope"}); !errors.Is(err, threshold.ErrUnknownFinder) {
		t.Errorf("unknown finder err = %v, want ErrUnknownFinder", err)
	}
	if _, err := New(Config{Kind: "global", Sampling: "diagonal"}); err == nil {
		t.Error("unknown sampling should fail")
	}
	negative := -1.0
	for _, c := range []Config{
		{Kind: "simplewindow", Fraction: -1},
		{Kind: "fastwindow", Fraction: -0.5},
		{Kind: "noisewindow", Fraction: -1},
		{Kind: "noisewindow", Threshold: -2},
		{Kind: "fastwindow", BlockSize: -8},
		{Kind: "split", NumX: -1},
		{Kind: "movingotsu", Radius: -4},
		{Kind: "sauvola", Window: -31},
		{Kind: "simplewindow", MinStdDev: &negative},
	} {
		if _, err := New(c); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("New(%+v) err = %v, want ErrInvalidConfig", c, err)
		}
	}
}

func TestConfigLineups(t *testing.T) {
	for _, set := range [][]Config{DefaultConfigs(), AllConfigs()} {
		seen := make(map[string]bool)
		for _, c := range set {
			b, err := New(c)
			if err != nil {
				t.Fatalf("New(%+v): %v", c, err)
			}
			if seen[b.String()] {
				t.Errorf("duplicate strategy %q", b)
			}
			seen[b.String()] = true
		}
	}
	if n := len(DefaultConfigs()); n != 5 {
		t.Errorf("len(DefaultConfigs()) = %d, want 5", n)
	}
	b, err := New(DefaultConfigs()[4])
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := b.(*SimpleWindow); !ok || s.MinStdDev != 0 {
		t.Errorf("last default strategy = %v, want the literal SimpleWindow", b)
	}
}
