// Package binarizer implements the binarization strategies. Each strategy
// converts a luminance source into a freshly allocated BitMatrix in which set
// bits are foreground.
//
// Strategies keep scratch buffers between calls and must not be shared
// between goroutines.
package binarizer

import (
	"fmt"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/threshold"
)

// Sampling selects the pixels a Global histogram is built from.
type Sampling int

const (
	// SampleRows uses four rows at 1/5 to 4/5 of the height, restricted to
	// the middle three fifths of the width.
	SampleRows Sampling = iota
	// SampleFull uses every pixel.
	SampleFull
)

func (s Sampling) String() string {
	if s == SampleFull {
		return "full"
	}
	return "rows"
}

// Global thresholds the whole image at a single black point chosen by Finder
// from a 64-bucket histogram.
type Global struct {
	Finder   threshold.Finder
	Sampling Sampling

	hist threshold.Histogram
}

// NewGlobal creates a Global binarizer using row sampling.
func NewGlobal(finder threshold.Finder) *Global {
	return &Global{Finder: finder}
}

// Binarize implements binbench.Binarizer.
func (g *Global) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	blackPoint := g.BlackPoint(source)
	matrix := bitutil.NewBitMatrix(width, height)
	luminances := source.Matrix()
	for y := 0; y < height; y++ {
		offset := y * width
		for x := 0; x < width; x++ {
			if int(luminances[offset+x]) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

// BlackPoint returns the luminance below which pixels are foreground.
func (g *Global) BlackPoint(source binbench.LuminanceSource) int {
	g.hist.Reset()
	if g.Sampling == SampleFull {
		g.hist.AddFull(source)
	} else {
		g.hist.AddSampled(source)
	}
	return g.finder().FindThreshold(g.hist.Counts[:]) << threshold.LuminanceShift
}

func (g *Global) finder() threshold.Finder {
	return orOtsu(g.Finder)
}

func orOtsu(f threshold.Finder) threshold.Finder {
	if f == nil {
		return threshold.Otsu{}
	}
	return f
}

func (g *Global) String() string {
	if g.Sampling == SampleFull {
		return fmt.Sprintf("Global [%v, full]", g.finder())
	}
	return fmt.Sprintf("Global [%v]", g.finder())
}

func dimensions(source binbench.LuminanceSource) (width, height int, err error) {
	width, height = source.Width(), source.Height()
	if width <= 0 || height <= 0 {
		return 0, 0, binbench.ErrEmptySource
	}
	return width, height, nil
}
