package binarizer

import (
	"fmt"
	"math"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/integral"
)

// SimpleWindow compares every pixel with the mean of a square window around
// it. The window side is about Fraction times the smaller image dimension.
//
// A window whose standard deviation is below MinStdDev carries no edge, and
// its pixels are compared with the global mean instead. MinStdDev 0 disables
// the fallback.
type SimpleWindow struct {
	Fraction  float64
	MinStdDev float64

	sums    integral.Table
	squares integral.Table
}

// NewSimpleWindow creates a SimpleWindow with the default flat-window
// threshold.
func NewSimpleWindow(fraction float64) *SimpleWindow {
	return &SimpleWindow{Fraction: fraction, MinStdDev: 12}
}

// Binarize implements binbench.Binarizer.
func (s *SimpleWindow) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	data := source.Matrix()
	s.sums.BuildLuminance(data, width, height, width)
	flat := s.MinStdDev > 0
	if flat {
		s.squares.BuildLuminanceSquares(data, width, height, width)
	}
	globalMean := int(s.sums.Total() / int64(width*height))
	minVariance := s.MinStdDev * s.MinStdDev

	r := max(1, int(float64(min(width, height))*s.Fraction/2+1))
	matrix := bitutil.NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		top := max(0, y-r+1)
		bottom := min(height, y+r)
		offset := y * width
		for x := 0; x < width; x++ {
			left := max(0, x-r+1)
			right := min(width, x+r)
			mean := s.sums.Mean(top, left, bottom, right)
			avg := int(mean)
			if flat {
				variance := s.squares.Mean(top, left, bottom, right) - mean*mean
				if variance < minVariance {
					avg = globalMean
				}
			}
			if int(data[offset+x]) < avg {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

func (s *SimpleWindow) String() string {
	if s.MinStdDev > 0 {
		return fmt.Sprintf("SimpleWindow [%g|%g]", s.Fraction, s.MinStdDev)
	}
	return fmt.Sprintf("SimpleWindow [%g]", s.Fraction)
}

// Sauvola thresholds each pixel at m*(1 + K*(s/128 - 1)), where m and s are
// the mean and standard deviation of the Window x Window neighbourhood.
type Sauvola struct {
	Window int
	K      float64

	sums    integral.Table
	squares integral.Table
}

// NewSauvola creates a Sauvola binarizer.
func NewSauvola(window int, k float64) *Sauvola {
	return &Sauvola{Window: window, K: k}
}

// Binarize implements binbench.Binarizer.
func (s *Sauvola) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	data := source.Matrix()
	s.sums.BuildLuminance(data, width, height, width)
	s.squares.BuildLuminanceSquares(data, width, height, width)

	half := max(s.Window, 1) / 2
	matrix := bitutil.NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		top := max(0, y-half)
		bottom := min(height, y+half+1)
		offset := y * width
		for x := 0; x < width; x++ {
			left := max(0, x-half)
			right := min(width, x+half+1)
			pixels := float64((bottom - top) * (right - left))
			mean := float64(s.sums.Window(top, left, bottom, right)) / pixels
			variance := float64(s.squares.Window(top, left, bottom, right))/pixels - mean*mean
			dev := math.Sqrt(math.Max(variance, 0))
			threshold := mean * (1 + s.K*(dev/128-1))
			if int(data[offset+x]) < int(threshold) {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

func (s *Sauvola) String() string {
	return fmt.Sprintf("Sauvola [%d|%g]", s.Window, s.K)
}
