package binarizer

import (
	"fmt"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/integral"
	"github.com/ericlevine/binbench/threshold"
)

// Split divides the image into NumX x NumY tiles and binarizes each tile with
// its own Global black point.
type Split struct {
	NumX, NumY int
	Finder     threshold.Finder

	global Global
}

// NewSplit creates a Split binarizer using Otsu per tile.
func NewSplit(numX, numY int) *Split {
	return &Split{NumX: numX, NumY: numY, Finder: threshold.Otsu{}}
}

// Binarize implements binbench.Binarizer.
func (s *Split) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	numX, numY := max(s.NumX, 1), max(s.NumY, 1)
	s.global.Finder = s.Finder
	result := bitutil.NewBitMatrix(width, height)
	for x := 0; x < numX; x++ {
		left := x * width / numX
		right := (x + 1) * width / numX
		for y := 0; y < numY; y++ {
			top := y * height / numY
			bottom := (y + 1) * height / numY
			if right == left || bottom == top {
				continue
			}
			tile, err := source.Crop(left, top, right-left, bottom-top)
			if err != nil {
				return nil, fmt.Errorf("split tile (%d,%d): %w", x, y, err)
			}
			m, err := s.global.Binarize(tile)
			if err != nil {
				return nil, fmt.Errorf("split tile (%d,%d): %w", x, y, err)
			}
			result.Paste(m, left, top)
		}
	}
	return result, nil
}

func (s *Split) String() string {
	return fmt.Sprintf("Split [%dx%d|%v]", s.NumX, s.NumY, orOtsu(s.Finder))
}

// MovingOtsu removes slow illumination changes by subtracting the mean of a
// window of radius BlockRadius from every pixel, then binarizes the result
// with a global Otsu threshold.
type MovingOtsu struct {
	BlockRadius int

	sums    integral.Table
	derived []byte
	global  Global
}

// NewMovingOtsu creates a MovingOtsu binarizer.
func NewMovingOtsu(blockRadius int) *MovingOtsu {
	return &MovingOtsu{BlockRadius: blockRadius}
}

// Binarize implements binbench.Binarizer.
func (m *MovingOtsu) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	data := source.Matrix()
	m.sums.BuildLuminance(data, width, height, width)
	if cap(m.derived) < width*height {
		m.derived = make([]byte, width*height)
	}
	derived := m.derived[:width*height]

	r := max(m.BlockRadius, 1)
	for y := 0; y < height; y++ {
		top := max(0, y-r+1)
		bottom := min(height, y+r)
		offset := y * width
		for x := 0; x < width; x++ {
			left := max(0, x-r+1)
			right := min(width, x+r)
			pixels := int64((bottom - top) * (right - left))
			avg := int(m.sums.Window(top, left, bottom, right) / pixels)
			derived[offset+x] = byte(integral.Clamp(int(data[offset+x])+128-avg, 0, 255))
		}
	}
	m.global.Finder = threshold.Otsu{}
	return m.global.Binarize(binbench.NewGraySource(derived, width, height))
}

func (m *MovingOtsu) String() string {
	return fmt.Sprintf("MovingOtsu [%d]", m.BlockRadius)
}
