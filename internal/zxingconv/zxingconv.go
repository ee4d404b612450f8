// Package zxingconv bridges binbench types and github.com/makiuchi-d/gozxing.
package zxingconv

import (
	"errors"

	"github.com/makiuchi-d/gozxing"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
)

// Source exposes src as a gozxing luminance source without copying the
// visible area more than once.
func Source(src binbench.LuminanceSource) (gozxing.LuminanceSource, error) {
	w, h := src.Width(), src.Height()
	return gozxing.NewPlanarYUVLuminanceSource(src.Matrix(), w, h, 0, 0, w, h, false)
}

// FromZXing copies a gozxing matrix into a BitMatrix.
func FromZXing(m *gozxing.BitMatrix) *bitutil.BitMatrix {
	w, h := m.GetWidth(), m.GetHeight()
	out := bitutil.NewBitMatrix(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				out.Set(x, y)
			}
		}
	}
	return out
}

// ToZXing copies a BitMatrix into a gozxing matrix.
func ToZXing(m *bitutil.BitMatrix) (*gozxing.BitMatrix, error) {
	w, h := m.Width(), m.Height()
	out, err := gozxing.NewBitMatrix(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				out.Set(x, y)
			}
		}
	}
	return out, nil
}

// Bitmap wraps an already binarized matrix so gozxing readers can consume it
// as is.
func Bitmap(m *bitutil.BitMatrix) (*gozxing.BinaryBitmap, error) {
	zm, err := ToZXing(m)
	if err != nil {
		return nil, err
	}
	img := binbench.MatrixToImage(m)
	src, err := gozxing.NewPlanarYUVLuminanceSource(img.Pix, m.Width(), m.Height(), 0, 0, m.Width(), m.Height(), false)
	if err != nil {
		return nil, err
	}
	return gozxing.NewBinaryBitmap(&fixedBinarizer{source: src, matrix: zm})
}

// IsNotFound reports whether err is a gozxing NotFoundException.
func IsNotFound(err error) bool {
	var nf gozxing.NotFoundException
	return errors.As(err, &nf)
}

// fixedBinarizer returns a precomputed matrix. Derived sources, such as
// rotations requested by 1-D readers, fall back to the global histogram
// binarizer, which is exact on a pure black and white rendering.
type fixedBinarizer struct {
	source gozxing.LuminanceSource
	matrix *gozxing.BitMatrix
}

func (b *fixedBinarizer) GetLuminanceSource() gozxing.LuminanceSource { return b.source }

func (b *fixedBinarizer) GetBlackRow(y int, row *gozxing.BitArray) (*gozxing.BitArray, error) {
	return b.matrix.GetRow(y, row), nil
}

func (b *fixedBinarizer) GetBlackMatrix() (*gozxing.BitMatrix, error) { return b.matrix, nil }

func (b *fixedBinarizer) CreateBinarizer(source gozxing.LuminanceSource) gozxing.Binarizer {
	return gozxing.NewGlobalHistgramBinarizer(source)
}

func (b *fixedBinarizer) GetWidth() int { return b.matrix.GetWidth() }

func (b *fixedBinarizer) GetHeight() int { return b.matrix.GetHeight() }
