// Package binbench converts greyscale luminance images into binary pixel
// matrices and defines the contracts shared by the binarization strategies
// and the evaluation harness.
package binbench

import "github.com/ericlevine/binbench/bitutil"

// LuminanceSource provides read-only access to greyscale luminance values for
// an image. Values range from 0 (black) to 255 (white).
type LuminanceSource interface {
	// Row returns a row of luminance data. If row is non-nil and large enough,
	// it is reused.
	Row(y int, row []byte) []byte

	// Matrix returns the entire luminance matrix in row-major order with a
	// stride equal to Width. Callers must not modify the result.
	Matrix() []byte

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int

	// Crop returns a source over the given rectangle that shares samples with
	// this one.
	Crop(left, top, width, height int) (LuminanceSource, error)
}

// Binarizer converts luminance data to 1-bit black/white data. A Binarizer
// may keep scratch buffers between calls and must not be used from more than
// one goroutine at a time.
type Binarizer interface {
	// Binarize returns a newly allocated matrix in which set bits are
	// foreground pixels.
	Binarize(source LuminanceSource) (*bitutil.BitMatrix, error)

	// String names the strategy and its parameters.
	String() string
}
