package binbench

import "errors"

var (
	// ErrNotFound is returned by decoders when no symbol is found in a matrix.
	ErrNotFound = errors.New("symbol not found")

	// ErrEmptySource is returned when a source has no pixels.
	ErrEmptySource = errors.New("luminance source is empty")

	// ErrInvalidCrop is returned when a crop rectangle does not fit the source.
	ErrInvalidCrop = errors.New("crop rectangle does not fit within image data")

	// ErrLowContrast is returned when a strategy cannot pick a black point.
	ErrLowContrast = errors.New("insufficient contrast")
)
