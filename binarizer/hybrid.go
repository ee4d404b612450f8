package binarizer

import (
	"fmt"

	"github.com/makiuchi-d/gozxing"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/internal/zxingconv"
)

// Hybrid delegates to the gozxing HybridBinarizer, the reference local
// thresholding algorithm. Images smaller than 40 pixels on a side fall back
// to its global histogram, which rejects low-contrast input.
type Hybrid struct{}

// NewHybrid creates a Hybrid binarizer.
func NewHybrid() *Hybrid { return &Hybrid{} }

// Binarize implements binbench.Binarizer.
func (h *Hybrid) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	if _, _, err := dimensions(source); err != nil {
		return nil, err
	}
	zs, err := zxingconv.Source(source)
	if err != nil {
		return nil, fmt.Errorf("hybrid: %w", err)
	}
	zm, err := gozxing.NewHybridBinarizer(zs).GetBlackMatrix()
	if err != nil {
		if zxingconv.IsNotFound(err) {
			return nil, fmt.Errorf("hybrid: %w", binbench.ErrLowContrast)
		}
		return nil, fmt.Errorf("hybrid: %w", err)
	}
	return zxingconv.FromZXing(zm), nil
}

func (h *Hybrid) String() string { return "Hybrid" }
