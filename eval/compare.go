// Package eval measures binarization strategies: pixel accuracy against a
// ground truth matrix, decoder success and timing.
package eval

import (
	"errors"

	"github.com/ericlevine/binbench/bitutil"
)

// ErrSizeMismatch is returned when a produced matrix and its ground truth
// have different dimensions.
var ErrSizeMismatch = errors.New("eval: matrix dimensions do not match")

// Counts classifies every pixel of a produced matrix against ground truth.
type Counts struct {
	TrueBlack  int
	TrueWhite  int
	FalseBlack int // produced black, truth white
	FalseWhite int // produced white, truth black
}

// Pixels returns the number of classified pixels.
func (c Counts) Pixels() int {
	return c.TrueBlack + c.TrueWhite + c.FalseBlack + c.FalseWhite
}

// Errors returns the number of misclassified pixels.
func (c Counts) Errors() int {
	return c.FalseBlack + c.FalseWhite
}

// Compare classifies produced against truth. A nil truth yields zero counts.
func Compare(produced, truth *bitutil.BitMatrix) (Counts, error) {
	if truth == nil {
		return Counts{}, nil
	}
	if produced.Width() != truth.Width() || produced.Height() != truth.Height() {
		return Counts{}, ErrSizeMismatch
	}
	falseBlack, falseWhite := bitutil.DiffCounts(produced, truth)
	black := truth.CountSet()
	total := truth.Width() * truth.Height()
	return Counts{
		TrueBlack:  black - falseWhite,
		TrueWhite:  total - black - falseBlack,
		FalseBlack: falseBlack,
		FalseWhite: falseWhite,
	}, nil
}
