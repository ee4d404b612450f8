package binarizer

import (
	"fmt"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/integral"
)

// blockGrid aggregates luminance over bs x bs blocks. Blocks on the right and
// bottom edges may be partial; pixelCount accounts for that.
type blockGrid struct {
	bs, width, height int
	cols, rows        int

	totals  []int
	squares []int
	sums    integral.Table
	sqSums  integral.Table
}

func (g *blockGrid) build(data []byte, width, height, bs int, withSquares bool) {
	g.bs, g.width, g.height = bs, width, height
	g.cols = (width + bs - 1) / bs
	g.rows = (height + bs - 1) / bs
	n := g.cols * g.rows
	if cap(g.totals) < n {
		g.totals = make([]int, n)
		g.squares = make([]int, n)
	}
	g.totals = g.totals[:n]
	g.squares = g.squares[:n]
	for i := range g.totals {
		g.totals[i] = 0
		g.squares[i] = 0
	}
	for y := 0; y < height; y++ {
		rowOffset := (y / bs) * g.cols
		offset := y * width
		for x := 0; x < width; x++ {
			v := int(data[offset+x])
			g.totals[rowOffset+x/bs] += v
			if withSquares {
				g.squares[rowOffset+x/bs] += v * v
			}
		}
	}
	g.sums.BuildSum(g.totals, g.cols, g.rows)
	if withSquares {
		g.sqSums.BuildSum(g.squares, g.cols, g.rows)
	}
}

// radius converts a fraction of the smaller image dimension into a window
// radius counted in blocks. The radius is at least one block.
func (g *blockGrid) radius(fraction float64) int {
	return max(1, int(float64(min(g.width, g.height))*fraction/float64(g.bs)/2+1))
}

// window returns the block rectangle of radius r around block (bx, by).
func (g *blockGrid) window(bx, by, r int) (top, left, bottom, right int) {
	return max(0, by-r+1), max(0, bx-r+1), min(g.rows, by+r), min(g.cols, bx+r)
}

// pixelCount returns the number of image pixels covered by a block rectangle.
func (g *blockGrid) pixelCount(top, left, bottom, right int) int64 {
	w := min(right*g.bs, g.width) - left*g.bs
	h := min(bottom*g.bs, g.height) - top*g.bs
	return int64(w * h)
}

// threshold sets every pixel of block (bx, by) darker than avg.
func (g *blockGrid) threshold(data []byte, bx, by, avg int, matrix *bitutil.BitMatrix) {
	yEnd := min((by+1)*g.bs, g.height)
	xEnd := min((bx+1)*g.bs, g.width)
	for y := by * g.bs; y < yEnd; y++ {
		offset := y * g.width
		for x := bx * g.bs; x < xEnd; x++ {
			if int(data[offset+x]) < avg {
				matrix.Set(x, y)
			}
		}
	}
}

// FastWindow is SimpleWindow computed per block: the window mean is taken
// over whole blocks and shared by every pixel of the centre block.
type FastWindow struct {
	BlockSize int
	Fraction  float64

	grid blockGrid
}

// NewFastWindow creates a FastWindow binarizer.
func NewFastWindow(blockSize int, fraction float64) *FastWindow {
	return &FastWindow{BlockSize: blockSize, Fraction: fraction}
}

// NewLocalAverage returns the block size and window fraction used by the
// native local average binarizer.
func NewLocalAverage() *FastWindow {
	return NewFastWindow(6, 0.13)
}

// Binarize implements binbench.Binarizer.
func (f *FastWindow) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	data := source.Matrix()
	g := &f.grid
	g.build(data, width, height, max(f.BlockSize, 1), false)
	r := g.radius(f.Fraction)

	matrix := bitutil.NewBitMatrix(width, height)
	for by := 0; by < g.rows; by++ {
		for bx := 0; bx < g.cols; bx++ {
			top, left, bottom, right := g.window(bx, by, r)
			avg := int(g.sums.Window(top, left, bottom, right) / g.pixelCount(top, left, bottom, right))
			g.threshold(data, bx, by, avg, matrix)
		}
	}
	return matrix, nil
}

func (f *FastWindow) String() string {
	return fmt.Sprintf("Window [%d|%g]", f.BlockSize, f.Fraction)
}

// NoiseWindow is FastWindow that leaves low-variance neighbourhoods as
// background. A block is thresholded only when its window variance times
// Threshold exceeds the variance of the whole image.
type NoiseWindow struct {
	BlockSize int
	Fraction  float64
	Threshold float64

	grid blockGrid
}

// NewNoiseWindow creates a NoiseWindow binarizer.
func NewNoiseWindow(blockSize int, fraction, threshold float64) *NoiseWindow {
	return &NoiseWindow{BlockSize: blockSize, Fraction: fraction, Threshold: threshold}
}

// Binarize implements binbench.Binarizer.
func (n *NoiseWindow) Binarize(source binbench.LuminanceSource) (*bitutil.BitMatrix, error) {
	width, height, err := dimensions(source)
	if err != nil {
		return nil, err
	}
	data := source.Matrix()
	g := &n.grid
	g.build(data, width, height, max(n.BlockSize, 1), true)
	r := g.radius(n.Fraction)

	total := float64(width * height)
	globalMean := float64(g.sums.Total()) / total
	globalVariance := float64(g.sqSums.Total())/total - globalMean*globalMean

	matrix := bitutil.NewBitMatrix(width, height)
	for by := 0; by < g.rows; by++ {
		for bx := 0; bx < g.cols; bx++ {
			top, left, bottom, right := g.window(bx, by, r)
			pixels := g.pixelCount(top, left, bottom, right)
			block := g.sums.Window(top, left, bottom, right)
			mean := float64(block) / float64(pixels)
			variance := float64(g.sqSums.Window(top, left, bottom, right))/float64(pixels) - mean*mean
			if variance*n.Threshold <= globalVariance {
				continue
			}
			g.threshold(data, bx, by, int(block/pixels), matrix)
		}
	}
	return matrix, nil
}

func (n *NoiseWindow) String() string {
	return fmt.Sprintf("Window (Reduced Noise) [%d|%g|%g]", n.BlockSize, n.Fraction, n.Threshold)
}
