// Package integral implements summed-area tables: the sum over any
// axis-aligned rectangle of a grid is read in constant time after a single
// linear pass.
package integral

// Table is a (height+1) x (width+1) cumulative sum table. Cell (y, x) holds
// the sum of all values in rows [0, y) and columns [0, x) of the source grid,
// so row 0 and column 0 are always zero.
type Table struct {
	width  int
	height int
	cells  []int64
}

// Sum builds a table over values, a row-major width*height grid.
func Sum(values []int, width, height int) *Table {
	t := &Table{}
	t.BuildSum(values, width, height)
	return t
}

// SumOfSquares builds a table over the squares of values.
func SumOfSquares(values []int, width, height int) *Table {
	t := &Table{}
	t.BuildSumOfSquares(values, width, height)
	return t
}

// FromLuminance builds a table directly over 8-bit luminance samples laid out
// with the given row stride.
func FromLuminance(lum []byte, width, height, stride int) *Table {
	t := &Table{}
	t.BuildLuminance(lum, width, height, stride)
	return t
}

// FromLuminanceSquares builds a table over squared luminance samples.
func FromLuminanceSquares(lum []byte, width, height, stride int) *Table {
	t := &Table{}
	t.BuildLuminanceSquares(lum, width, height, stride)
	return t
}

// BuildSum rebuilds t over values, reusing its storage when large enough.
func (t *Table) BuildSum(values []int, width, height int) {
	t.reset(width, height)
	t.accumulate(func(y, x int) int64 { return int64(values[y*width+x]) })
}

// BuildSumOfSquares rebuilds t over the squares of values.
func (t *Table) BuildSumOfSquares(values []int, width, height int) {
	t.reset(width, height)
	t.accumulate(func(y, x int) int64 {
		v := int64(values[y*width+x])
		return v * v
	})
}

// BuildLuminance rebuilds t over luminance samples.
func (t *Table) BuildLuminance(lum []byte, width, height, stride int) {
	t.reset(width, height)
	t.accumulate(func(y, x int) int64 { return int64(lum[y*stride+x]) })
}

// BuildLuminanceSquares rebuilds t over squared luminance samples.
func (t *Table) BuildLuminanceSquares(lum []byte, width, height, stride int) {
	t.reset(width, height)
	t.accumulate(func(y, x int) int64 {
		v := int64(lum[y*stride+x])
		return v * v
	})
}

func (t *Table) reset(width, height int) {
	if width < 0 || height < 0 {
		panic("integral: negative dimensions")
	}
	t.width = width
	t.height = height
	n := (width + 1) * (height + 1)
	if cap(t.cells) < n {
		t.cells = make([]int64, n)
	} else {
		t.cells = t.cells[:n]
	}
	for i := 0; i <= width; i++ {
		t.cells[i] = 0
	}
}

// accumulate fills rows 1..height: a running row prefix sum added to the
// cell directly above.
func (t *Table) accumulate(value func(y, x int) int64) {
	stride := t.width + 1
	for y := 0; y < t.height; y++ {
		above := t.cells[y*stride : (y+1)*stride]
		row := t.cells[(y+1)*stride : (y+2)*stride]
		row[0] = 0
		var run int64
		for x := 0; x < t.width; x++ {
			run += value(y, x)
			row[x+1] = above[x+1] + run
		}
	}
}

// Width returns the width of the source grid.
func (t *Table) Width() int { return t.width }

// Height returns the height of the source grid.
func (t *Table) Height() int { return t.height }

// At returns cell (y, x), the sum over [0, y) x [0, x).
func (t *Table) At(y, x int) int64 {
	return t.cells[y*(t.width+1)+x]
}

// Total returns the sum of the whole grid.
func (t *Table) Total() int64 {
	return t.At(t.height, t.width)
}

// Window returns the sum over rows [top, bottom) and columns [left, right).
// The caller keeps the rectangle within the grid.
func (t *Table) Window(top, left, bottom, right int) int64 {
	stride := t.width + 1
	return t.cells[bottom*stride+right] + t.cells[top*stride+left] -
		t.cells[top*stride+right] - t.cells[bottom*stride+left]
}

// Mean returns the average value over a non-empty rectangle.
func (t *Table) Mean(top, left, bottom, right int) float64 {
	n := (bottom - top) * (right - left)
	if n <= 0 {
		panic("integral: empty window")
	}
	return float64(t.Window(top, left, bottom, right)) / float64(n)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
