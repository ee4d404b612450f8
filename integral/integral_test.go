package integral

import (
	"math/rand"
	"testing"
)

func bruteForce(values []int, width, top, left, bottom, right int) int64 {
	var sum int64
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			sum += int64(values[y*width+x])
		}
	}
	return sum
}

func TestWindowMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 50; iter++ {
		w := 1 + rng.Intn(64)
		h := 1 + rng.Intn(64)
		values := make([]int, w*h)
		squares := make([]int, w*h)
		for i := range values {
			values[i] = rng.Intn(256)
			squares[i] = values[i] * values[i]
		}
		sum := Sum(values, w, h)
		sq := SumOfSquares(values, w, h)
		for q := 0; q < 40; q++ {
			top := rng.Intn(h + 1)
			bottom := top + rng.Intn(h-top+1)
			left := rng.Intn(w + 1)
			right := left + rng.Intn(w-left+1)
			if got, want := sum.Window(top, left, bottom, right), bruteForce(values, w, top, left, bottom, right); got != want {
				t.Fatalf("%dx%d Window(%d,%d,%d,%d) = %d, want %d", w, h, top, left, bottom, right, got, want)
			}
			if got, want := sq.Window(top, left, bottom, right), bruteForce(squares, w, top, left, bottom, right); got != want {
				t.Fatalf("%dx%d squares Window(%d,%d,%d,%d) = %d, want %d", w, h, top, left, bottom, right, got, want)
			}
		}
		if got, want := sum.Total(), bruteForce(values, w, 0, 0, h, w); got != want {
			t.Errorf("Total = %d, want %d", got, want)
		}
	}
}

func TestFromLuminanceStride(t *testing.T) {
	// 3x2 visible area inside a stride-5 buffer.
	lum := []byte{
		1, 2, 3, 99, 99,
		4, 5, 6, 99, 99,
	}
	tbl := FromLuminance(lum, 3, 2, 5)
	if got := tbl.Total(); got != 21 {
		t.Errorf("Total = %d, want 21", got)
	}
	if got := tbl.Window(1, 1, 2, 3); got != 11 {
		t.Errorf("Window = %d, want 11", got)
	}
	sq := FromLuminanceSquares(lum, 3, 2, 5)
	if got := sq.Total(); got != 91 {
		t.Errorf("squares Total = %d, want 91", got)
	}
}

func TestBuildReusesStorage(t *testing.T) {
	tbl := Sum([]int{1, 1, 1, 1, 1, 1, 1, 1, 1}, 3, 3)
	tbl.BuildSum([]int{2, 2}, 2, 1)
	if tbl.Width() != 2 || tbl.Height() != 1 {
		t.Fatalf("dimensions = %dx%d, want 2x1", tbl.Width(), tbl.Height())
	}
	if got := tbl.Total(); got != 4 {
		t.Errorf("Total = %d, want 4", got)
	}
	if got := tbl.At(0, 2); got != 0 {
		t.Errorf("At(0,2) = %d, want 0", got)
	}
}

func TestMean(t *testing.T) {
	tbl := Sum([]int{10, 20, 30, 40}, 2, 2)
	if got := tbl.Mean(0, 0, 2, 2); got != 25 {
		t.Errorf("Mean = %v, want 25", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty window")
		}
	}()
	tbl.Mean(1, 1, 1, 2)
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{-3, 0, 10, 0},
		{5, 0, 10, 5},
		{12, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
