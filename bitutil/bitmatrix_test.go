package bitutil

import "testing"

func TestBitMatrixGetSet(t *testing.T) {
	bm := NewBitMatrix(40, 10)
	bm.Set(3, 5)
	bm.Set(35, 9)
	if !bm.Get(3, 5) {
		t.Error("bit (3,5) should be set")
	}
	if !bm.Get(35, 9) {
		t.Error("bit (35,9) should be set")
	}
	if bm.Get(5, 3) {
		t.Error("bit (5,3) should not be set")
	}
}

func TestBitMatrixFlipUnset(t *testing.T) {
	bm := NewBitMatrix(4, 4)
	bm.Flip(1, 2)
	if !bm.Get(1, 2) {
		t.Error("bit should be set after flip")
	}
	bm.Unset(1, 2)
	if bm.Get(1, 2) {
		t.Error("bit should be unset")
	}
}

func TestBitMatrixSetRegion(t *testing.T) {
	bm := NewBitMatrix(8, 8)
	bm.SetRegion(2, 2, 4, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			expected := x >= 2 && x < 6 && y >= 2 && y < 6
			if bm.Get(x, y) != expected {
				t.Errorf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), expected)
			}
		}
	}
	if bm.CountSet() != 16 {
		t.Errorf("CountSet = %d, want 16", bm.CountSet())
	}
}

func TestBitMatrixPaste(t *testing.T) {
	dst := NewBitMatrix(6, 6)
	src := ParseStringMatrix("X.\n.X\n", "X", ".")
	dst.Paste(src, 4, 4)
	dst.Paste(src, 5, 5)
	want := [][2]int{{4, 4}, {5, 5}}
	if dst.CountSet() != len(want) {
		t.Fatalf("CountSet = %d, want %d", dst.CountSet(), len(want))
	}
	for _, p := range want {
		if !dst.Get(p[0], p[1]) {
			t.Errorf("(%d,%d) should be set", p[0], p[1])
		}
	}
}

func TestDiffCounts(t *testing.T) {
	a := ParseStringMatrix("XX..\n..XX\n", "X", ".")
	b := ParseStringMatrix("X..X\n..X.\n", "X", ".")
	onlyA, onlyB := DiffCounts(a, b)
	if onlyA != 2 || onlyB != 1 {
		t.Errorf("DiffCounts = (%d, %d), want (2, 1)", onlyA, onlyB)
	}
}

func TestParseStringMatrix(t *testing.T) {
	bm := ParseStringMatrix("X X \n  X \n", "X ", "  ")
	if bm.Width() != 2 || bm.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", bm.Width(), bm.Height())
	}
	if !bm.Get(0, 0) || !bm.Get(1, 0) || bm.Get(0, 1) || !bm.Get(1, 1) {
		t.Errorf("unexpected matrix:\n%s", bm)
	}
	if got := bm.String(); got != "X X \n  X \n" {
		t.Errorf("String() = %q", got)
	}
}

func TestBitMatrixClone(t *testing.T) {
	bm := NewBitMatrix(8, 8)
	bm.Set(1, 1)
	clone := bm.Clone()
	clone.Set(2, 2)
	if bm.Get(2, 2) {
		t.Error("modifying clone should not affect original")
	}
	if !clone.Get(1, 1) {
		t.Error("clone should keep original bits")
	}
}

func TestBitMatrixEquals(t *testing.T) {
	a := NewBitMatrix(4, 4)
	b := NewBitMatrix(4, 4)
	a.Set(1, 2)
	b.Set(1, 2)
	if !a.Equals(b) {
		t.Error("equal matrices should be equal")
	}
	b.Set(3, 3)
	if a.Equals(b) {
		t.Error("different matrices should not be equal")
	}
	if a.Equals(NewBitMatrix(4, 5)) {
		t.Error("matrices of different size should not be equal")
	}
}

func TestNewBitMatrixPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero width")
		}
	}()
	NewBitMatrix(0, 3)
}
