package zxingconv

import (
	"errors"
	"testing"

	"github.com/makiuchi-d/gozxing"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
)

func TestMatrixRoundTrip(t *testing.T) {
	m := bitutil.ParseStringMatrix("X...X\n.X.X.\n..X..\n", "X", ".")
	zm, err := ToZXing(m)
	if err != nil {
		t.Fatal(err)
	}
	if zm.GetWidth() != 5 || zm.GetHeight() != 3 {
		t.Fatalf("gozxing matrix = %dx%d, want 5x3", zm.GetWidth(), zm.GetHeight())
	}
	if back := FromZXing(zm); !back.Equals(m) {
		t.Errorf("round trip mismatch:\n%s\nwant\n%s", back, m)
	}
}

func TestSource(t *testing.T) {
	pix := []byte{10, 20, 30, 40, 50, 60}
	src := binbench.NewGraySource(pix, 3, 2)
	crop, err := src.Crop(1, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	zs, err := Source(crop)
	if err != nil {
		t.Fatal(err)
	}
	row, err := zs.GetRow(1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 50 || row[1] != 60 {
		t.Errorf("row 1 = %v, want [50 60]", row[:2])
	}
}

func TestBitmapKeepsMatrix(t *testing.T) {
	m := bitutil.ParseStringMatrix("XX..\n..XX\n", "X", ".")
	bmp, err := Bitmap(m)
	if err != nil {
		t.Fatal(err)
	}
	zm, err := bmp.GetBlackMatrix()
	if err != nil {
		t.Fatal(err)
	}
	if !FromZXing(zm).Equals(m) {
		t.Error("bitmap changed the matrix")
	}
	row, err := bmp.GetBlackRow(1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if row.Get(0) || !row.Get(2) || !row.Get(3) {
		t.Errorf("unexpected row bits")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gozxing.NewNotFoundException()) {
		t.Error("NotFoundException not recognised")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("plain error recognised as not found")
	}
}
