package threshold

import (
	"testing"

	"github.com/ericlevine/binbench"
)

func TestFullHistogram(t *testing.T) {
	pix := []byte{0, 3, 4, 255, 128, 131}
	h := FullHistogram(binbench.NewGraySource(pix, 3, 2))
	want := map[int]int{0: 2, 1: 1, 63: 1, 32: 2}
	for i, c := range h {
		if c != want[i] {
			t.Errorf("bucket %d = %d, want %d", i, c, want[i])
		}
	}
}

func TestSampledHistogram(t *testing.T) {
	const w, h = 10, 10
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = 200
	}
	// Row 0 and the outer fifths are never sampled.
	for x := 0; x < w; x++ {
		pix[x] = 0
	}
	for y := 0; y < h; y++ {
		pix[y*w] = 0
		pix[y*w+9] = 0
	}
	counts := SampledHistogram(binbench.NewGraySource(pix, w, h))
	if counts[0] != 0 {
		t.Errorf("bucket 0 = %d, want 0", counts[0])
	}
	// rows 2,4,6,8 x columns [2,8)
	if got := counts[200>>LuminanceShift]; got != 24 {
		t.Errorf("bucket %d = %d, want 24", 200>>LuminanceShift, got)
	}
}

func TestHistogramReset(t *testing.T) {
	var hist Histogram
	src := binbench.NewGraySource([]byte{8, 8}, 2, 1)
	hist.AddFull(src)
	hist.AddFull(src)
	if hist.Counts[2] != 4 {
		t.Errorf("bucket 2 = %d, want 4", hist.Counts[2])
	}
	hist.Reset()
	if hist.Counts[2] != 0 {
		t.Errorf("bucket 2 after Reset = %d, want 0", hist.Counts[2])
	}
}
