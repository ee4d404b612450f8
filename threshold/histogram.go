package threshold

import "github.com/ericlevine/binbench"

const (
	luminanceBits = 6

	// LuminanceShift converts an 8-bit luminance to a bucket index.
	LuminanceShift = 8 - luminanceBits

	// Buckets is the number of histogram buckets.
	Buckets = 1 << luminanceBits
)

// Histogram accumulates quantized luminance counts. The row buffer is kept
// between uses.
type Histogram struct {
	Counts [Buckets]int
	row    []byte
}

// Reset zeroes all counts.
func (h *Histogram) Reset() {
	h.Counts = [Buckets]int{}
}

// AddFull counts every pixel of source.
func (h *Histogram) AddFull(source binbench.LuminanceSource) {
	width, height := source.Width(), source.Height()
	for y := 0; y < height; y++ {
		h.row = source.Row(y, h.row)
		for _, v := range h.row[:width] {
			h.Counts[v>>LuminanceShift]++
		}
	}
}

// AddSampled counts four rows at heights 1/5 to 4/5, restricted to the
// middle three fifths of each row.
func (h *Histogram) AddSampled(source binbench.LuminanceSource) {
	width, height := source.Width(), source.Height()
	right := (width * 4) / 5
	for y := 1; y < 5; y++ {
		h.row = source.Row(height*y/5, h.row)
		for x := width / 5; x < right; x++ {
			h.Counts[h.row[x]>>LuminanceShift]++
		}
	}
}

// FullHistogram returns the histogram of every pixel in source.
func FullHistogram(source binbench.LuminanceSource) []int {
	var h Histogram
	h.AddFull(source)
	return h.Counts[:]
}

// SampledHistogram returns the four-row sampled histogram of source.
func SampledHistogram(source binbench.LuminanceSource) []int {
	var h Histogram
	h.AddSampled(source)
	return h.Counts[:]
}
