package binarizer_test

import (
	"testing"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/binarizer"
)

// benchImage is a 640x480 frame with a lighting gradient and a grid of dark
// marks, roughly what a phone camera sees.
func benchImage() *binbench.GraySource {
	const w, h = 640, 480
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 200 - x/8 - y/12
			if (x/6)%3 == 0 && (y/6)%3 == 0 {
				v -= 60
			}
			pix[y*w+x] = byte(v)
		}
	}
	return binbench.NewGraySource(pix, w, h)
}

func BenchmarkBinarize(b *testing.B) {
	src := benchImage()
	for _, c := range binarizer.AllConfigs() {
		strategy, err := binarizer.New(c)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(strategy.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := strategy.Binarize(src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
