package synth

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/eval"
	"github.com/ericlevine/binbench/internal/zxingconv"
)

// QR encodes payload as a QR code rendered at size×size pixels, quiet zone
// included.
func QR(payload string, size int) (*bitutil.BitMatrix, error) {
	zm, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, fmt.Errorf("synth: encode %q: %w", payload, err)
	}
	return zxingconv.FromZXing(zm), nil
}

// Render paints m with dark for set bits and light for the rest.
func Render(m *bitutil.BitMatrix, dark, light uint8) *image.Gray {
	w, h := m.Width(), m.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		for x := range row {
			if m.Get(x, y) {
				row[x] = dark
			} else {
				row[x] = light
			}
		}
	}
	return img
}

// Case renders truth in black and white, degrades it with f and returns the
// evaluation case. The case group is the filter description.
func Case(name string, truth *bitutil.BitMatrix, expected string, f Filter) *eval.Case {
	if f == nil {
		f = Chain{}
	}
	img := f.Apply(Render(truth, 0, 255))
	return &eval.Case{
		Name:     name,
		Group:    f.String(),
		Source:   binbench.NewImageSource(img),
		Truth:    truth,
		Expected: expected,
	}
}

// Cases builds one case per filter chain from a single QR payload.
func Cases(payload string, size int, chains []string) ([]*eval.Case, error) {
	truth, err := QR(payload, size)
	if err != nil {
		return nil, err
	}
	if len(chains) == 0 {
		chains = []string{"none"}
	}
	cases := make([]*eval.Case, 0, len(chains))
	for i, s := range chains {
		chain, err := Parse(s)
		if err != nil {
			return nil, err
		}
		cases = append(cases, Case(fmt.Sprintf("synthetic-%02d", i), truth, payload, chain))
	}
	return cases, nil
}
