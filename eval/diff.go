package eval

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/integral"
)

// Diff palette. Agreeing pixels keep their colour; false black pixels are
// dark red and false white pixels bright green.
var (
	ColorBlack      = mustHex("#000000")
	ColorWhite      = mustHex("#ffffff")
	ColorFalseBlack = mustHex("#7c0000")
	ColorFalseWhite = mustHex("#00ff00")
)

func mustHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// DiffImage renders produced against truth using the diff palette.
func DiffImage(produced, truth *bitutil.BitMatrix) (*image.RGBA, error) {
	return ShadedDiffImage(produced, truth, 0)
}

// minShade is the blend weight of an error pixel with no other error within
// the radius.
const minShade = 0.35

// ShadedDiffImage is DiffImage with misclassified pixels blended, in Lab
// space, between the colour they should have had and their error colour.
// The weight grows with the share of errors within radius of the pixel, so
// isolated errors are pale and error clusters get the full palette colour.
// Radius 0 disables shading.
func ShadedDiffImage(produced, truth *bitutil.BitMatrix, radius int) (*image.RGBA, error) {
	w, h := produced.Width(), produced.Height()
	if truth.Width() != w || truth.Height() != h {
		return nil, ErrSizeMismatch
	}
	var density *integral.Table
	if radius > 0 {
		errs := make([]int, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if produced.Get(x, y) != truth.Get(x, y) {
					errs[y*w+x] = 1
				}
			}
		}
		density = integral.Sum(errs, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p, t := produced.Get(x, y), truth.Get(x, y)
			var c color.RGBA
			switch {
			case p && t:
				c = ColorBlack
			case !p && !t:
				c = ColorWhite
			case density != nil:
				top, left := max(0, y-radius), max(0, x-radius)
				bottom, right := min(h, y+radius+1), min(w, x+radius+1)
				weight := minShade + (1-minShade)*density.Mean(top, left, bottom, right)
				c = shade(p, weight)
			case p:
				c = ColorFalseBlack
			default:
				c = ColorFalseWhite
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

var (
	labBlack      = mustColorful(ColorBlack)
	labWhite      = mustColorful(ColorWhite)
	labFalseBlack = mustColorful(ColorFalseBlack)
	labFalseWhite = mustColorful(ColorFalseWhite)
)

func mustColorful(c color.RGBA) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		panic("eval: transparent palette colour")
	}
	return cf
}

// shade blends the expected colour of a false black (p set) or false white
// pixel towards its error colour.
func shade(p bool, weight float64) color.RGBA {
	if weight >= 1 {
		if p {
			return ColorFalseBlack
		}
		return ColorFalseWhite
	}
	from, to := labBlack, labFalseWhite
	if p {
		from, to = labWhite, labFalseBlack
	}
	r, g, b := from.BlendLab(to, weight).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
