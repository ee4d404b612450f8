// Package synth renders known binary patterns into grayscale images and
// degrades them with photographic distortions, producing evaluation cases
// whose ground truth is exact.
package synth

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
)

// ErrUnknownFilter is returned by Parse for an unrecognised filter name.
var ErrUnknownFilter = errors.New("synth: unknown filter")

// Filter transforms an image. Every parameter runs from 0 (no effect) to 1
// (strongest effect).
type Filter interface {
	Apply(img image.Image) image.Image
	String() string
}

// Intensity compresses contrast towards mid gray. Strength 1 keeps a fifth
// of the original dynamic range.
type Intensity float64

func (f Intensity) Apply(img image.Image) image.Image {
	if f == 0 {
		return clone.AsRGBA(img)
	}
	return adjust.Contrast(img, -0.8*float64(f))
}

func (f Intensity) String() string { return fmt.Sprintf("contrast:%g", float64(f)) }

// Blur applies a disc-shaped averaging kernel whose radius is a twentieth of
// the image width at strength 1.
type Blur float64

func (f Blur) Apply(img image.Image) image.Image {
	radius := float64(img.Bounds().Dx()) * float64(f) * 0.1 / 2
	if radius < 1 {
		return clone.AsRGBA(img)
	}
	return convolution.Convolve(img, discKernel(radius), &convolution.Options{KeepAlpha: true})
}

func (f Blur) String() string { return fmt.Sprintf("blur:%g", float64(f)) }

// discKernel weights each cell by how much of it lies inside a circle of the
// given radius, anti-aliased over one pixel.
func discKernel(radius float64) convolution.Matrix {
	r := int(math.Ceil(radius))
	size := 2*r + 1
	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(r-x), float64(r-y)
			k.Matrix[y*size+x] = clampUnit(radius + 0.5 - math.Hypot(dx, dy))
		}
	}
	return k.Normalized()
}

// SpotLight darkens the image away from a light centred at (X, Y), both
// fractions of the image size. Radius is a fraction of the image height.
type SpotLight struct {
	X, Y   float64
	Radius float64
}

// NewSpotLight places the light on the horizontal centre line at position
// (0 left, 1 right) with a radius of 0.2 + size image heights.
func NewSpotLight(position, size float64) SpotLight {
	return SpotLight{X: position, Y: 0.5, Radius: 0.2 + size}
}

// Dim returns a centred light that shrinks as strength grows.
func Dim(strength float64) SpotLight {
	return SpotLight{X: 0.5, Y: 0.5, Radius: 1.2 - strength}
}

func (s SpotLight) Apply(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := int(s.X*float64(w)), int(s.Y*float64(h))
	r := s.Radius * float64(h)
	if r < 1 {
		r = 1
	}
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(cx-x), float64(cy-y))
			f := (1 - math.Atan(d/r*2.5-2.5)) / 2
			mask.Pix[y*mask.Stride+x] = uint8(clampUnit(f)*255 + 0.5)
		}
	}
	return blend.Multiply(clone.AsRGBA(img), mask)
}

func (s SpotLight) String() string {
	return fmt.Sprintf("spot:%g:%g:%g", s.X, s.Y, s.Radius)
}

// WhiteNoise shifts every pixel by a uniform random offset of up to
// 0.15*256 levels at strength 1. The same Seed always produces the same
// noise.
type WhiteNoise struct {
	Strength float64
	Seed     int64
}

func (n WhiteNoise) Apply(img image.Image) image.Image {
	out := clone.AsRGBA(img)
	d := int(n.Strength * 0.15 * 256)
	if d <= 0 {
		return out
	}
	rng := rand.New(rand.NewSource(n.Seed))
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			diff := rng.Intn(2*d) - d
			c := out.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: shift(c.R, diff),
				G: shift(c.G, diff),
				B: shift(c.B, diff),
				A: c.A,
			})
		}
	}
	return out
}

func (n WhiteNoise) String() string { return fmt.Sprintf("noise:%g", n.Strength) }

func shift(v uint8, d int) uint8 {
	return uint8(min(max(int(v)+d, 0), 255))
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}

// Chain applies filters in order.
type Chain []Filter

func (c Chain) Apply(img image.Image) image.Image {
	if len(c) == 0 {
		return clone.AsRGBA(img)
	}
	for _, f := range c {
		img = f.Apply(img)
	}
	return img
}

func (c Chain) String() string {
	if len(c) == 0 {
		return "none"
	}
	parts := make([]string, len(c))
	for i, f := range c {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// Parse reads a comma separated filter chain such as
// "contrast:0.5,blur:0.2,noise:0.3". Recognised filters:
//
//	contrast:s        Intensity
//	blur:s            Blur
//	noise:s           WhiteNoise with seed 0
//	light:s           Dim
//	spot:pos:size     NewSpotLight
//	spot:x:y:r        SpotLight
//
// An empty string or "none" yields an empty chain.
func Parse(s string) (Chain, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return Chain{}, nil
	}
	var chain Chain
	for _, item := range strings.Split(s, ",") {
		f, err := parseFilter(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}

func parseFilter(item string) (Filter, error) {
	fields := strings.Split(item, ":")
	name := strings.ToLower(fields[0])
	args := make([]float64, len(fields)-1)
	for i, a := range fields[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("synth: filter %q: %w", item, err)
		}
		args[i] = v
	}
	arity := func(n ...int) error {
		for _, want := range n {
			if len(args) == want {
				return nil
			}
		}
		return fmt.Errorf("synth: filter %q: wrong number of arguments", item)
	}
	switch name {
	case "contrast", "intensity":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Intensity(args[0]), nil
	case "blur":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Blur(args[0]), nil
	case "noise":
		if err := arity(1); err != nil {
			return nil, err
		}
		return WhiteNoise{Strength: args[0]}, nil
	case "light":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Dim(args[0]), nil
	case "spot":
		if err := arity(2, 3); err != nil {
			return nil, err
		}
		if len(args) == 2 {
			return NewSpotLight(args[0], args[1]), nil
		}
		return SpotLight{X: args[0], Y: args[1], Radius: args[2]}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}
