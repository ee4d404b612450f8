package synth

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/binarizer"
	"github.com/ericlevine/binbench/eval"
	"github.com/ericlevine/binbench/threshold"
)

func uniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// step is black on the left half and white on the right.
func step(w, h int) *image.Gray {
	img := uniform(w, h, 255)
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	return img
}

func lum(img image.Image, x, y int) int {
	return int(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
}

func near(a, b, tol int) bool {
	d := a - b
	return d >= -tol && d <= tol
}

func TestIntensity(t *testing.T) {
	img := step(20, 4)
	same := Intensity(0).Apply(img)
	if lum(same, 0, 0) != 0 || lum(same, 19, 0) != 255 {
		t.Errorf("Intensity(0) changed the image: %d %d", lum(same, 0, 0), lum(same, 19, 0))
	}
	flat := Intensity(1).Apply(img)
	if got := lum(flat, 0, 0); !near(got, 102, 1) {
		t.Errorf("dark = %d, want about 102", got)
	}
	if got := lum(flat, 19, 0); !near(got, 153, 1) {
		t.Errorf("light = %d, want about 153", got)
	}
}

func TestBlur(t *testing.T) {
	img := step(100, 30)
	if out := Blur(0.1).Apply(img); lum(out, 49, 10) != 0 || lum(out, 50, 10) != 255 {
		t.Error("sub-pixel radius should leave the image unchanged")
	}
	out := Blur(1).Apply(img)
	if got := lum(out, 10, 15); !near(got, 0, 1) {
		t.Errorf("far dark pixel = %d, want 0", got)
	}
	if got := lum(out, 90, 15); !near(got, 255, 1) {
		t.Errorf("far light pixel = %d, want 255", got)
	}
	for _, x := range []int{49, 50} {
		if got := lum(out, x, 15); got < 30 || got > 225 {
			t.Errorf("edge pixel %d = %d, want an intermediate value", x, got)
		}
	}
}

func TestSpotLight(t *testing.T) {
	img := uniform(100, 100, 200)
	out := Dim(0.5).Apply(img)
	centre, corner := lum(out, 50, 50), lum(out, 0, 0)
	if !near(centre, 200, 1) {
		t.Errorf("centre = %d, want about 200", centre)
	}
	if corner > centre-50 {
		t.Errorf("corner = %d, want much darker than centre %d", corner, centre)
	}
	shifted := NewSpotLight(0, 0.3).Apply(img)
	if lum(shifted, 0, 50) <= lum(shifted, 99, 50) {
		t.Error("light on the left edge should brighten the left side")
	}
}

func TestWhiteNoise(t *testing.T) {
	img := uniform(32, 32, 128)
	if out := (WhiteNoise{}).Apply(img); lum(out, 5, 5) != 128 {
		t.Error("zero strength should not add noise")
	}
	a := WhiteNoise{Strength: 1, Seed: 7}.Apply(img)
	b := WhiteNoise{Strength: 1, Seed: 7}.Apply(img)
	varied := false
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			va, vb := lum(a, x, y), lum(b, x, y)
			if va != vb {
				t.Fatalf("(%d,%d): %d != %d with equal seeds", x, y, va, vb)
			}
			if !near(va, 128, 38) {
				t.Fatalf("(%d,%d) = %d, outside the noise amplitude", x, y, va)
			}
			if va != 128 {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("noise did not change any pixel")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "none"},
		{"none", "none"},
		{"contrast:0.5", "contrast:0.5"},
		{"intensity:0.5, blur:0.2", "contrast:0.5,blur:0.2"},
		{"noise:0.3,light:0.2", "noise:0.3,spot:0.5:0.5:1"},
		{"spot:0.25:0.3", "spot:0.25:0.5:0.5"},
		{"spot:0.1:0.2:0.3", "spot:0.1:0.2:0.3"},
	}
	for _, test := range tests {
		chain, err := Parse(test.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", test.in, err)
			continue
		}
		if got := chain.String(); got != test.want {
			t.Errorf("Parse(%q) = %q, want %q", test.in, got, test.want)
		}
		again, err := Parse(chain.String())
		if err != nil || again.String() != chain.String() {
			t.Errorf("Parse(%q) does not round trip: %v", chain.String(), err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("sharpen:1"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("err = %v, want ErrUnknownFilter", err)
	}
	for _, in := range []string{"blur", "blur:x", "noise:1:2", "spot:1"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestCases(t *testing.T) {
	const payload = "synthetic payload"
	cases, err := Cases(payload, 120, []string{"none", "noise:0.3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 2 {
		t.Fatalf("len(cases) = %d, want 2", len(cases))
	}
	if cases[1].Group != "noise:0.3" {
		t.Errorf("group = %q", cases[1].Group)
	}
	g := &binarizer.Global{Finder: threshold.Fixed(32)}
	for _, c := range cases {
		if c.Source.Width() != 120 || c.Source.Height() != 120 {
			t.Fatalf("%s: size = %dx%d", c.Name, c.Source.Width(), c.Source.Height())
		}
		m, err := g.Binarize(c.Source)
		if err != nil {
			t.Fatal(err)
		}
		counts, err := eval.Compare(m, c.Truth)
		if err != nil {
			t.Fatal(err)
		}
		if counts.Errors() != 0 {
			t.Errorf("%s (%s): %d misclassified pixels", c.Name, c.Group, counts.Errors())
		}
	}
}

func TestRender(t *testing.T) {
	truth, err := QR("render", 60)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(truth, 10, 240)
	back, err := binbench.ImageToMatrix(img)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equals(truth) {
		t.Error("rendered image does not map back to the truth matrix")
	}
}
