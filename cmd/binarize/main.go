// Command binarize runs one binarization strategy on an image, writes the
// black and white result and optionally scores it against a ground truth.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/binarizer"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/decode"
	"github.com/ericlevine/binbench/eval"
	"github.com/ericlevine/binbench/internal/logger"
	"github.com/ericlevine/binbench/report"
	"github.com/ericlevine/binbench/threshold"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "binarize: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	strategy  binarizer.Config
	truth     string
	out       string
	diff      string
	diffRad   int
	histogram string
	decoder   string
	scale     float64
	logLevel  string
}

func run(args []string, stdout io.Writer) error {
	var o options
	fs := flag.NewFlagSet("binarize", flag.ContinueOnError)
	fs.StringVar(&o.strategy.Kind, "strategy", "global", "strategy kind (global, simplewindow, fastwindow, noisewindow, split, movingotsu, hybrid, sauvola, localaverage)")
	fs.StringVar(&o.strategy.Finder, "finder", "", "threshold finder for global and split (average, median, otsu, kittler, kapur, twopeak, fixed:<n>)")
	fs.Float64Var(&o.strategy.Fraction, "fraction", 0, "window size as a fraction of the image, 0 for the default")
	fs.IntVar(&o.strategy.BlockSize, "block-size", 0, "block size for block strategies, 0 for the default")
	fs.StringVar(&o.truth, "truth", "", "ground truth image; dark pixels are foreground")
	fs.StringVar(&o.out, "out", "", "write the binarized image")
	fs.StringVar(&o.diff, "diff", "", "write a diff against the ground truth")
	fs.IntVar(&o.diffRad, "diff-radius", 0, "shade diff errors by density within this radius")
	fs.StringVar(&o.histogram, "histogram", "", "write the luminance histogram chart as PNG")
	fs.StringVar(&o.decoder, "decode", "qr", "decoder: qr, multi or none")
	fs.Float64Var(&o.scale, "scale", 1, "resize the image by this factor first")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: binarize [flags] <image-file>\n\n")
		fmt.Fprintf(fs.Output(), "Binarize an image (PNG, JPEG, BMP, TIFF) and report its quality.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one image file is required")
	}
	if o.diff != "" && o.truth == "" {
		return errors.New("-diff needs -truth")
	}
	if o.scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", o.scale)
	}
	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}

	b, err := binarizer.New(o.strategy)
	if err != nil {
		return err
	}
	img, err := openGray(fs.Arg(0), o.scale)
	if err != nil {
		return err
	}
	c := &eval.Case{Name: fs.Arg(0), Source: binbench.NewImageSource(img)}
	if o.truth != "" {
		if c.Truth, err = loadTruth(o.truth, img.Bounds()); err != nil {
			return err
		}
	}

	ev := eval.NewEvaluator(nil)
	ev.KeepMatrix = true
	ev.Logger = logger.NewConsole(level)
	if o.decoder != "none" {
		if ev.Decoder, err = decode.New(o.decoder); err != nil {
			return err
		}
	}
	r := ev.Evaluate(b, c)
	printResult(stdout, r, c.Truth != nil)
	if r.Err != nil {
		return r.Err
	}

	if o.out != "" {
		if err := imaging.Save(binbench.MatrixToImage(r.Matrix), o.out); err != nil {
			return err
		}
	}
	if o.diff != "" {
		d, err := eval.ShadedDiffImage(r.Matrix, c.Truth, o.diffRad)
		if err != nil {
			return err
		}
		if err := imaging.Save(d, o.diff); err != nil {
			return err
		}
	}
	if o.histogram != "" {
		if err := writeHistogram(o.histogram, c.Source, b, o.strategy.Finder); err != nil {
			return err
		}
	}
	return nil
}

func openGray(path string, scale float64) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if scale != 1 {
		b := img.Bounds()
		img = imaging.Resize(img, max(1, int(float64(b.Dx())*scale)), max(1, int(float64(b.Dy())*scale)), imaging.Lanczos)
	}
	return imaging.Grayscale(img), nil
}

func loadTruth(path string, bounds image.Rectangle) (*bitutil.BitMatrix, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Size() != bounds.Size() {
		img = imaging.Resize(img, bounds.Dx(), bounds.Dy(), imaging.NearestNeighbor)
	}
	return binbench.ImageToMatrix(img)
}

func printResult(w io.Writer, r eval.Result, scored bool) {
	fmt.Fprintf(w, "strategy: %s\n", r.Strategy)
	if r.Err != nil {
		fmt.Fprintf(w, "error:    %v\n", r.Err)
		return
	}
	fmt.Fprintf(w, "binarize: %v\n", r.BinarizeTime)
	fmt.Fprintf(w, "total:    %v\n", r.TotalTime)
	if scored {
		fmt.Fprintf(w, "score:    %.6f (false black %d, false white %d of %d)\n",
			r.Score(), r.FalseBlack, r.FalseWhite, r.Pixels())
	}
	if r.Decoded {
		fmt.Fprintf(w, "decoded:  %s\n", r.Text)
	} else {
		fmt.Fprintf(w, "decoded:  no\n")
	}
}

// writeHistogram marks the black point of global strategies, or of the
// requested finder otherwise.
func writeHistogram(path string, src binbench.LuminanceSource, b binbench.Binarizer, finder string) error {
	var h threshold.Histogram
	h.AddFull(src)
	blackPoint := -1
	if g, ok := b.(*binarizer.Global); ok {
		blackPoint = g.BlackPoint(src)
	} else if finder != "" {
		f, err := threshold.Lookup(finder)
		if err != nil {
			return err
		}
		blackPoint = f.FindThreshold(h.Counts[:]) << threshold.LuminanceShift
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.HistogramChart(f, &h, blackPoint); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
