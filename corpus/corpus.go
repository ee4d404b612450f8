package corpus

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
	"github.com/ericlevine/binbench/eval"
)

// TruthSuffix marks the ground-truth companion of an image:
// photo.jpg pairs with photo.truth.png.
const TruthSuffix = ".truth.png"

// ErrNoImages is returned when a walk finds nothing to evaluate.
var ErrNoImages = errors.New("corpus: no images found")

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

func isImage(name string) bool {
	if strings.HasSuffix(name, TruthSuffix) {
		return false
	}
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

func skipDir(name string) bool {
	return strings.Contains(name, "junk") || strings.Contains(name, "move")
}

// Walk lists the images below root in lexical order. At most limit images
// are taken from each folder when limit is positive. Folders whose names
// contain "junk" or "move" are skipped.
func Walk(root string, limit int) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	var files, dirs []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			if !skipDir(e.Name()) {
				dirs = append(dirs, e.Name())
			}
		case e.Type().IsRegular() && isImage(e.Name()):
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	for _, d := range dirs {
		sub, err := Walk(filepath.Join(root, d), limit)
		if err != nil {
			return nil, err
		}
		files = append(files, sub...)
	}
	return files, nil
}

// Loader turns image files into evaluation cases.
type Loader struct {
	// Root is the corpus directory. Case names and categories are relative
	// to it.
	Root string

	// Scale resizes every image before binarization. 0 and 1 keep the
	// original size.
	Scale float64

	Logger zerolog.Logger
}

// NewLoader creates a Loader for root that logs nothing.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, Scale: 1, Logger: zerolog.Nop()}
}

// Load reads one image with its companions. The ground truth is resized to
// the image when Scale is set.
func (l *Loader) Load(path string) (*eval.Case, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if l.Scale > 0 && l.Scale != 1 {
		b := img.Bounds()
		img = imaging.Resize(img, max(1, int(float64(b.Dx())*l.Scale)), max(1, int(float64(b.Dy())*l.Scale)), imaging.Lanczos)
	}
	img = imaging.Grayscale(img)

	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		rel = path
	}
	c := &eval.Case{
		Name:   filepath.ToSlash(rel),
		Group:  CategoryFromPath(rel).String(),
		Source: binbench.NewImageSource(img),
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if c.Truth, err = loadTruth(base+TruthSuffix, img.Bounds()); err != nil {
		return nil, err
	}
	if text, err := os.ReadFile(base + ".txt"); err == nil {
		c.Expected = strings.TrimSpace(string(text))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	return c, nil
}

func loadTruth(path string, bounds image.Rectangle) (*bitutil.BitMatrix, error) {
	img, err := imaging.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("corpus: truth: %w", err)
	}
	if img.Bounds().Size() != bounds.Size() {
		img = imaging.Resize(img, bounds.Dx(), bounds.Dy(), imaging.NearestNeighbor)
	}
	m, err := binbench.ImageToMatrix(img)
	if err != nil {
		return nil, fmt.Errorf("corpus: truth %s: %w", path, err)
	}
	return m, nil
}

// Cases walks the corpus and loads every image, ordered by category and
// then by name. Unreadable images are logged and skipped. Loading stops
// early when ctx is cancelled.
func (l *Loader) Cases(ctx context.Context, limit int) ([]*eval.Case, error) {
	log := l.Logger.With().Str("component", "corpus").Logger()
	paths, err := Walk(l.Root, limit)
	if err != nil {
		return nil, err
	}
	cases := make([]*eval.Case, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := l.Load(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skipping image")
			continue
		}
		log.Debug().Str("case", c.Name).Int("n", i+1).Int("of", len(paths)).
			Bool("truth", c.Truth != nil).Msg("loaded")
		cases = append(cases, c)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, l.Root)
	}
	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].Group != cases[j].Group {
			return cases[i].Group < cases[j].Group
		}
		return cases[i].Name < cases[j].Name
	})
	log.Info().Int("cases", len(cases)).Msg("corpus loaded")
	return cases, nil
}
