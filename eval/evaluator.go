package eval

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/bitutil"
)

// Decoder extracts a payload from a binarized matrix. It returns
// binbench.ErrNotFound when no symbol is present.
type Decoder interface {
	Decode(m *bitutil.BitMatrix) (string, error)
}

// Case is one input image with its optional ground truth and expected
// payload.
type Case struct {
	Name     string
	Group    string
	Source   binbench.LuminanceSource
	Truth    *bitutil.BitMatrix
	Expected string
}

// Result is the outcome of running one strategy on one case.
type Result struct {
	Strategy string
	Case     string
	Group    string

	Counts
	BinarizeTime time.Duration
	TotalTime    time.Duration
	Decoded      bool
	Text         string
	Err          error

	// Matrix is the produced matrix when the Evaluator keeps it.
	Matrix *bitutil.BitMatrix
}

// Scored reports whether the result was compared with a ground truth.
func (r Result) Scored() bool {
	return r.Err == nil && r.Pixels() > 0
}

// Score returns the fraction of misclassified pixels. 0 is perfect; results
// that are not Scored also return 0.
func (r Result) Score() float64 {
	n := r.Pixels()
	if n == 0 {
		return 0
	}
	return float64(r.Errors()) / float64(n)
}

// Evaluator runs a strategy on a case and scores the output.
type Evaluator struct {
	// Decoder is optional. Without one, no case counts as decoded.
	Decoder Decoder

	// KeepMatrix stores the produced matrix in each Result.
	KeepMatrix bool

	Logger zerolog.Logger
}

// NewEvaluator creates an Evaluator that logs nothing.
func NewEvaluator(d Decoder) *Evaluator {
	return &Evaluator{Decoder: d, Logger: zerolog.Nop()}
}

// Evaluate binarizes c with b, compares the output with the ground truth and
// runs the decoder. BinarizeTime covers Binarize alone; TotalTime also covers
// comparison and decoding. Failures are recorded in the Result.
func (e *Evaluator) Evaluate(b binbench.Binarizer, c *Case) Result {
	r := Result{Strategy: b.String(), Case: c.Name, Group: c.Group}
	log := e.Logger.With().Str("component", "evaluator").Str("strategy", r.Strategy).Str("case", c.Name).Logger()

	start := time.Now()
	m, err := b.Binarize(c.Source)
	r.BinarizeTime = time.Since(start)
	if err != nil {
		r.Err = err
		r.TotalTime = time.Since(start)
		log.Debug().Err(err).Msg("binarize failed")
		return r
	}

	counts, err := Compare(m, c.Truth)
	if err != nil {
		r.Err = fmt.Errorf("compare: %w", err)
	}
	r.Counts = counts

	if e.Decoder != nil {
		text, err := e.Decoder.Decode(m)
		r.Text = text
		switch {
		case err != nil:
			log.Debug().Err(err).Msg("not decoded")
		case c.Expected != "" && text != c.Expected:
			log.Warn().Str("got", text).Str("want", c.Expected).Msg("false positive")
		default:
			r.Decoded = true
		}
	}
	r.TotalTime = time.Since(start)
	if e.KeepMatrix {
		r.Matrix = m
	}
	return r
}
