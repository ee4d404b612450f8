package eval

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ericlevine/binbench"
	"github.com/ericlevine/binbench/binarizer"
)

// Runner evaluates every strategy on every case. Each worker builds its own
// strategy instances and decoder, so scratch buffers are never shared.
type Runner struct {
	Strategies []binarizer.Config

	// NewDecoder builds a decoder per worker. Nil disables decoding.
	NewDecoder func() Decoder

	Workers    int
	WarmUp     int
	KeepMatrix bool
	Logger     zerolog.Logger
}

// NewRunner creates a single-worker Runner that logs nothing.
func NewRunner(strategies []binarizer.Config) *Runner {
	return &Runner{Strategies: strategies, Workers: 1, Logger: zerolog.Nop()}
}

// Run returns one Result per case and strategy, ordered by case and then by
// strategy. The first WarmUp cases are run once untimed by every worker
// before measuring. Cancelling ctx stops work between cases.
func (r *Runner) Run(ctx context.Context, cases []*Case) ([]Result, error) {
	log := r.Logger.With().Str("component", "runner").Logger()
	if len(r.Strategies) == 0 {
		return nil, nil
	}
	// Validate the configuration once before starting workers.
	for _, c := range r.Strategies {
		if _, err := binarizer.New(c); err != nil {
			return nil, err
		}
	}

	workers := max(r.Workers, 1)
	n := len(r.Strategies)
	results := make([]Result, len(cases)*n)
	jobs := make(chan int)
	start := time.Now()
	log.Info().Int("cases", len(cases)).Int("strategies", n).Int("workers", workers).Msg("starting run")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range cases {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			strategies := make([]binbench.Binarizer, n)
			for i, c := range r.Strategies {
				b, err := binarizer.New(c)
				if err != nil {
					return err
				}
				strategies[i] = b
			}
			ev := &Evaluator{KeepMatrix: r.KeepMatrix, Logger: r.Logger}
			if r.NewDecoder != nil {
				ev.Decoder = r.NewDecoder()
			}
			for i := 0; i < min(r.WarmUp, len(cases)); i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, b := range strategies {
					ev.Evaluate(b, cases[i])
				}
			}
			for i := range jobs {
				for j, b := range strategies {
					results[i*n+j] = ev.Evaluate(b, cases[i])
				}
				log.Debug().Str("case", cases[i].Name).Msg("evaluated")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("run complete")
	return results, nil
}
