package cumulative

import (
	"context"
	"errors"
	"fmt"

	"matchup-model/core/diag"
	"matchup-model/core/model"

	"golang.org/x/sync/errgroup"
)

// ErrEmptyInput is returned when a document or a batch has nothing to parse.
var ErrEmptyInput = errors.New("empty input")

// Options controls extraction.
type Options struct {
	YearStrategy YearStrategy
	// Noise defaults to the standard filter when nil.
	Noise *NoiseFilter
	// Workers bounds concurrent documents in ExtractAll. Values below 1 mean 1.
	Workers int
}

func (o Options) noise() *NoiseFilter {
	if o.Noise == nil {
		return defaultNoise
	}
	return o.Noise
}

// Result is the extraction output of one document.
type Result struct {
	Context      model.EventContext
	Blocks       int
	Observations []model.Observation
}

// Teams returns the distinct team codes in block order.
func (r Result) Teams() []string {
	seen := make(map[string]struct{})
	var teams []string
	for _, o := range r.Observations {
		if _, ok := seen[o.Team]; ok {
			continue
		}
		seen[o.Team] = struct{}{}
		teams = append(teams, o.Team)
	}
	return teams
}

// Extract segments and parses one document.
func Extract(doc Document, opts Options, diags *diag.Diagnostics) (Result, error) {
	if doc.Empty() {
		return Result{}, fmt.Errorf("%s: %w", doc.Name, ErrEmptyInput)
	}

	noise := opts.noise()
	ctx := noise.InferContext(doc, opts.YearStrategy)
	blocks := noise.Segment(doc, diags)

	res := Result{Context: ctx, Blocks: len(blocks)}
	for _, b := range blocks {
		res.Observations = append(res.Observations, ParseBlock(b, ctx, diags)...)
	}
	return res, nil
}

// ExtractAll extracts documents concurrently. Results keep the input order.
// Cancelling ctx stops further documents from being started.
func ExtractAll(ctx context.Context, docs []Document, opts Options, diags *diag.Diagnostics) ([]Result, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyInput
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Extract(doc, opts, diags)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Observations flattens the observations of all results.
func Observations(results []Result) []model.Observation {
	var out []model.Observation
	for _, r := range results {
		out = append(out, r.Observations...)
	}
	return out
}
