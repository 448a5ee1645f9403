package spline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny batches on a single goroutine.
const minChunk = 256

// EvalParallel evaluates xs across up to workers goroutines. Results are
// identical to EvalAll. workers <= 0 uses GOMAXPROCS.
func (s *Natural) EvalParallel(ctx context.Context, xs []float64, workers int) ([]float64, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]float64, len(xs))
	if len(xs) <= minChunk || workers == 1 {
		for k, x := range xs {
			out[k] = s.Eval(x)
		}
		return out, ctx.Err()
	}

	chunk := (len(xs) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(xs); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(xs))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for k := lo; k < hi; k++ {
				out[k] = s.Eval(xs[k])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
