package experiment

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/approx/internal/ivp"
	"github.com/san-kum/approx/internal/metrics"
	"github.com/san-kum/approx/internal/ode"
)

type ConvergenceRow struct {
	Method     string
	StepSize   float64
	Steps      int
	FinalError float64
	MaxError   float64
	// Order is the observed order against the previous (coarser) row of
	// the same method; NaN for the first row.
	Order float64
}

// ConvergenceStudy integrates def with every named method at each step size
// and reports the error against the exact solution. Step sizes are processed
// from coarse to fine.
func ConvergenceStudy(ctx context.Context, def ivp.Definition, methods []string, steps []float64, logger log.Logger) ([]ConvergenceRow, error) {
	if def.Exact == nil {
		return nil, fmt.Errorf("problem %q has no exact solution", def.Name)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("no step sizes given")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	hs := append([]float64(nil), steps...)
	sort.Sort(sort.Reverse(sort.Float64Slice(hs)))

	problems := make([]ode.Problem, len(hs))
	for i, h := range hs {
		problems[i] = def.Problem(h)
	}

	rows := make([]ConvergenceRow, 0, len(methods)*len(hs))
	for _, name := range methods {
		newStepper, err := ode.Factory(name)
		if err != nil {
			return nil, err
		}
		trs, err := ode.IntegrateAll(ctx, problems, newStepper)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		for i, tr := range trs {
			maxErr := metrics.NewMaxAbsError(def.Exact)
			final := metrics.NewFinalError(def.Exact)
			for k := range tr.Times {
				maxErr.Observe(tr.Times[k], tr.States[k])
				final.Observe(tr.Times[k], tr.States[k])
			}

			row := ConvergenceRow{
				Method:     name,
				StepSize:   hs[i],
				Steps:      tr.Len() - 1,
				FinalError: final.Value(),
				MaxError:   maxErr.Value(),
				Order:      math.NaN(),
			}
			if i > 0 {
				prev := rows[len(rows)-1]
				row.Order = metrics.Order(prev.FinalError, row.FinalError, prev.StepSize, row.StepSize)
			}
			rows = append(rows, row)
		}
		level.Debug(logger).Log("msg", "convergence sweep done", "problem", def.Name, "method", name, "runs", len(trs))
	}
	return rows, nil
}
