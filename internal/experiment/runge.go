package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/approx/internal/ivp"
	"github.com/san-kum/approx/internal/lagrange"
	"github.com/san-kum/approx/internal/linalg"
	"github.com/san-kum/approx/internal/spline"
)

// RungeCase holds one interpolation comparison on n+1 equispaced nodes.
type RungeCase struct {
	N        int
	Nodes    []float64
	Values   []float64
	Grid     []float64
	Exact    []float64
	Spline   []float64
	Lagrange []float64
}

func (c RungeCase) SplineMaxError() float64   { return floats.Distance(c.Spline, c.Exact, math.Inf(1)) }
func (c RungeCase) LagrangeMaxError() float64 { return floats.Distance(c.Lagrange, c.Exact, math.Inf(1)) }

type RungeOptions struct {
	Solver  linalg.Solver
	Points  int
	Workers int
	Logger  log.Logger
}

// RungeStudy interpolates the Runge function on [-1, 1] for each node
// count with a natural spline and with the Lagrange polynomial.
func RungeStudy(ctx context.Context, nodeCounts []int, opts RungeOptions) ([]RungeCase, error) {
	if opts.Points < 2 {
		return nil, fmt.Errorf("need at least 2 evaluation points, got %d", opts.Points)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	grid := floats.Span(make([]float64, opts.Points), -1, 1)
	exact := apply(ivp.Runge, grid)

	cases := make([]RungeCase, 0, len(nodeCounts))
	for _, n := range nodeCounts {
		if n < 1 {
			return nil, fmt.Errorf("node count must be at least 1, got %d", n)
		}
		nodes := floats.Span(make([]float64, n+1), -1, 1)
		values := apply(ivp.Runge, nodes)

		s, err := spline.Build(nodes, values, spline.WithSolver(opts.Solver))
		if err != nil {
			return nil, fmt.Errorf("n=%d: %w", n, err)
		}
		sv, err := s.EvalParallel(ctx, grid, opts.Workers)
		if err != nil {
			return nil, err
		}
		lv, err := lagrange.Evaluate(nodes, values, grid)
		if err != nil {
			return nil, fmt.Errorf("n=%d: %w", n, err)
		}

		c := RungeCase{N: n, Nodes: nodes, Values: values, Grid: grid, Exact: exact, Spline: sv, Lagrange: lv}
		level.Debug(logger).Log("msg", "runge case", "n", n, "spline_err", c.SplineMaxError(), "lagrange_err", c.LagrangeMaxError())
		cases = append(cases, c)
	}
	return cases, nil
}

func apply(f func(float64) float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}
