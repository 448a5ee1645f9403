package spline

import (
	"fmt"
	"math"

	"github.com/san-kum/approx/internal/linalg"
)

// Natural is a natural cubic spline through a fixed set of samples.
type Natural struct {
	knots  []float64
	values []float64
	h      []float64
	m      []float64
}

type Option func(*options)

type options struct {
	solver linalg.Solver
}

// WithSolver overrides the linear solver used for the second derivatives.
func WithSolver(s linalg.Solver) Option {
	return func(o *options) {
		if s != nil {
			o.solver = s
		}
	}
}

// Build fits a natural cubic spline through (knots[i], values[i]).
// The inputs are copied.
func Build(knots, values []float64, opts ...Option) (*Natural, error) {
	o := options{solver: linalg.NewThomas()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(knots) != len(values) {
		return nil, fmt.Errorf("%w: %d knots, %d values", ErrLengthMismatch, len(knots), len(values))
	}
	if len(knots) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerateInput, len(knots))
	}

	s := &Natural{
		knots:  append([]float64(nil), knots...),
		values: append([]float64(nil), values...),
	}
	for i := range s.knots {
		if !isFinite(s.knots[i]) || !isFinite(s.values[i]) {
			return nil, fmt.Errorf("%w: sample %d is (%g, %g)", ErrNonFinite, i, s.knots[i], s.values[i])
		}
	}

	n := len(s.knots) - 1
	s.h = make([]float64, n)
	for i := 0; i < n; i++ {
		s.h[i] = s.knots[i+1] - s.knots[i]
		if s.h[i] <= 0 {
			return nil, fmt.Errorf("%w: t[%d]=%g, t[%d]=%g", ErrNonMonotonicKnots, i, s.knots[i], i+1, s.knots[i+1])
		}
	}

	a, b := s.system()
	m, err := o.solver.Solve(a, b)
	if err != nil {
		return nil, fmt.Errorf("spline: solving for second derivatives: %w", err)
	}
	// The boundary rows pin these already; clear any rounding residue.
	m[0], m[n] = 0, 0
	s.m = m

	return s, nil
}

// system assembles the (n+1)x(n+1) continuity equations for M.
func (s *Natural) system() (*linalg.Tridiagonal, []float64) {
	n := len(s.h)
	a := linalg.NewTridiagonal(n + 1)
	b := make([]float64, n+1)

	a.SetRow(0, 0, 1, 0)
	a.SetRow(n, 0, 1, 0)

	y, h := s.values, s.h
	for i := 1; i < n; i++ {
		a.SetRow(i, h[i-1], 2*(h[i-1]+h[i]), h[i])
		b[i] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}
	return a, b
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Knots returns a copy of the knot positions.
func (s *Natural) Knots() []float64 { return append([]float64(nil), s.knots...) }

// Values returns a copy of the sample values.
func (s *Natural) Values() []float64 { return append([]float64(nil), s.values...) }

// SecondDerivatives returns a copy of M, the spline's second derivative at
// each knot.
func (s *Natural) SecondDerivatives() []float64 { return append([]float64(nil), s.m...) }

// Intervals is the number of cubic pieces, one less than the knot count.
func (s *Natural) Intervals() int { return len(s.h) }

// Domain returns the first and last knot.
func (s *Natural) Domain() (float64, float64) {
	return s.knots[0], s.knots[len(s.knots)-1]
}
