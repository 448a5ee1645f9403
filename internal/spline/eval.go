package spline

import "sort"

// interval returns i with t_i <= x < t_{i+1}, clamped to the first and last
// piece for x outside the knot range.
func (s *Natural) interval(x float64) int {
	// SearchFloat64s gives the first index with knots[j] >= x; step back one
	// unless x sits exactly on that knot.
	j := sort.SearchFloat64s(s.knots, x)
	i := j - 1
	if j < len(s.knots) && s.knots[j] == x {
		i = j
	}
	if i < 0 {
		i = 0
	}
	if n := s.Intervals(); i >= n {
		i = n - 1
	}
	return i
}

// Eval returns S(x).
func (s *Natural) Eval(x float64) float64 {
	i := s.interval(x)
	h := s.h[i]
	a := s.knots[i+1] - x
	b := x - s.knots[i]
	mi, mj := s.m[i], s.m[i+1]

	return mi/(6*h)*a*a*a +
		mj/(6*h)*b*b*b +
		(s.values[i]/h-mi*h/6)*a +
		(s.values[i+1]/h-mj*h/6)*b
}

// Deriv returns S'(x) on the piece that Eval would use for x.
func (s *Natural) Deriv(x float64) float64 {
	i := s.interval(x)
	h := s.h[i]
	a := s.knots[i+1] - x
	b := x - s.knots[i]
	mi, mj := s.m[i], s.m[i+1]

	return -mi/(2*h)*a*a +
		mj/(2*h)*b*b -
		(s.values[i]/h - mi*h/6) +
		(s.values[i+1]/h - mj*h/6)
}

// SecondDeriv returns S''(x) on the piece that Eval would use for x.
func (s *Natural) SecondDeriv(x float64) float64 {
	i := s.interval(x)
	h := s.h[i]
	return (s.m[i]*(s.knots[i+1]-x) + s.m[i+1]*(x-s.knots[i])) / h
}

// EvalAll evaluates the spline at every query point. Queries need not be
// sorted.
func (s *Natural) EvalAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for k, x := range xs {
		out[k] = s.Eval(x)
	}
	return out
}

// Evaluate is the functional form of EvalAll.
func Evaluate(s *Natural, xs []float64) []float64 {
	return s.EvalAll(xs)
}
