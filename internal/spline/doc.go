// Package spline builds and evaluates natural cubic interpolating splines.
//
// [Build] assembles the tridiagonal continuity system for the second
// derivatives M_i at the knots, fixes M_0 = M_n = 0 (the natural boundary
// condition) and solves it with a [linalg.Solver]. The resulting [Natural]
// is immutable and safe for concurrent use.
//
// Evaluation locates the containing interval by binary search, so a query
// costs O(log n). Queries outside [t_0, t_n] are answered by extending the
// first or last cubic piece. This extrapolation is a compatibility policy,
// not a numerically meaningful continuation of a natural spline; callers
// that care should restrict queries to the knot range.
//
// Errors:
//
//   - ErrDegenerateInput: fewer than two knots.
//   - ErrLengthMismatch: knots and values differ in length.
//   - ErrNonMonotonicKnots: knots not strictly increasing.
//   - ErrNonFinite: NaN or Inf in the samples.
//   - linalg.ErrSingular (wrapped): the continuity system could not be solved.
package spline
