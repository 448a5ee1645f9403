// Package linalg solves the small banded linear systems that arise when
// fitting interpolating splines.
//
// A [Tridiagonal] matrix is stored as three flat diagonals. Two [Solver]
// implementations are provided:
//
//   - [Thomas]: O(n) forward elimination / back substitution, no pivoting.
//     Suitable for diagonally dominant systems such as spline continuity
//     equations.
//   - [Dense]: expands the matrix into a gonum mat.Dense and solves it with
//     LU decomposition. O(n³); used as a reference and for systems where the
//     Thomas recurrence is not stable.
//
// Both report [ErrSingular] rather than returning a meaningless solution.
package linalg
