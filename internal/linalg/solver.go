package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PivotTolerance is the smallest pivot, relative to its row's magnitude,
// the Thomas solver accepts.
const PivotTolerance = 1e-14

type Solver interface {
	Name() string
	Solve(a *Tridiagonal, b []float64) ([]float64, error)
}

type Thomas struct{}

func NewThomas() *Thomas {
	return &Thomas{}
}

func (t *Thomas) Name() string { return "thomas" }

func (t *Thomas) Solve(a *Tridiagonal, b []float64) ([]float64, error) {
	if err := a.validate(b); err != nil {
		return nil, err
	}
	n := a.Size()

	c := make([]float64, n)
	x := make([]float64, n)

	denom := a.Diag[0]
	if err := checkPivot(a, 0, denom); err != nil {
		return nil, err
	}
	if n > 1 {
		c[0] = a.Super[0] / denom
	}
	x[0] = b[0] / denom

	for i := 1; i < n; i++ {
		denom = a.Diag[i] - a.Sub[i]*c[i-1]
		if err := checkPivot(a, i, denom); err != nil {
			return nil, err
		}
		if i < n-1 {
			c[i] = a.Super[i] / denom
		}
		x[i] = (b[i] - a.Sub[i]*x[i-1]) / denom
	}

	for i := n - 2; i >= 0; i-- {
		x[i] -= c[i] * x[i+1]
	}
	return x, nil
}

func checkPivot(a *Tridiagonal, i int, pivot float64) error {
	scale := math.Abs(a.Diag[i])
	if i > 0 {
		scale += math.Abs(a.Sub[i])
	}
	if i < a.Size()-1 {
		scale += math.Abs(a.Super[i])
	}
	if scale == 0 || math.Abs(pivot) <= PivotTolerance*scale || math.IsNaN(pivot) {
		return fmt.Errorf("%w: pivot %g at row %d", ErrSingular, pivot, i)
	}
	return nil
}

type Dense struct{}

func NewDense() *Dense {
	return &Dense{}
}

func (d *Dense) Name() string { return "dense" }

func (d *Dense) Solve(a *Tridiagonal, b []float64) ([]float64, error) {
	if err := a.validate(b); err != nil {
		return nil, err
	}
	rhs := make([]float64, len(b))
	copy(rhs, b)

	var x mat.VecDense
	if err := x.SolveVec(a.Dense(), mat.NewVecDense(len(rhs), rhs)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) || errors.Is(err, mat.ErrSingular) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return nil, err
	}
	return mat.Col(nil, 0, &x), nil
}

// Lookup returns the solver registered under name.
func Lookup(name string) (Solver, error) {
	switch name {
	case "", "thomas":
		return NewThomas(), nil
	case "dense":
		return NewDense(), nil
	default:
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
}

// Solvers lists the names accepted by Lookup.
func Solvers() []string {
	return []string{"thomas", "dense"}
}
