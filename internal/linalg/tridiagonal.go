package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tridiagonal is an n×n matrix with nonzero entries only on the main diagonal
// and its two neighbours. Sub[i] holds A[i][i-1] and Super[i] holds A[i][i+1];
// Sub[0] and Super[n-1] lie outside the matrix and are ignored.
type Tridiagonal struct {
	Sub, Diag, Super []float64
}

func NewTridiagonal(n int) *Tridiagonal {
	return &Tridiagonal{
		Sub:   make([]float64, n),
		Diag:  make([]float64, n),
		Super: make([]float64, n),
	}
}

func (a *Tridiagonal) Size() int { return len(a.Diag) }

// SetRow writes the three band entries of row i.
func (a *Tridiagonal) SetRow(i int, sub, diag, super float64) {
	a.Sub[i] = sub
	a.Diag[i] = diag
	a.Super[i] = super
}

func (a *Tridiagonal) validate(b []float64) error {
	n := a.Size()
	if n == 0 {
		return fmt.Errorf("%w: empty system", ErrDimension)
	}
	if len(a.Sub) != n || len(a.Super) != n {
		return fmt.Errorf("%w: diagonals of length %d/%d/%d", ErrDimension, len(a.Sub), n, len(a.Super))
	}
	if len(b) != n {
		return fmt.Errorf("%w: matrix is %dx%d, rhs has %d entries", ErrDimension, n, n, len(b))
	}
	return nil
}

// Dense expands the band into a full gonum matrix.
func (a *Tridiagonal) Dense() *mat.Dense {
	n := a.Size()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		if i > 0 {
			d.Set(i, i-1, a.Sub[i])
		}
		d.Set(i, i, a.Diag[i])
		if i < n-1 {
			d.Set(i, i+1, a.Super[i])
		}
	}
	return d
}

// MulVec returns A·x.
func (a *Tridiagonal) MulVec(x []float64) []float64 {
	n := a.Size()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := a.Diag[i] * x[i]
		if i > 0 {
			v += a.Sub[i] * x[i-1]
		}
		if i < n-1 {
			v += a.Super[i] * x[i+1]
		}
		out[i] = v
	}
	return out
}
