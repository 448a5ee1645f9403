// Package lagrange evaluates the interpolating polynomial through a set of
// nodes using the Lagrange basis. It serves as a baseline against which
// spline interpolation is compared; on equally spaced nodes it exhibits the
// Runge phenomenon near the interval ends.
package lagrange

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty          = errors.New("lagrange: at least one node is required")
	ErrLengthMismatch = errors.New("lagrange: nodes and values must have the same length")
	ErrDuplicateNodes = errors.New("lagrange: nodes must be distinct")
)

// Evaluate returns P(x) for every x in xs, where P is the unique polynomial
// of degree len(nodes)-1 with P(nodes[i]) = values[i].
func Evaluate(nodes, values, xs []float64) ([]float64, error) {
	if len(nodes) == 0 {
		return nil, ErrEmpty
	}
	if len(nodes) != len(values) {
		return nil, fmt.Errorf("%w: %d nodes, %d values", ErrLengthMismatch, len(nodes), len(values))
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i] == nodes[j] {
				return nil, fmt.Errorf("%w: nodes %d and %d are both %g", ErrDuplicateNodes, i, j, nodes[i])
			}
		}
	}

	out := make([]float64, len(xs))
	for k, x := range xs {
		out[k] = eval(nodes, values, x)
	}
	return out, nil
}

func eval(nodes, values []float64, x float64) float64 {
	sum := 0.0
	for i, xi := range nodes {
		if x == xi {
			return values[i]
		}
		basis := 1.0
		for j, xj := range nodes {
			if j != i {
				basis *= (x - xj) / (xi - xj)
			}
		}
		sum += values[i] * basis
	}
	return sum
}
