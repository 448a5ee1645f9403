package ode

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidStep reports a non-positive step size or an empty interval.
	ErrInvalidStep = errors.New("ode: invalid step size or interval")
	// ErrNilFunc reports a problem without a right-hand side.
	ErrNilFunc = errors.New("ode: right-hand side is nil")
	// ErrTooManySteps reports a grid larger than MaxSteps.
	ErrTooManySteps = errors.New("ode: step count exceeds limit")
)

// MaxSteps bounds the size of a single trajectory.
const MaxSteps = 50_000_000

// Func is the right-hand side f(t, x) of dx/dt = f(t, x).
type Func func(t, x float64) float64

type Problem struct {
	F  Func
	T0 float64
	X0 float64
	Tf float64
	H  float64
}

func (p Problem) Validate() error {
	if p.F == nil {
		return ErrNilFunc
	}
	if !finite(p.H) || p.H <= 0 {
		return fmt.Errorf("%w: h must be positive, got %g", ErrInvalidStep, p.H)
	}
	if !finite(p.T0) || !finite(p.Tf) || !(p.Tf > p.T0) {
		return fmt.Errorf("%w: need t0 < tf, got [%g, %g]", ErrInvalidStep, p.T0, p.Tf)
	}
	if n := (p.Tf - p.T0) / p.H; n > MaxSteps {
		return fmt.Errorf("%w: %.0f steps requested, limit %d", ErrTooManySteps, n, MaxSteps)
	}
	return nil
}

// Steps returns N = floor((tf-t0)/h). A quotient within rounding of an
// integer counts as that integer, so 0.3/0.1 yields 3.
func (p Problem) Steps() int {
	r := (p.Tf - p.T0) / p.H
	if near := math.Round(r); math.Abs(r-near) <= 1e-9*math.Max(1, near) {
		return int(near)
	}
	return int(math.Floor(r))
}

// Trajectory is the sampled solution: States[k] approximates x(Times[k]).
type Trajectory struct {
	Times  []float64
	States []float64
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Final returns the last sample.
func (tr *Trajectory) Final() (float64, float64) {
	n := len(tr.Times) - 1
	return tr.Times[n], tr.States[n]
}

// Observer receives every sample of a trajectory in order, including the
// initial condition.
type Observer interface {
	Observe(t, x float64)
}

type ObserverFunc func(t, x float64)

func (f ObserverFunc) Observe(t, x float64) { f(t, x) }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
