package ode

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Option func(*settings)

type settings struct {
	observers []Observer
}

// WithObserver registers o to receive every (t, x) sample.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// Integrate solves p with stepper s and returns the N+1 sample trajectory.
func Integrate(p Problem, s Stepper, opts ...Option) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	n := p.Steps()
	tr := &Trajectory{
		Times:  grid(p, n),
		States: make([]float64, n+1),
	}

	x := p.X0
	tr.States[0] = x
	cfg.notify(tr.Times[0], x)

	for k := 0; k < n; k++ {
		x = s.Step(p.F, tr.Times[k], x, p.H)
		tr.States[k+1] = x
		cfg.notify(tr.Times[k+1], x)
	}
	return tr, nil
}

func (s *settings) notify(t, x float64) {
	for _, o := range s.observers {
		o.Observe(t, x)
	}
}

// Grid returns the N+1 sample times Integrate uses for p.
func (p Problem) Grid() []float64 { return grid(p, p.Steps()) }

// grid spaces n+1 times evenly from t0 to t0+n*h. The last time is snapped
// to tf when they agree up to rounding, so it never drifts past tf.
func grid(p Problem, n int) []float64 {
	times := make([]float64, n+1)
	if n == 0 {
		times[0] = p.T0
		return times
	}
	end := p.T0 + float64(n)*p.H
	if math.Abs(end-p.Tf) <= 1e-9*math.Max(1, math.Abs(p.Tf)) {
		end = p.Tf
	}
	return floats.Span(times, p.T0, end)
}

// IntegrateEuler integrates dx/dt = f(t, x) from (t0, x0) to tf with
// explicit Euler steps of size h.
func IntegrateEuler(f Func, x0, t0, tf, h float64) ([]float64, []float64, error) {
	return integrateWith(NewEuler(), f, x0, t0, tf, h)
}

// IntegrateRK4 integrates dx/dt = f(t, x) from (t0, x0) to tf with
// classical Runge-Kutta steps of size h.
func IntegrateRK4(f Func, x0, t0, tf, h float64) ([]float64, []float64, error) {
	return integrateWith(NewRK4(), f, x0, t0, tf, h)
}

func integrateWith(s Stepper, f Func, x0, t0, tf, h float64) ([]float64, []float64, error) {
	tr, err := Integrate(Problem{F: f, T0: t0, X0: x0, Tf: tf, H: h}, s)
	if err != nil {
		return nil, nil, err
	}
	return tr.Times, tr.States, nil
}
