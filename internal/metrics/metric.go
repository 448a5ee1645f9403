package metrics

import "github.com/san-kum/approx/internal/ode"

// Metric accumulates a statistic over the samples of a trajectory. Every
// Metric is an ode.Observer and can be passed to ode.WithObserver.
type Metric interface {
	ode.Observer
	Name() string
	Value() float64
	Reset()
}

// Exact is a reference solution x(t).
type Exact func(t float64) float64

// Default returns the metrics recorded for a run against a known solution.
// Without one only the finiteness check applies.
func Default(exact Exact) []Metric {
	ms := []Metric{NewFinite()}
	if exact != nil {
		ms = append(ms, NewMaxAbsError(exact), NewRMSError(exact), NewFinalError(exact))
	}
	return ms
}

// Collect returns name -> value for each metric.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
