package metrics

import "math"

type MaxAbsError struct {
	name  string
	exact Exact
	max   float64
}

func NewMaxAbsError(exact Exact) *MaxAbsError {
	return &MaxAbsError{name: "max_abs_error", exact: exact}
}

func (m *MaxAbsError) Name() string { return m.name }

func (m *MaxAbsError) Observe(t, x float64) {
	d := math.Abs(x - m.exact(t))
	// NaN must win over any finite error.
	if d > m.max || math.IsNaN(d) {
		m.max = d
	}
}

func (m *MaxAbsError) Value() float64 { return m.max }
func (m *MaxAbsError) Reset()         { m.max = 0 }

type RMSError struct {
	name    string
	exact   Exact
	sumSq   float64
	samples int
}

func NewRMSError(exact Exact) *RMSError {
	return &RMSError{name: "rms_error", exact: exact}
}

func (r *RMSError) Name() string { return r.name }

func (r *RMSError) Observe(t, x float64) {
	d := x - r.exact(t)
	r.sumSq += d * d
	r.samples++
}

func (r *RMSError) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSError) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// FinalError is |x_N - x(t_N)| at the last observed sample.
type FinalError struct {
	name  string
	exact Exact
	last  float64
}

func NewFinalError(exact Exact) *FinalError {
	return &FinalError{name: "final_error", exact: exact}
}

func (f *FinalError) Name() string { return f.name }

func (f *FinalError) Observe(t, x float64) { f.last = math.Abs(x - f.exact(t)) }

func (f *FinalError) Value() float64 { return f.last }
func (f *FinalError) Reset()         { f.last = 0 }

// Order estimates the convergence order p from errors measured at two step
// sizes, assuming e ≈ C·h^p.
func Order(coarseErr, fineErr, coarseH, fineH float64) float64 {
	if coarseErr <= 0 || fineErr <= 0 || coarseH <= fineH {
		return math.NaN()
	}
	return math.Log(coarseErr/fineErr) / math.Log(coarseH/fineH)
}
