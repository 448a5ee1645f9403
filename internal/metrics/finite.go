package metrics

import "math"

// Finite reports the fraction of samples that are neither NaN nor Inf.
// Integrators do not trap non-finite values, so this is how a caller
// notices a right-hand side that blew up.
type Finite struct {
	name    string
	bad     int
	samples int
}

func NewFinite() *Finite {
	return &Finite{name: "finite"}
}

func (f *Finite) Name() string { return f.name }

func (f *Finite) Observe(t, x float64) {
	f.samples++
	if math.IsNaN(x) || math.IsInf(x, 0) {
		f.bad++
	}
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.bad)/float64(f.samples)
}

func (f *Finite) Reset() {
	f.bad = 0
	f.samples = 0
}
