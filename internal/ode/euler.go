package ode

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }
func (e *Euler) Order() int   { return 1 }

func (e *Euler) Step(f Func, t, x, h float64) float64 {
	return x + h*f(t, x)
}
