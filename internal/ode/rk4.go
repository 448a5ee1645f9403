package ode

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }

func (r *RK4) Step(f Func, t, x, h float64) float64 {
	half := 0.5 * h
	k1 := f(t, x)
	k2 := f(t+half, x+half*k1)
	k3 := f(t+half, x+half*k2)
	k4 := f(t+h, x+h*k3)
	return x + h/6*(k1+2*k2+2*k3+k4)
}
