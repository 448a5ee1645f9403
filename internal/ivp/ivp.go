// Package ivp catalogues scalar initial-value problems with closed-form
// solutions, used to measure the accuracy of the fixed-step integrators.
package ivp

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/approx/internal/ode"
)

// Definition is a right-hand side, its default initial condition and
// interval, and the exact solution through that initial condition.
type Definition struct {
	Name        string
	Description string
	F           ode.Func
	Exact       func(t float64) float64
	T0          float64
	X0          float64
	Tf          float64
}

// Problem binds the definition to step size h.
func (d Definition) Problem(h float64) ode.Problem {
	return ode.Problem{F: d.F, T0: d.T0, X0: d.X0, Tf: d.Tf, H: h}
}

var catalog = map[string]Definition{
	"decay": {
		Name:        "decay",
		Description: "x' = -x, x(0) = 1",
		F:           func(t, x float64) float64 { return -x },
		Exact:       func(t float64) float64 { return math.Exp(-t) },
		T0:          0,
		X0:          1,
		Tf:          1,
	},
	"ivp1": {
		Name:        "ivp1",
		Description: "x' = 2 - 2x - e^(-4t), x(0) = 1",
		F:           func(t, x float64) float64 { return 2 - 2*x - math.Exp(-4*t) },
		Exact: func(t float64) float64 {
			return 1 + 0.5*math.Exp(-4*t) - 0.5*math.Exp(-2*t)
		},
		T0: 0,
		X0: 1,
		Tf: 5,
	},
	"ivp2": {
		Name:        "ivp2",
		Description: "x' = x + 5e^(t/2)cos(5t) - 0.5e^(t/2)sin(5t), x(0) = 0",
		F: func(t, x float64) float64 {
			g := math.Exp(t / 2)
			return x + 5*g*math.Cos(5*t) - 0.5*g*math.Sin(5*t)
		},
		Exact: func(t float64) float64 { return math.Exp(t/2) * math.Sin(5*t) },
		T0:    0,
		X0:    0,
		Tf:    5,
	},
}

func Get(name string) (Definition, error) {
	d, ok := catalog[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown problem: %s (available: %v)", name, Names())
	}
	return d, nil
}

// Names lists the catalogue in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runge is 1/(1+25x²), the standard example where high-degree polynomial
// interpolation on equispaced nodes diverges.
func Runge(x float64) float64 {
	return 1 / (1 + 25*x*x)
}
