package ode

import "fmt"

// Stepper advances a solution by one step of size h from (t, x).
// Steppers in this package hold no state and may be shared between
// goroutines.
type Stepper interface {
	Name() string
	Order() int
	Step(f Func, t, x, h float64) float64
}

var (
	_ Stepper = (*Euler)(nil)
	_ Stepper = (*RK4)(nil)
)

// Lookup returns the stepper registered under name.
func Lookup(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", name)
	}
}

// Methods lists the names accepted by Lookup.
func Methods() []string {
	return []string{"euler", "rk4"}
}

// Factory returns a constructor for the stepper registered under name.
func Factory(name string) (func() Stepper, error) {
	if _, err := Lookup(name); err != nil {
		return nil, err
	}
	return func() Stepper {
		s, _ := Lookup(name)
		return s
	}, nil
}
