// Package ode integrates scalar initial-value problems
//
//	dx/dt = f(t, x),  x(t0) = x0,  t in [t0, tf]
//
// on a fixed step grid.
//
// The outer loop lives in [Integrate]: it validates the [Problem], builds a
// uniform grid of N+1 times with N = floor((tf-t0)/h), and drives a [Stepper]
// across it. Steppers only know how to advance one step:
//
//   - [Euler]: explicit Euler, first order (global error O(h)).
//   - [RK4]: classical Runge-Kutta, fourth order (global error O(h⁴)).
//
// Values produced by f are not checked. A NaN or Inf returned by f, or
// produced by overflow, propagates through the remainder of the trajectory;
// callers integrating ill-behaved right-hand sides should validate the
// result.
//
// Within a trajectory every step depends on the previous one, so there is
// nothing to parallelise. Independent problems can be run concurrently with
// [IntegrateAll].
package ode
