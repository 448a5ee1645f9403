package ode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// IntegrateAll solves each problem on its own goroutine, each with a
// stepper from newStepper. Results are returned in input order. The first
// failure cancels the problems that have not started yet and is returned.
func IntegrateAll(ctx context.Context, problems []Problem, newStepper func() Stepper) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(problems))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range problems {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tr, err := Integrate(p, newStepper())
			if err != nil {
				return err
			}
			results[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
