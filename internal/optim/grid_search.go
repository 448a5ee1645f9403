// Package optim searches run parameters for the best value of an objective.
package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/approx/internal/experiment"
)

// Objective scores a finished run; lower is better. +Inf marks a run as
// unacceptable.
type Objective func(*experiment.Result) float64

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters, %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %q has an empty range", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search runs every combination of parameter values and returns the one
// with the lowest objective. Combinations that fail to build or run are
// skipped; if none is acceptable the returned params are nil.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	objective Objective,
) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil
		}

		val := objective(result)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// CheapestWithin scores a run by its step count when metric stays at or
// below tol, and +Inf otherwise. Minimizing it finds the largest step size
// that meets the tolerance.
func CheapestWithin(metric string, tol float64) Objective {
	return func(r *experiment.Result) float64 {
		v, ok := r.Metrics[metric]
		if !ok || math.IsNaN(v) || v > tol {
			return math.Inf(1)
		}
		return float64(r.Trajectory.Len() - 1)
	}
}

// Descending returns a sorted copy of step sizes, largest first.
func Descending(hs []float64) []float64 {
	out := append([]float64(nil), hs...)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
