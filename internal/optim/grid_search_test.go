package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/approx/internal/experiment"
	"github.com/san-kum/approx/internal/ivp"
	"github.com/san-kum/approx/internal/metrics"
	"github.com/san-kum/approx/internal/ode"
)

func builder(t *testing.T, stepper ode.Stepper) func(map[string]float64) (*experiment.Experiment, error) {
	t.Helper()
	def, err := ivp.Get("decay")
	require.NoError(t, err)
	return func(params map[string]float64) (*experiment.Experiment, error) {
		e := experiment.New(experiment.Config{StepSize: params["h"]}, nil)
		if err := e.Setup(def, stepper, metrics.Default(def.Exact)); err != nil {
			return nil, err
		}
		return e, nil
	}
}

func TestGridSearch_LargestStepWithinTolerance(t *testing.T) {
	g, err := NewGridSearch([]string{"h"}, [][]float64{{0.5, 0.25, 0.1, 0.05, 0.01}})
	require.NoError(t, err)

	params, steps, err := g.Search(context.Background(), builder(t, ode.NewEuler()), CheapestWithin("max_abs_error", 1e-2))
	require.NoError(t, err)
	require.NotNil(t, params)

	// Euler on x' = -x has max error about 0.18h, so h=0.05 is the first to fit.
	assert.Equal(t, 0.05, params["h"])
	assert.Equal(t, 20.0, steps)

	params, _, err = g.Search(context.Background(), builder(t, ode.NewRK4()), CheapestWithin("max_abs_error", 1e-2))
	require.NoError(t, err)
	assert.Equal(t, 0.5, params["h"])
}

func TestGridSearch_NoneAcceptable(t *testing.T) {
	g, err := NewGridSearch([]string{"h"}, [][]float64{{0.5, 0.25}})
	require.NoError(t, err)

	params, best, err := g.Search(context.Background(), builder(t, ode.NewEuler()), CheapestWithin("max_abs_error", 1e-12))
	require.NoError(t, err)
	assert.Nil(t, params)
	assert.True(t, math.IsInf(best, 1))
}

func TestGridSearch_SkipsFailedRuns(t *testing.T) {
	g, err := NewGridSearch([]string{"h"}, [][]float64{{-1, 0.1}})
	require.NoError(t, err)

	params, _, err := g.Search(context.Background(), builder(t, ode.NewRK4()), CheapestWithin("max_abs_error", 1))
	require.NoError(t, err)
	assert.Equal(t, 0.1, params["h"])
}

func TestGridSearch_Cancelled(t *testing.T) {
	g, err := NewGridSearch([]string{"h"}, [][]float64{{0.1}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = g.Search(ctx, builder(t, ode.NewRK4()), CheapestWithin("max_abs_error", 1))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewGridSearch_Errors(t *testing.T) {
	_, err := NewGridSearch([]string{"h"}, nil)
	assert.Error(t, err)
	_, err = NewGridSearch([]string{"h"}, [][]float64{{}})
	assert.Error(t, err)
}

func TestDescending(t *testing.T) {
	in := []float64{0.01, 0.1, 0.05}
	assert.Equal(t, []float64{0.1, 0.05, 0.01}, Descending(in))
	assert.Equal(t, 0.01, in[0])
}
