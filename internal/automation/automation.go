// Package automation runs scripted sequences of integration runs described
// in YAML.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/approx/internal/experiment"
	"github.com/san-kum/approx/internal/metrics"
)

// Scenario is a named list of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Problem  string  `yaml:"problem"`
	Method   string  `yaml:"method"`
	StepSize float64 `yaml:"h"`
	Tf       float64 `yaml:"tf"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger log.Logger) ([]*experiment.Result, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		level.Info(logger).Log("msg", "scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "problem", step.Problem)

		def, err := registry.GetProblem(step.Problem)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		stepper, err := registry.GetMethod(step.Method)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		cfg := experiment.Config{
			Problem:  step.Problem,
			Method:   step.Method,
			StepSize: step.StepSize,
			Tf:       step.Tf,
		}
		exp := experiment.New(cfg, logger)
		if err := exp.Setup(def, stepper, metrics.Default(def.Exact)); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}
