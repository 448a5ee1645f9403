package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/approx/internal/ivp"
	"github.com/san-kum/approx/internal/metrics"
	"github.com/san-kum/approx/internal/ode"
)

type Config struct {
	Problem  string
	Method   string
	StepSize float64
	// Tf overrides the problem's end time when positive.
	Tf float64
}

type Result struct {
	Definition ivp.Definition
	Method     string
	Problem    ode.Problem
	Trajectory *ode.Trajectory
	Metrics    map[string]float64
	Elapsed    time.Duration
}

type Experiment struct {
	cfg     Config
	def     ivp.Definition
	stepper ode.Stepper
	metrics []metrics.Metric
	logger  log.Logger
}

// New creates an experiment; a nil logger discards output.
func New(cfg Config, logger log.Logger) *Experiment {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Experiment{cfg: cfg, logger: logger}
}

func (e *Experiment) Setup(def ivp.Definition, stepper ode.Stepper, ms []metrics.Metric) error {
	if def.F == nil {
		return fmt.Errorf("problem %q has no right-hand side", def.Name)
	}
	if stepper == nil {
		return fmt.Errorf("no integration method")
	}
	if e.cfg.Tf > 0 {
		def.Tf = e.cfg.Tf
	}
	e.def = def
	e.stepper = stepper
	e.metrics = ms
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.stepper == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := e.def.Problem(e.cfg.StepSize)
	opts := make([]ode.Option, 0, len(e.metrics))
	for _, m := range e.metrics {
		m.Reset()
		opts = append(opts, ode.WithObserver(m))
	}

	logger := log.With(e.logger, "problem", e.def.Name, "method", e.stepper.Name(), "h", p.H)
	level.Debug(logger).Log("msg", "integrating", "t0", p.T0, "tf", p.Tf)

	start := time.Now()
	tr, err := ode.Integrate(p, e.stepper, opts...)
	if err != nil {
		level.Error(logger).Log("msg", "integration failed", "err", err)
		return nil, err
	}
	elapsed := time.Since(start)

	res := &Result{
		Definition: e.def,
		Method:     e.stepper.Name(),
		Problem:    p,
		Trajectory: tr,
		Metrics:    metrics.Collect(e.metrics),
		Elapsed:    elapsed,
	}
	if v, ok := res.Metrics["finite"]; ok && v < 1 {
		level.Warn(logger).Log("msg", "trajectory contains non-finite values", "finite", v)
	}
	level.Info(logger).Log("msg", "integrated", "steps", tr.Len()-1, "elapsed", elapsed)
	return res, nil
}
