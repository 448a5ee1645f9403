package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/approx/internal/linalg"
	"github.com/san-kum/approx/internal/ode"
)

const (
	DefaultStepSize = 0.1
	DefaultPoints   = 1000
	DefaultDataDir  = ".approx"
	DefaultLogLevel = "info"
)

type Config struct {
	IVP      IVPConfig    `yaml:"ivp"`
	Spline   SplineConfig `yaml:"spline"`
	DataDir  string       `yaml:"data_dir"`
	LogLevel string       `yaml:"log_level"`
}

type IVPConfig struct {
	Problem  string  `yaml:"problem"`
	Method   string  `yaml:"method"`
	StepSize float64 `yaml:"step_size"`
	// Tf overrides the problem's default end time when positive.
	Tf        float64   `yaml:"tf"`
	StepSizes []float64 `yaml:"step_sizes"`
}

type SplineConfig struct {
	Solver  string `yaml:"solver"`
	Nodes   []int  `yaml:"nodes"`
	Points  int    `yaml:"points"`
	Workers int    `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		IVP: IVPConfig{
			Problem:   "ivp1",
			Method:    "rk4",
			StepSize:  DefaultStepSize,
			StepSizes: []float64{0.1, 0.05, 0.01},
		},
		Spline: SplineConfig{
			Solver: "thomas",
			Nodes:  []int{5, 10, 20},
			Points: DefaultPoints,
		},
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !slices.Contains(ode.Methods(), c.IVP.Method) {
		return fmt.Errorf("unknown method %q (available: %v)", c.IVP.Method, ode.Methods())
	}
	if c.IVP.StepSize <= 0 {
		return fmt.Errorf("step_size must be positive, got %g", c.IVP.StepSize)
	}
	for _, h := range c.IVP.StepSizes {
		if h <= 0 {
			return fmt.Errorf("step_sizes must be positive, got %g", h)
		}
	}
	if c.IVP.Tf < 0 {
		return fmt.Errorf("tf must not be negative, got %g", c.IVP.Tf)
	}
	if !slices.Contains(linalg.Solvers(), c.Spline.Solver) {
		return fmt.Errorf("unknown solver %q (available: %v)", c.Spline.Solver, linalg.Solvers())
	}
	for _, n := range c.Spline.Nodes {
		if n < 1 {
			return fmt.Errorf("spline nodes must be at least 1, got %d", n)
		}
	}
	if c.Spline.Points < 2 {
		return fmt.Errorf("spline points must be at least 2, got %d", c.Spline.Points)
	}
	return nil
}
