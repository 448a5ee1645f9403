package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/approx/internal/automation"
	"github.com/san-kum/approx/internal/config"
	"github.com/san-kum/approx/internal/experiment"
	"github.com/san-kum/approx/internal/linalg"
	"github.com/san-kum/approx/internal/metrics"
	"github.com/san-kum/approx/internal/ode"
	"github.com/san-kum/approx/internal/optim"
	"github.com/san-kum/approx/internal/storage"
	"github.com/san-kum/approx/internal/viz"
)

func problemGroup(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultConfig().IVP.Problem
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(problemGroup(args))
	if err != nil {
		return err
	}
	applyIVPFlags(cmd, cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	def, err := registry.GetProblem(cfg.IVP.Problem)
	if err != nil {
		return err
	}
	stepper, err := registry.GetMethod(cfg.IVP.Method)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Problem:  cfg.IVP.Problem,
		Method:   cfg.IVP.Method,
		StepSize: cfg.IVP.StepSize,
		Tf:       cfg.IVP.Tf,
	}, logger)
	if err := exp.Setup(def, stepper, metrics.Default(def.Exact)); err != nil {
		return err
	}

	fmt.Printf("solving %s with %s (h=%g)...\n", def.Name, stepper.Name(), cfg.IVP.StepSize)
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Problem:  def.Name,
		Method:   stepper.Name(),
		StepSize: result.Problem.H,
		T0:       result.Problem.T0,
		Tf:       result.Problem.Tf,
		X0:       result.Problem.X0,
		Metrics:  result.Metrics,
	}, result.Trajectory, def.Exact)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "run stored", "id", runID, "dir", dataDir)

	t, x := result.Trajectory.Final()
	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Trajectory.Len()-1)
	fmt.Printf("x(%g) = %.10f\n", t, x)
	if def.Exact != nil {
		fmt.Printf("exact  = %.10f\n", def.Exact(t))
	}
	printMetrics(result.Metrics)

	series := [][]float64{result.Trajectory.States}
	if def.Exact != nil {
		series = append(series, exactAt(def.Exact, result.Trajectory.Times))
	}
	fmt.Println()
	fmt.Println(viz.Chart(series, fmt.Sprintf("%s: %s (cyan) vs exact (yellow)", def.Name, stepper.Name()), 60, 12))
	return nil
}

func printMetrics(ms map[string]float64) {
	names := make([]string, 0, len(ms))
	for name := range ms {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6e\n", name, ms[name])
	}
}

func exactAt(exact func(float64) float64, ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = exact(t)
	}
	return out
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(problemGroup(args))
	if err != nil {
		return err
	}
	applyIVPFlags(cmd, cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	def, err := registry.GetProblem(cfg.IVP.Problem)
	if err != nil {
		return err
	}
	if cfg.IVP.Tf > 0 {
		def.Tf = cfg.IVP.Tf
	}

	rows, err := experiment.ConvergenceStudy(context.Background(), def, registry.ListMethods(), cfg.IVP.StepSizes, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%s on [%g, %g]\n\n", def.Description, def.T0, def.Tf)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tH\tSTEPS\tFINAL ERR\tMAX ERR\tORDER")
	for _, r := range rows {
		order := "-"
		if !math.IsNaN(r.Order) {
			order = fmt.Sprintf("%.2f", r.Order)
		}
		fmt.Fprintf(w, "%s\t%g\t%d\t%.3e\t%.3e\t%s\n", r.Method, r.StepSize, r.Steps, r.FinalError, r.MaxError, order)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	applyIVPFlags(cmd, cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	def, err := registry.GetProblem(cfg.IVP.Problem)
	if err != nil {
		return err
	}
	if cfg.IVP.Tf > 0 {
		def.Tf = cfg.IVP.Tf
	}

	// selected method first, the rest follow for cycling
	first, err := registry.GetMethod(cfg.IVP.Method)
	if err != nil {
		return err
	}
	methods := []ode.Stepper{first}
	for _, name := range registry.ListMethods() {
		if name == first.Name() {
			continue
		}
		s, _ := registry.GetMethod(name)
		methods = append(methods, s)
	}

	m, err := viz.NewModel(def, cfg.IVP.StepSize, methods...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		groups := make([]string, 0, len(config.Presets))
		for g := range config.Presets {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		for _, g := range groups {
			fmt.Printf("%s: %v\n", g, config.ListPresets(g))
		}
		return nil
	}

	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func listProblems(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBLEM\tINTERVAL\tDESCRIPTION")
	for _, name := range registry.ListProblems() {
		def, err := registry.GetProblem(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t[%g, %g]\t%s\n", def.Name, def.T0, def.Tf, def.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmethods: %v\n", registry.ListMethods())
	fmt.Printf("solvers: %v\n", linalg.Solvers())
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	def, err := registry.GetProblem(problemGroup(args))
	if err != nil {
		return err
	}

	search, err := optim.NewGridSearch([]string{"h"}, [][]float64{optim.Descending(tuneSteps)})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "METHOD\tH\tSTEPS\t%s\n", strings.ToUpper(metricName))
	for _, name := range registry.ListMethods() {
		stepper, err := registry.GetMethod(name)
		if err != nil {
			return err
		}
		build := func(params map[string]float64) (*experiment.Experiment, error) {
			e := experiment.New(experiment.Config{Problem: def.Name, Method: name, StepSize: params["h"]}, logger)
			if err := e.Setup(def, stepper, metrics.Default(def.Exact)); err != nil {
				return nil, err
			}
			return e, nil
		}

		params, best, err := search.Search(context.Background(), build, optim.CheapestWithin(metricName, tolerance))
		if err != nil {
			return err
		}
		if params == nil {
			fmt.Fprintf(w, "%s\t-\t-\tnot reached\n", name)
			continue
		}
		fmt.Fprintf(w, "%s\t%g\t%.0f\t<= %g\n", name, params["h"], best, tolerance)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), logger)
	for _, r := range results {
		runID, saveErr := st.Save(storage.RunMetadata{
			Problem:  r.Definition.Name,
			Method:   r.Method,
			StepSize: r.Problem.H,
			T0:       r.Problem.T0,
			Tf:       r.Problem.Tf,
			X0:       r.Problem.X0,
			Metrics:  r.Metrics,
		}, r.Trajectory, r.Definition.Exact)
		if saveErr != nil {
			return saveErr
		}
		fmt.Printf("stored %s\n", runID)
	}
	return err
}
