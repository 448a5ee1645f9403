package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/approx/internal/config"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	// ivp flags
	method   string
	stepSize float64
	tf       float64
	steps    []float64

	// spline flags
	knots      []float64
	values     []float64
	csvFile    string
	at         []float64
	evalPoints int
	gridPoints int
	solverName string
	workers    int

	// tune flags
	tuneSteps  []float64
	tolerance  float64
	metricName string

	// output files
	pngFile string
	svgFile string
	outFile string
)

var logger = log.NewNopLogger()

func main() {
	rootCmd := &cobra.Command{
		Use:           "approx",
		Short:         "spline interpolation and ODE integration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error, none)")

	splineCmd := &cobra.Command{
		Use:   "spline",
		Short: "fit a natural cubic spline and evaluate it",
		Args:  cobra.NoArgs,
		RunE:  runSpline,
	}
	splineCmd.Flags().Float64SliceVar(&knots, "knots", nil, "knot abscissae, strictly increasing")
	splineCmd.Flags().Float64SliceVar(&values, "values", nil, "values at the knots")
	splineCmd.Flags().StringVar(&csvFile, "csv", "", "read t,y rows from a csv file")
	splineCmd.Flags().Float64SliceVar(&at, "at", nil, "evaluate at these points")
	splineCmd.Flags().IntVar(&evalPoints, "points", 50, "uniform samples over the knot range when --at is not set")
	splineCmd.Flags().StringVar(&solverName, "solver", "thomas", "tridiagonal solver (thomas, dense)")
	splineCmd.Flags().StringVar(&svgFile, "svg", "", "write the curve to an svg file")

	rungeCmd := &cobra.Command{
		Use:   "runge [n...]",
		Short: "compare spline and polynomial interpolation of the Runge function",
		RunE:  runRunge,
	}
	rungeCmd.Flags().IntVar(&gridPoints, "points", config.DefaultPoints, "evaluation points on [-1, 1]")
	rungeCmd.Flags().StringVar(&solverName, "solver", "thomas", "tridiagonal solver (thomas, dense)")
	rungeCmd.Flags().IntVar(&workers, "workers", 0, "spline evaluation workers (0 = GOMAXPROCS)")
	rungeCmd.Flags().StringVar(&pngFile, "png", "", "write a plot image (format from extension)")
	rungeCmd.Flags().StringVar(&svgFile, "svg", "", "write an svg plot")
	rungeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rungeCmd.Flags().StringVar(&preset, "preset", "", "use a runge preset")

	solveCmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "integrate an initial-value problem and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addIVPFlags(solveCmd)
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	convergeCmd := &cobra.Command{
		Use:   "converge [problem]",
		Short: "measure the error of every method over a list of step sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConverge,
	}
	convergeCmd.Flags().Float64SliceVar(&steps, "h", nil, "step sizes (default from config)")
	convergeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	convergeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "step an integrator with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addIVPFlags(liveCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune [problem]",
		Short: "find the largest step size that meets an error tolerance",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().Float64SliceVar(&tuneSteps, "h", []float64{0.5, 0.2, 0.1, 0.05, 0.02, 0.01, 0.005, 0.001}, "candidate step sizes")
	tuneCmd.Flags().Float64Var(&tolerance, "tol", 1e-4, "error tolerance")
	tuneCmd.Flags().StringVar(&metricName, "metric", "max_abs_error", "metric compared against the tolerance")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and store every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngFile, "png", "", "write a plot image (format from extension)")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write an svg plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list problems, methods and solvers",
		RunE:  listProblems,
	}

	rootCmd.AddCommand(splineCmd, rungeCmd, solveCmd, convergeCmd, tuneCmd, scenarioCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, problemsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addIVPFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", "rk4", "integration method (euler, rk4)")
	cmd.Flags().Float64Var(&stepSize, "h", config.DefaultStepSize, "step size")
	cmd.Flags().Float64Var(&tf, "tf", 0, "end time (0 keeps the problem default)")
}

func newLogger(lvl string) (log.Logger, error) {
	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(l, opt), nil
}

func levelOption(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("unknown log level: %s", lvl)
}

// loadConfig applies a preset, then a config file, over the defaults.
func loadConfig(group string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(group, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(group))
		}
	}
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}
	return cfg, nil
}

// applyIVPFlags lets explicitly set flags override the loaded config.
func applyIVPFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.IVP.Problem = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.IVP.Method = method
	}
	if flags.Changed("h") {
		if flags.Lookup("h").Value.Type() == "float64" {
			cfg.IVP.StepSize = stepSize
		} else {
			cfg.IVP.StepSizes = steps
		}
	}
	if flags.Changed("tf") {
		cfg.IVP.Tf = tf
	}
}
