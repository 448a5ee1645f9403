package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/approx/internal/experiment"
	"github.com/san-kum/approx/internal/export"
	"github.com/san-kum/approx/internal/spline"
	"github.com/san-kum/approx/internal/viz"
)

const maxTableRows = 25

func runSpline(cmd *cobra.Command, args []string) error {
	ts, ys := knots, values
	if csvFile != "" {
		f, err := os.Open(csvFile)
		if err != nil {
			return err
		}
		defer f.Close()
		ts, ys, err = readSamples(f)
		if err != nil {
			return fmt.Errorf("%s: %w", csvFile, err)
		}
	}

	solver, err := experiment.NewRegistry().GetSolver(solverName)
	if err != nil {
		return err
	}
	s, err := spline.Build(ts, ys, spline.WithSolver(solver))
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "spline built", "knots", len(ts), "solver", solver.Name())

	xs := at
	if len(xs) == 0 {
		if evalPoints < 2 {
			return fmt.Errorf("--points must be at least 2, got %d", evalPoints)
		}
		lo, hi := s.Domain()
		xs = floats.Span(make([]float64, evalPoints), lo, hi)
	}
	ys = s.EvalAll(xs)

	if len(xs) <= maxTableRows {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "X\tS(X)\tS'(X)\tS''(X)")
		for i, x := range xs {
			fmt.Fprintf(w, "%g\t%.6f\t%.6f\t%.6f\n", x, ys[i], s.Deriv(x), s.SecondDeriv(x))
		}
		w.Flush()
	}
	if len(xs) > 1 {
		fmt.Println()
		fmt.Println(viz.Chart([][]float64{ys}, fmt.Sprintf("natural spline, %d knots", len(ts)), 60, 12))
	}

	if svgFile != "" {
		series := []export.Series{
			{Name: "spline", X: xs, Y: ys},
			{Name: "knots", X: s.Knots(), Y: s.Values()},
		}
		if err := writeSVG(svgFile, series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

// readSamples parses t,y rows. A first row that does not parse as numbers
// is treated as a header.
func readSamples(r io.Reader) ([]float64, []float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var ts, ys []float64
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("row %d: expected 2 fields, got %d", i+1, len(rec))
		}
		t, errT := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errT != nil || errY != nil {
			if i == 0 {
				continue
			}
			return nil, nil, fmt.Errorf("row %d: invalid number", i+1)
		}
		ts = append(ts, t)
		ys = append(ys, y)
	}
	return ts, ys, nil
}

func runRunge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("runge")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("points") {
		cfg.Spline.Points = gridPoints
	}
	if cmd.Flags().Changed("solver") {
		cfg.Spline.Solver = solverName
	}
	if cmd.Flags().Changed("workers") {
		cfg.Spline.Workers = workers
	}
	if len(args) > 0 {
		cfg.Spline.Nodes = cfg.Spline.Nodes[:0]
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid node count %q", a)
			}
			cfg.Spline.Nodes = append(cfg.Spline.Nodes, n)
		}
	}

	solver, err := experiment.NewRegistry().GetSolver(cfg.Spline.Solver)
	if err != nil {
		return err
	}

	cases, err := experiment.RungeStudy(context.Background(), cfg.Spline.Nodes, experiment.RungeOptions{
		Solver:  solver,
		Points:  cfg.Spline.Points,
		Workers: cfg.Spline.Workers,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tNODES\tSPLINE MAX ERR\tLAGRANGE MAX ERR")
	for _, c := range cases {
		fmt.Fprintf(w, "%d\t%d\t%.3e\t%.3e\n", c.N, len(c.Nodes), c.SplineMaxError(), c.LagrangeMaxError())
	}
	w.Flush()

	if len(cases) > 0 {
		last := cases[len(cases)-1]
		fmt.Println()
		fmt.Println(viz.Chart([][]float64{last.Exact, last.Spline}, fmt.Sprintf("runge n=%d: exact (cyan) vs spline (yellow)", last.N), 60, 12))
	}

	var series []export.Series
	if pngFile != "" || svgFile != "" {
		series = rungeSeries(cases)
	}
	if pngFile != "" {
		c := export.Chart{Title: "Runge function: spline vs Lagrange", XLabel: "x", YLabel: "f(x)"}
		if err := c.Save(pngFile, series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}
	if svgFile != "" {
		if err := writeSVG(svgFile, series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func rungeSeries(cases []experiment.RungeCase) []export.Series {
	if len(cases) == 0 {
		return nil
	}
	series := []export.Series{{Name: "exact", X: cases[0].Grid, Y: cases[0].Exact, Color: "#ffffff"}}
	for _, c := range cases {
		series = append(series,
			export.Series{Name: fmt.Sprintf("spline n=%d", c.N), X: c.Grid, Y: c.Spline},
			export.Series{Name: fmt.Sprintf("lagrange n=%d", c.N), X: c.Grid, Y: c.Lagrange},
		)
	}
	return series
}

func writeSVG(path string, series []export.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.SVG(f, series, 800, 500); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
