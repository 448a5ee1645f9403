package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/approx/internal/export"
	"github.com/san-kum/approx/internal/storage"
	"github.com/san-kum/approx/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tH\tSTEPS\tMAX ERR\tTIME")
	for _, r := range runs {
		maxErr := "-"
		if v, ok := r.Metrics["max_abs_error"]; ok {
			maxErr = fmt.Sprintf("%.3e", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%d\t%s\t%s\n",
			r.ID, r.Problem, r.Method, r.StepSize, r.Steps, maxErr, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []export.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, exact, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	series := []export.Series{{Name: meta.Method, X: tr.Times, Y: tr.States}}
	if exact != nil {
		series = append(series, export.Series{Name: "exact", X: tr.Times, Y: exact})
	}
	return meta, series, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(series[0].X) < 2 {
		return fmt.Errorf("%s: not enough samples to plot", meta.ID)
	}

	ys := make([][]float64, len(series))
	for i, s := range series {
		ys[i] = s.Y
	}
	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s / %s  h=%g", meta.Problem, meta.Method, meta.StepSize)))
	fmt.Println(viz.Chart(ys, fmt.Sprintf("x(t) on [%g, %g]", meta.T0, meta.Tf), 70, 15))

	if pngFile != "" {
		c := export.Chart{Title: fmt.Sprintf("%s (%s, h=%g)", meta.Problem, meta.Method, meta.StepSize), XLabel: "t", YLabel: "x"}
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

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, exact, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error {
		return storage.ExportCSV(w, tr, exact)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, exact, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error {
		return storage.ExportJSON(w, meta, tr, exact)
	})
}

// withOutput runs fn against --out, or stdout when it is empty.
func withOutput(fn func(io.Writer) error) error {
	if outFile == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	return nil
}
