package export

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart describes a gonum/plot figure.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	// Width and Height default to 8x5 inches.
	Width, Height vg.Length
}

// Save draws the series and writes them to path. The format follows the
// file extension (.png, .svg, .pdf, .eps, ...).
func (c Chart) Save(path string, series []Series) error {
	p, err := c.build(series)
	if err != nil {
		return err
	}
	w, h := c.Width, c.Height
	if w == 0 {
		w = 8 * vg.Inch
	}
	if h == 0 {
		h = 5 * vg.Inch
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

func (c Chart) build(series []Series) (*plot.Plot, error) {
	if err := validate(series); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, s := range series {
		pts := make(plotter.XYs, 0, len(s.X))
		for k := range s.X {
			// plotter rejects NaN and Inf
			if finite(s.X[k]) && finite(s.Y[k]) {
				pts = append(pts, plotter.XY{X: s.X[k], Y: s.Y[k]})
			}
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = parseHex(colorFor(s, i))
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, fmt.Errorf("no finite points to draw")
	}
	p.Legend.Top = true
	return p, nil
}

func parseHex(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return color.Black
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
