package export

import (
	"fmt"
	"math"

	"github.com/san-kum/approx/internal/ode"
)

// Series is one named curve. X and Y must have the same length.
type Series struct {
	Name  string
	X, Y  []float64
	Color string // #rrggbb
}

var palette = []string{"#00ccff", "#ff8800", "#00ff88", "#ff4488", "#ccccff"}

// FromTrajectory returns the numeric curve of tr and, when exact is not
// nil, the exact solution sampled at the same times.
func FromTrajectory(tr *ode.Trajectory, method string, exact func(float64) float64) []Series {
	out := []Series{{Name: method, X: tr.Times, Y: tr.States}}
	if exact != nil {
		ys := make([]float64, tr.Len())
		for i, t := range tr.Times {
			ys[i] = exact(t)
		}
		out = append(out, Series{Name: "exact", X: tr.Times, Y: ys})
	}
	return out
}

func validate(series []Series) error {
	if len(series) == 0 {
		return fmt.Errorf("no series to draw")
	}
	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values, %d y values", s.Name, len(s.X), len(s.Y))
		}
	}
	return nil
}

func colorFor(s Series, i int) string {
	if s.Color != "" {
		return s.Color
	}
	return palette[i%len(palette)]
}

type bounds struct{ minX, maxX, minY, maxY float64 }

// extent spans the finite points of every series, padded by 10%.
func extent(series []Series) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	found := false
	for _, s := range series {
		for i := range s.X {
			x, y := s.X[i], s.Y[i]
			if !finite(x) || !finite(y) {
				continue
			}
			found = true
			b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
			b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
		}
	}
	if !found {
		return b, false
	}

	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
