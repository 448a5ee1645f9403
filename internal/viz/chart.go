package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// Chart plots one or more equally sampled series. The first series is drawn
// in cyan, the second in yellow, then red. Non-finite values are dropped
// to the previous finite value so asciigraph can scale the axis.
func Chart(series [][]float64, caption string, width, height int) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		data = append(data, sanitize(s))
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Yellow, asciigraph.Red),
	)
}

func sanitize(s []float64) []float64 {
	out := make([]float64, len(s))
	last := 0.0
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = last
		}
		out[i] = v
		last = v
	}
	return out
}
