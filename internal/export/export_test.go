package export

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/approx/internal/ode"
)

func sample() []Series {
	return []Series{
		{Name: "rk4", X: []float64{0, 0.5, 1}, Y: []float64{1, 0.6, 0.37}},
		{Name: "exact", X: []float64{0, 0.5, 1}, Y: []float64{1, 0.61, 0.37}, Color: "#ff0000"},
	}
}

func TestSVG(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, SVG(&sb, sample(), 400, 200))

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `width="400" height="200"`)
	assert.Equal(t, 2, strings.Count(out, "<path"))
	assert.Contains(t, out, `stroke="#ff0000"`)
	assert.Contains(t, out, "<title>exact</title>")
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestSVG_EscapesMarkup(t *testing.T) {
	s := []Series{{
		Name:  "a<b&c</title>",
		X:     []float64{0, 1},
		Y:     []float64{0, 1},
		Color: `red" onload="x`,
	}}
	var sb strings.Builder
	require.NoError(t, SVG(&sb, s, 100, 100))

	out := sb.String()
	assert.Contains(t, out, "<title>a&lt;b&amp;c&lt;/title&gt;</title>")
	assert.Contains(t, out, `stroke="red&#34; onload=&#34;x"`)
	assert.Equal(t, 1, strings.Count(out, "</title>"))
}

func TestSVG_BreaksOnNonFinite(t *testing.T) {
	s := []Series{{X: []float64{0, 1, 2, 3}, Y: []float64{0, math.NaN(), 1, 2}}}
	var sb strings.Builder
	require.NoError(t, SVG(&sb, s, 100, 100))

	assert.Equal(t, 2, strings.Count(sb.String(), "M"))
	assert.NotContains(t, sb.String(), "NaN")
}

func TestSVG_Errors(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, SVG(&sb, nil, 100, 100))
	assert.Error(t, SVG(&sb, sample(), 0, 100))
	assert.Error(t, SVG(&sb, []Series{{X: []float64{0, 1}, Y: []float64{1}}}, 100, 100))
	assert.Error(t, SVG(&sb, []Series{{X: []float64{0}, Y: []float64{math.Inf(1)}}}, 100, 100))
}

func TestChart_Save(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.svg"} {
		path := filepath.Join(dir, name)
		c := Chart{Title: "decay", XLabel: "t", YLabel: "x"}
		require.NoError(t, c.Save(path, sample()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestChart_SkipsNonFinite(t *testing.T) {
	s := append(sample(), Series{Name: "blowup", X: []float64{0, 1}, Y: []float64{math.Inf(1), math.NaN()}})
	_, err := Chart{}.build(s)
	assert.NoError(t, err)

	_, err = Chart{}.build(s[2:])
	assert.Error(t, err)
}

func TestFromTrajectory(t *testing.T) {
	tr := &ode.Trajectory{Times: []float64{0, 1}, States: []float64{1, 0.5}}

	s := FromTrajectory(tr, "euler", nil)
	require.Len(t, s, 1)
	assert.Equal(t, "euler", s[0].Name)

	s = FromTrajectory(tr, "euler", math.Exp)
	require.Len(t, s, 2)
	assert.Equal(t, []float64{1, math.E}, s[1].Y)
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, parseHex("#123456"))
	assert.Equal(t, color.Black, parseHex("red"))
	assert.Equal(t, color.Black, parseHex("#zzzzzz"))
}
