package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/approx/internal/config"
	"github.com/san-kum/approx/internal/experiment"
)

func TestReadSamples(t *testing.T) {
	ts, ys, err := readSamples(strings.NewReader("t,y\n0, 1\n1,2\n2,0\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, ts)
	assert.Equal(t, []float64{1, 2, 0}, ys)

	ts, _, err = readSamples(strings.NewReader("0,1\n1,2\n"))
	require.NoError(t, err)
	assert.Len(t, ts, 2)

	_, _, err = readSamples(strings.NewReader("0,1\nx,2\n"))
	assert.Error(t, err)

	_, _, err = readSamples(strings.NewReader("0\n"))
	assert.Error(t, err)
}

func TestLevelOption(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "none", "INFO", ""} {
		_, err := levelOption(lvl)
		assert.NoError(t, err, lvl)
	}
	_, err := levelOption("loud")
	assert.Error(t, err)
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	opt, err := levelOption("warn")
	require.NoError(t, err)

	l := level.NewFilter(newBufLogger(&buf), opt)
	level.Info(l).Log("msg", "hidden")
	level.Warn(l).Log("msg", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestApplyIVPFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "solve"}
	addIVPFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--h", "0.25"}))

	cfg := config.DefaultConfig()
	cfg.IVP.Method = "euler"
	applyIVPFlags(cmd, cfg, []string{"decay"})

	assert.Equal(t, "decay", cfg.IVP.Problem)
	assert.Equal(t, 0.25, cfg.IVP.StepSize)
	assert.Equal(t, "euler", cfg.IVP.Method, "unset flags keep config values")
}

func TestLoadConfig_Preset(t *testing.T) {
	preset = "fine"
	defer func() { preset = "" }()

	cfg, err := loadConfig("ivp1")
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.IVP.StepSize)

	_, err = loadConfig("decay")
	assert.Error(t, err)
}

func TestRungeSeries(t *testing.T) {
	assert.Nil(t, rungeSeries(nil))

	cases := []experiment.RungeCase{{N: 5}, {N: 10}}
	s := rungeSeries(cases)
	require.Len(t, s, 5)
	assert.Equal(t, "exact", s[0].Name)
	assert.Equal(t, "lagrange n=10", s[4].Name)
}

func newBufLogger(buf *bytes.Buffer) log.Logger {
	return log.NewLogfmtLogger(buf)
}
