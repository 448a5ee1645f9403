package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/approx/internal/ivp"
	"github.com/san-kum/approx/internal/metrics"
	"github.com/san-kum/approx/internal/ode"
)

const (
	historyCapacity = 600
	maxStepsPerTick = 1024
)

type TickMsg time.Time

// Model integrates one problem step by step and charts the numeric
// solution against the exact one.
type Model struct {
	def      ivp.Definition
	problem  ode.Problem
	methods  []ode.Stepper
	selected int

	times []float64
	k     int
	x     float64

	numeric, exact []float64
	errHistory     []float64
	maxErr         *metrics.MaxAbsError
	finite         *metrics.Finite

	stepsPerTick int
	running      bool
	width        int
	height       int
}

// NewModel prepares a live run of def with step size h. methods are cycled
// with the M key; the first one is active.
func NewModel(def ivp.Definition, h float64, methods ...ode.Stepper) (Model, error) {
	if len(methods) == 0 {
		return Model{}, fmt.Errorf("no integration method")
	}
	p := def.Problem(h)
	if err := p.Validate(); err != nil {
		return Model{}, err
	}

	m := Model{
		def:          def,
		problem:      p,
		methods:      methods,
		times:        p.Grid(),
		finite:       metrics.NewFinite(),
		stepsPerTick: 1,
		width:        60,
		height:       12,
	}
	if def.Exact != nil {
		m.maxErr = metrics.NewMaxAbsError(def.Exact)
	}
	m.reset()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "m":
			m.selected = (m.selected + 1) % len(m.methods)
			m.reset()
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-50, 20)
		m.height = max(msg.Height/2, 6)
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick && !m.Done(); i++ {
				m.step()
			}
			if m.Done() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

// Done reports whether the final time has been reached.
func (m Model) Done() bool { return m.k >= len(m.times)-1 }

// State returns the current sample.
func (m Model) State() (t, x float64) { return m.times[m.k], m.x }

func (m *Model) step() {
	t := m.times[m.k]
	m.x = m.stepper().Step(m.problem.F, t, m.x, m.problem.H)
	m.k++
	m.record()
}

func (m *Model) record() {
	t := m.times[m.k]
	m.finite.Observe(t, m.x)
	m.numeric = appendCapped(m.numeric, m.x)
	if m.maxErr != nil {
		m.maxErr.Observe(t, m.x)
		e := m.def.Exact(t)
		m.exact = appendCapped(m.exact, e)
		m.errHistory = appendCapped(m.errHistory, m.x-e)
	}
}

func (m *Model) reset() {
	m.k = 0
	m.x = m.problem.X0
	m.numeric = m.numeric[:0]
	m.exact = m.exact[:0]
	m.errHistory = m.errHistory[:0]
	m.finite.Reset()
	if m.maxErr != nil {
		m.maxErr.Reset()
	}
	m.running = true
	m.record()
}

func (m *Model) stepper() ode.Stepper { return m.methods[m.selected] }

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m Model) View() string {
	t, x := m.State()

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.Done():
		status = StatusDone.Render("DONE")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}

	caption := m.stepper().Name()
	series := [][]float64{m.numeric}
	if m.maxErr != nil {
		caption += " (cyan) vs exact (yellow)"
		series = append(series, m.exact)
	}
	chart := graphStyle.Render(Chart(series, caption, m.width, m.height))

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.def.Name)) + "\n")
	s.WriteString(Subtle.Render(m.def.Description) + "\n\n")
	s.WriteString(status + "\n\n")
	s.WriteString(row("Method", m.stepper().Name()))
	s.WriteString(row("Step", fmt.Sprintf("%g", m.problem.H)))
	s.WriteString(row("Speed", fmt.Sprintf("%d/frame", m.stepsPerTick)))
	s.WriteString(row("Time", fmt.Sprintf("%.4f", t)))
	s.WriteString(row("x(t)", fmt.Sprintf("%.6f", x)))
	if m.maxErr != nil {
		e := m.def.Exact(t)
		s.WriteString(row("exact", fmt.Sprintf("%.6f", e)))
		s.WriteString(row("max err", fmt.Sprintf("%.3e", m.maxErr.Value())))
		s.WriteString("\n" + Sparkline(absAll(m.errHistory), 24) + "\n")
	}
	if m.finite.Value() < 1 {
		s.WriteString(Warning.Render("non-finite values") + "\n")
	}

	frac := float64(m.k) / float64(max(len(m.times)-1, 1))
	s.WriteString("\n" + ProgressBar(frac, 24) + "\n")
	s.WriteString(KeyHint.Render("\nSP:Pause R:Restart M:Method\n+/-:Speed Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, chart, statsStyle.Render(s.String()))
}

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value) + "\n"
}

func absAll(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}
