package spline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/approx/internal/linalg"
)

func runge(x float64) float64 { return 1 / (1 + 25*x*x) }

func sample(f func(float64) float64, knots []float64) []float64 {
	ys := make([]float64, len(knots))
	for i, t := range knots {
		ys[i] = f(t)
	}
	return ys
}

func uniform(a, b float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n)
	}
	return out
}

var irregular = []float64{-2, -1.3, -1.1, 0, 0.25, 0.9, 2.4, 3}

func TestBuild_InterpolatesKnots(t *testing.T) {
	ys := sample(math.Sin, irregular)
	s, err := Build(irregular, ys)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for j, tj := range irregular {
		if got := s.Eval(tj); math.Abs(got-ys[j]) > 1e-12 {
			t.Errorf("S(t[%d]) = %.15f, want %.15f", j, got, ys[j])
		}
	}
}

func TestBuild_NaturalBoundary(t *testing.T) {
	s, err := Build(irregular, sample(math.Exp, irregular))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	m := s.SecondDerivatives()
	if m[0] != 0 || m[len(m)-1] != 0 {
		t.Errorf("boundary second derivatives = %v, %v, want 0", m[0], m[len(m)-1])
	}

	lo, hi := s.Domain()
	if d := s.SecondDeriv(lo); math.Abs(d) > 1e-12 {
		t.Errorf("S''(t0) = %g, want 0", d)
	}
	if d := s.SecondDeriv(hi); math.Abs(d) > 1e-12 {
		t.Errorf("S''(tn) = %g, want 0", d)
	}
}

func TestBuild_Continuity(t *testing.T) {
	s, err := Build(irregular, sample(math.Cos, irregular))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	const eps = 1e-6
	for j := 1; j < len(irregular)-1; j++ {
		tj := irregular[j]

		left := (s.Eval(tj) - s.Eval(tj-eps)) / eps
		right := (s.Eval(tj+eps) - s.Eval(tj)) / eps
		if math.Abs(left-right) > 1e-4 {
			t.Errorf("knot %d: one-sided slopes %.8f vs %.8f", j, left, right)
		}

		dl, dr := s.Deriv(tj-1e-10), s.Deriv(tj+1e-10)
		if math.Abs(dl-dr) > 1e-6 {
			t.Errorf("knot %d: S' jumps from %.10f to %.10f", j, dl, dr)
		}

		cl, cr := s.SecondDeriv(tj-1e-10), s.SecondDeriv(tj+1e-10)
		if math.Abs(cl-cr) > 1e-6 {
			t.Errorf("knot %d: S'' jumps from %.10f to %.10f", j, cl, cr)
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		knots  []float64
		values []float64
		want   error
	}{
		{"no knots", nil, nil, ErrDegenerateInput},
		{"one knot", []float64{1}, []float64{2}, ErrDegenerateInput},
		{"length mismatch", []float64{0, 1, 2}, []float64{0, 1}, ErrLengthMismatch},
		{"repeated knot", []float64{0, 1, 1, 2}, []float64{0, 1, 2, 3}, ErrNonMonotonicKnots},
		{"decreasing", []float64{0, 2, 1}, []float64{0, 1, 2}, ErrNonMonotonicKnots},
		{"nan value", []float64{0, 1, 2}, []float64{0, math.NaN(), 2}, ErrNonFinite},
		{"inf knot", []float64{0, 1, math.Inf(1)}, []float64{0, 1, 2}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.knots, tt.values)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

type failingSolver struct{}

func (failingSolver) Name() string { return "failing" }
func (failingSolver) Solve(*linalg.Tridiagonal, []float64) ([]float64, error) {
	return nil, linalg.ErrSingular
}

func TestBuild_SolverFailure(t *testing.T) {
	_, err := Build([]float64{0, 1, 2}, []float64{0, 1, 0}, WithSolver(failingSolver{}))
	if !errors.Is(err, linalg.ErrSingular) {
		t.Errorf("expected singular error, got %v", err)
	}
}

func TestBuild_DenseSolverMatchesThomas(t *testing.T) {
	ys := sample(runge, irregular)
	a, err := Build(irregular, ys)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(irregular, ys, WithSolver(linalg.NewDense()))
	if err != nil {
		t.Fatal(err)
	}

	ma, mb := a.SecondDerivatives(), b.SecondDerivatives()
	for i := range ma {
		if math.Abs(ma[i]-mb[i]) > 1e-10 {
			t.Errorf("M[%d]: thomas %.12f, dense %.12f", i, ma[i], mb[i])
		}
	}
}

func TestBuild_CopiesInput(t *testing.T) {
	knots := []float64{0, 1, 2}
	values := []float64{0, 1, 0}
	s, err := Build(knots, values)
	if err != nil {
		t.Fatal(err)
	}

	values[1] = 100
	knots[2] = 50
	if got := s.Eval(1); got != 1 {
		t.Errorf("spline changed with caller's slices: S(1) = %v", got)
	}
}

func TestEval_TwoKnotsIsLinear(t *testing.T) {
	s, err := Build([]float64{1, 3}, []float64{2, 6})
	if err != nil {
		t.Fatal(err)
	}

	if n := s.Intervals(); n != 1 {
		t.Fatalf("Intervals() = %d, want 1", n)
	}
	for _, x := range []float64{1, 1.5, 2, 2.75, 3} {
		if got, want := s.Eval(x), 2*x; math.Abs(got-want) > 1e-12 {
			t.Errorf("S(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestEval_LinearDataReproducedEverywhere(t *testing.T) {
	line := func(x float64) float64 { return 3 - 0.5*x }
	s, err := Build(irregular, sample(line, irregular))
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range []float64{-5, -2, -1.2, 0.1, 1.7, 3, 8} {
		if got := s.Eval(x); math.Abs(got-line(x)) > 1e-10 {
			t.Errorf("S(%v) = %v, want %v", x, got, line(x))
		}
	}
}

// Out-of-range queries reuse the boundary pieces. This mirrors the
// behaviour callers rely on; it is not a natural-spline continuation.
func TestEval_ExtrapolationReusesBoundaryPiece(t *testing.T) {
	knots := []float64{0, 1, 2, 3}
	values := []float64{0, 1, 0, 1}
	s, err := Build(knots, values)
	if err != nil {
		t.Fatal(err)
	}
	m := s.SecondDerivatives()

	piece := func(i int, x float64) float64 {
		h := knots[i+1] - knots[i]
		a, b := knots[i+1]-x, x-knots[i]
		return m[i]/(6*h)*a*a*a + m[i+1]/(6*h)*b*b*b +
			(values[i]/h-m[i]*h/6)*a + (values[i+1]/h-m[i+1]*h/6)*b
	}

	for _, x := range []float64{-1, -0.25} {
		if got, want := s.Eval(x), piece(0, x); math.Abs(got-want) > 1e-12 {
			t.Errorf("S(%v) = %v, want first piece %v", x, got, want)
		}
	}
	for _, x := range []float64{3.5, 10} {
		if got, want := s.Eval(x), piece(2, x); math.Abs(got-want) > 1e-12 {
			t.Errorf("S(%v) = %v, want last piece %v", x, got, want)
		}
	}

	// The boundary piece has nonzero curvature away from the knot.
	if d := s.SecondDeriv(-1); d == 0 {
		t.Error("expected extrapolated piece to carry curvature")
	}
}

func TestEval_UnsortedQueries(t *testing.T) {
	s, err := Build(irregular, sample(math.Sin, irregular))
	if err != nil {
		t.Fatal(err)
	}

	xs := []float64{2.9, -1.9, 0.3, 0.3, -0.7}
	got := Evaluate(s, xs)
	for k, x := range xs {
		if got[k] != s.Eval(x) {
			t.Errorf("query %d: EvalAll %v, Eval %v", k, got[k], s.Eval(x))
		}
	}
}

func TestEval_NaNPropagates(t *testing.T) {
	s, err := Build([]float64{0, 1, 2}, []float64{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Eval(math.NaN()); !math.IsNaN(v) {
		t.Errorf("S(NaN) = %v, want NaN", v)
	}
}

func TestRunge_SplineConverges(t *testing.T) {
	fine := uniform(-1, 1, 999)
	maxErr := func(n int) float64 {
		knots := uniform(-1, 1, n)
		s, err := Build(knots, sample(runge, knots))
		if err != nil {
			t.Fatal(err)
		}
		worst := 0.0
		for _, x := range fine {
			worst = math.Max(worst, math.Abs(s.Eval(x)-runge(x)))
		}
		return worst
	}

	e5, e20 := maxErr(5), maxErr(20)
	if e20 >= e5 {
		t.Errorf("error did not shrink: n=5 %.4f, n=20 %.4f", e5, e20)
	}
	if e20 > 0.05 {
		t.Errorf("n=20 max error %.4f too large", e20)
	}
}

func TestEvalParallel_MatchesSerial(t *testing.T) {
	knots := uniform(-1, 1, 40)
	s, err := Build(knots, sample(runge, knots))
	if err != nil {
		t.Fatal(err)
	}

	xs := uniform(-1.2, 1.2, 9999)
	want := s.EvalAll(xs)

	for _, workers := range []int{0, 1, 3, 16} {
		got, err := s.EvalParallel(context.Background(), xs, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for k := range want {
			if got[k] != want[k] {
				t.Fatalf("workers=%d: query %d differs: %v vs %v", workers, k, got[k], want[k])
			}
		}
	}
}

func TestEvalParallel_Cancelled(t *testing.T) {
	s, err := Build([]float64{0, 1, 2}, []float64{0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.EvalParallel(ctx, uniform(0, 2, 5000), 4); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func BenchmarkEval(b *testing.B) {
	knots := uniform(-1, 1, 1000)
	s, err := Build(knots, sample(runge, knots))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Eval(float64(i%2000)/1000 - 1)
	}
}

func BenchmarkBuild(b *testing.B) {
	knots := uniform(-1, 1, 1000)
	ys := sample(runge, knots)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Build(knots, ys)
	}
}
