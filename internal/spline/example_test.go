package spline_test

import (
	"fmt"

	"github.com/san-kum/approx/internal/spline"
)

func ExampleBuild() {
	s, err := spline.Build([]float64{0, 1, 2}, []float64{0, 1, 0})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(s.SecondDerivatives())
	for _, v := range s.EvalAll([]float64{0.5, 1, 1.5}) {
		fmt.Printf("%.4f\n", v)
	}
	// Output:
	// [0 -3 0]
	// 0.6875
	// 1.0000
	// 0.6875
}

func ExampleBuild_nonMonotonic() {
	_, err := spline.Build([]float64{0, 1, 1, 2}, []float64{0, 1, 2, 3})
	fmt.Println(err)
	// Output:
	// spline: knots must be strictly increasing: t[1]=1, t[2]=1
}
