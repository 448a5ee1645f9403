package spline

import "errors"

var (
	ErrDegenerateInput   = errors.New("spline: at least two knots are required")
	ErrLengthMismatch    = errors.New("spline: knots and values must have the same length")
	ErrNonMonotonicKnots = errors.New("spline: knots must be strictly increasing")
	ErrNonFinite         = errors.New("spline: samples must be finite")
)
