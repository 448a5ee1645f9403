package linalg

import "errors"

var (
	// ErrSingular indicates the system has no unique solution within tolerance.
	ErrSingular = errors.New("linalg: singular or ill-conditioned system")
	// ErrDimension indicates mismatched matrix and vector sizes.
	ErrDimension = errors.New("linalg: dimension mismatch")
)
