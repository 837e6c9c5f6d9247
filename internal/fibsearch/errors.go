package fibsearch

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidInterval    = errors.New("fibsearch: invalid interval")
	ErrInvalidTolerance   = errors.New("fibsearch: invalid tolerance")
	ErrFunctionEvaluation = errors.New("fibsearch: function evaluation failed")
	ErrToleranceTooSmall  = errors.New("fibsearch: tolerance too small")
)

// InvalidIntervalError is returned when the bounds are not finite, a >= b, or
// b-a overflows.
type InvalidIntervalError struct {
	A, B float64
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("fibsearch: invalid interval [%g, %g]: bounds must be finite with a < b and a finite width", e.A, e.B)
}

func (e *InvalidIntervalError) Is(target error) bool { return target == ErrInvalidInterval }

// InvalidToleranceError is returned when the tolerance is not strictly positive.
type InvalidToleranceError struct {
	Tolerance float64
}

func (e *InvalidToleranceError) Error() string {
	return fmt.Sprintf("fibsearch: invalid tolerance %g: must be finite and greater than zero", e.Tolerance)
}

func (e *InvalidToleranceError) Is(target error) bool { return target == ErrInvalidTolerance }

// FunctionEvaluationError is returned when the objective cannot be evaluated
// at a probe point, or, with Parse set, when its source text does not parse.
type FunctionEvaluationError struct {
	Expr  string
	X     float64
	Parse bool
	Err   error
}

func (e *FunctionEvaluationError) Error() string {
	if e.Parse {
		return fmt.Sprintf("fibsearch: cannot parse f(x) = %s: %v", e.Expr, e.Err)
	}
	return fmt.Sprintf("fibsearch: f(x) = %s is undefined at x = %g: %v", e.Expr, e.X, e.Err)
}

func (e *FunctionEvaluationError) Unwrap() error { return e.Err }

func (e *FunctionEvaluationError) Is(target error) bool { return target == ErrFunctionEvaluation }

// ToleranceTooSmallError is returned when reaching the tolerance would need a
// Fibonacci table longer than the configured iteration ceiling.
type ToleranceTooSmallError struct {
	Tolerance float64
	Ratio     float64
	Limit     int
}

func (e *ToleranceTooSmallError) Error() string {
	return fmt.Sprintf("fibsearch: tolerance %g too small: (b-a)/tolerance = %g needs more than %d iterations",
		e.Tolerance, e.Ratio, e.Limit)
}

func (e *ToleranceTooSmallError) Is(target error) bool { return target == ErrToleranceTooSmall }
