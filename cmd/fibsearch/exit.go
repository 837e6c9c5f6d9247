package main

import (
	"errors"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

// Process exit codes.
const (
	ExitSuccess            = 0
	ExitErrorGeneric       = 1
	ExitInvalidInput       = 2
	ExitFunctionEvaluation = 3
	ExitConfig             = 4
	ExitToleranceTooSmall  = 5
)

// configError marks failures to resolve configuration: unknown presets,
// unreadable or invalid config files.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

// reportedError wraps an error the command already rendered to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit code. Solver errors win over
// the configuration wrapper, so an invalid interval read from a file still
// exits with ExitInvalidInput.
func exitCode(err error) int {
	var cfgErr *configError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, fibsearch.ErrInvalidInterval), errors.Is(err, fibsearch.ErrInvalidTolerance):
		return ExitInvalidInput
	case errors.Is(err, fibsearch.ErrFunctionEvaluation):
		return ExitFunctionEvaluation
	case errors.Is(err, fibsearch.ErrToleranceTooSmall):
		return ExitToleranceTooSmall
	case errors.As(err, &cfgErr):
		return ExitConfig
	default:
		return ExitErrorGeneric
	}
}
