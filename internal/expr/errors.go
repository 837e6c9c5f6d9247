package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDomain is matched by every evaluation failure.
var ErrDomain = errors.New("expr: value outside function domain")

// SyntaxError reports malformed source text. Pos is a byte offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: syntax error at offset %d: %s", e.Pos, e.Msg)
}

// UnknownNameError reports a name that is not x, a constant or a builtin.
type UnknownNameError struct {
	Name string
	Pos  int
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("expr: unknown name %q at offset %d (allowed: %s)", e.Name, e.Pos, strings.Join(Names(), ", "))
}

// ArityError reports a builtin called with the wrong number of arguments.
// Max is -1 for variadic builtins.
type ArityError struct {
	Name string
	Got  int
	Min  int
	Max  int
}

func (e *ArityError) Error() string {
	switch {
	case e.Max < 0:
		return fmt.Sprintf("expr: %s takes at least %d arguments, got %d", e.Name, e.Min, e.Got)
	case e.Min == e.Max:
		return fmt.Sprintf("expr: %s takes %d argument(s), got %d", e.Name, e.Min, e.Got)
	default:
		return fmt.Sprintf("expr: %s takes %d to %d arguments, got %d", e.Name, e.Min, e.Max, e.Got)
	}
}

// DomainError reports an operation evaluated outside its domain.
type DomainError struct {
	Op   string
	Args []float64
}

func (e *DomainError) Error() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = strconv.FormatFloat(a, 'g', -1, 64)
	}
	return fmt.Sprintf("expr: %s undefined for (%s)", e.Op, strings.Join(args, ", "))
}

func (e *DomainError) Unwrap() error { return ErrDomain }
