package expr

import (
	"math"
	"strconv"
	"strings"
)

// Node is one vertex of a parsed expression tree. The interface is sealed;
// only the types in this file implement it.
type Node interface {
	Eval(x float64) (float64, error)
	String() string
	node()
}

// Const is a numeric literal or a named constant.
type Const struct {
	Value float64
	Name  string
}

func (c Const) Eval(float64) (float64, error) { return c.Value, nil }

func (c Const) String() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

func (Const) node() {}

// Var is the bound variable x.
type Var struct{}

func (Var) Eval(x float64) (float64, error) { return x, nil }
func (Var) String() string                  { return "x" }
func (Var) node()                           {}

// Op enumerates the binary operators.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	}
	return "?"
}

// Binary applies Op to two operands.
type Binary struct {
	Op          Op
	Left, Right Node
}

func (b Binary) Eval(x float64) (float64, error) {
	l, err := b.Left.Eval(x)
	if err != nil {
		return 0, err
	}
	r, err := b.Right.Eval(x)
	if err != nil {
		return 0, err
	}

	var v float64
	switch b.Op {
	case OpAdd:
		v = l + r
	case OpSub:
		v = l - r
	case OpMul:
		v = l * r
	case OpDiv:
		if r == 0 {
			return 0, &DomainError{Op: "/", Args: []float64{l, r}}
		}
		v = l / r
	case OpPow:
		v = math.Pow(l, r)
	}
	if !finite(v) {
		return 0, &DomainError{Op: b.Op.String(), Args: []float64{l, r}}
	}
	return v, nil
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (Binary) node() {}

// Call applies an allow-listed builtin to its arguments.
type Call struct {
	Fn   *Builtin
	Args []Node
}

func (c Call) Eval(x float64) (float64, error) {
	vals := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval(x)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	v, err := c.Fn.apply(vals)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, &DomainError{Op: c.Fn.Name, Args: vals}
	}
	return v, nil
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Fn.Name + "(" + strings.Join(args, ", ") + ")"
}

func (Call) node() {}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
