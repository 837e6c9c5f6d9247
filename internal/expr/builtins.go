package expr

import (
	"math"
	"sort"
)

// Builtin describes an allow-listed function. MaxArgs is -1 when variadic.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	apply   func(args []float64) (float64, error)
}

var builtins = map[string]*Builtin{}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func register(name string, minArgs, maxArgs int, fn func([]float64) (float64, error)) {
	builtins[name] = &Builtin{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, apply: fn}
}

func unary(fn func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) { return fn(args[0]), nil }
}

func init() {
	register("abs", 1, 1, unary(math.Abs))
	register("sin", 1, 1, unary(math.Sin))
	register("cos", 1, 1, unary(math.Cos))
	register("exp", 1, 1, unary(math.Exp))
	register("log", 1, 1, func(args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, &DomainError{Op: "log", Args: args}
		}
		return math.Log(args[0]), nil
	})
	register("sqrt", 1, 1, func(args []float64) (float64, error) {
		if args[0] < 0 {
			return 0, &DomainError{Op: "sqrt", Args: args}
		}
		return math.Sqrt(args[0]), nil
	})
	register("pow", 2, 2, func(args []float64) (float64, error) {
		return math.Pow(args[0], args[1]), nil
	})
	register("min", 2, -1, func(args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Min(m, v)
		}
		return m, nil
	})
	register("max", 2, -1, func(args []float64) (float64, error) {
		m := args[0]
		for _, v := range args[1:] {
			m = math.Max(m, v)
		}
		return m, nil
	})
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (*Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Names lists every name an expression may use, sorted.
func Names() []string {
	names := []string{"x"}
	for name := range builtins {
		names = append(names, name)
	}
	for name := range constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
