package fibsearch

import (
	"fmt"
	"math"

	"github.com/san-kum/fibsearch/internal/expr"
	"github.com/san-kum/fibsearch/internal/logging"
)

// Solver runs Fibonacci searches. The zero value is not usable; use NewSolver.
type Solver struct {
	maxIterations int
	logger        logging.Logger
	observers     []Observer
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations sets the ceiling on n. Values above MaxTableIndex are
// clamped.
func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.maxIterations = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Solver) { s.observers = append(s.observers, o) }
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		maxIterations: DefaultMaxIterations,
		logger:        logging.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSolver = NewSolver()

// Solve minimizes f over [a, b] with the default solver.
func Solve(f Objective, a, b, tolerance float64) (*Result, error) {
	return defaultSolver.Solve(f, a, b, tolerance)
}

// SolveExpression parses src and minimizes it with the default solver.
func SolveExpression(src string, a, b, tolerance float64) (*Result, error) {
	return defaultSolver.SolveExpression(src, a, b, tolerance)
}

// Validate checks the preconditions shared by every run.
func Validate(a, b, tolerance float64) error {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) || a >= b {
		return &InvalidIntervalError{A: a, B: b}
	}
	// finite bounds can still be too far apart for b-a to be representable
	if math.IsInf(b-a, 0) {
		return &InvalidIntervalError{A: a, B: b}
	}
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return &InvalidToleranceError{Tolerance: tolerance}
	}
	return nil
}

// SolveExpression parses src with the restricted expression language and
// minimizes it. A parse failure is reported as a FunctionEvaluationError with
// Parse set.
func (s *Solver) SolveExpression(src string, a, b, tolerance float64) (*Result, error) {
	if err := Validate(a, b, tolerance); err != nil {
		return nil, err
	}
	e, err := expr.Parse(src)
	if err != nil {
		return nil, &FunctionEvaluationError{Expr: src, Parse: true, Err: err}
	}
	return s.Solve(e, a, b, tolerance)
}

// Solve minimizes f over [a, b]. Inputs are validated before f is evaluated.
func (s *Solver) Solve(f Objective, a, b, tolerance float64) (*Result, error) {
	if err := Validate(a, b, tolerance); err != nil {
		return nil, err
	}

	table, err := NewTable((b-a)/tolerance, s.maxIterations)
	if err != nil {
		if tts, ok := err.(*ToleranceTooSmallError); ok {
			tts.Tolerance = tolerance
		}
		return nil, err
	}

	label := describe(f)
	evaluations := 0
	eval := func(x float64) (float64, error) {
		evaluations++
		v, err := f.Eval(x)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = fmt.Errorf("non-finite value %g", v)
		}
		if err != nil {
			return 0, &FunctionEvaluationError{Expr: label, X: x, Err: err}
		}
		return v, nil
	}

	n := table.N()
	lo, hi := a, b
	x1 := probe(lo, hi, table.Ratio(n-2, n))
	x2 := probe(lo, hi, table.Ratio(n-1, n))

	f1, err := eval(x1)
	if err != nil {
		return nil, err
	}
	f2, err := eval(x2)
	if err != nil {
		return nil, err
	}

	trace := make([]IterationRecord, 0, n-1)
	for k := 1; k < n; k++ {
		rec := IterationRecord{
			Iteration: k,
			A:         lo,
			B:         hi,
			X1:        x1,
			X2:        x2,
			F1:        f1,
			F2:        f2,
			Width:     hi - lo,
		}
		trace = append(trace, rec)
		for _, o := range s.observers {
			o.OnIteration(rec)
		}
		s.logger.Debug("iteration",
			logging.Int("k", k),
			logging.Float64("a", lo),
			logging.Float64("b", hi),
			logging.Float64("width", hi-lo),
		)

		// Ties narrow to [x1, b].
		if f1 < f2 {
			hi = x2
			x2, f2 = x1, f1
			if n-k-2 < 0 {
				break
			}
			x1 = probe(lo, hi, table.Ratio(n-k-2, n-k))
			f1, err = eval(x1)
		} else {
			lo = x1
			x1, f1 = x2, f2
			if n-k-1 < 0 {
				break
			}
			x2 = probe(lo, hi, table.Ratio(n-k-1, n-k))
			f2, err = eval(x2)
		}
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		Expr:        label,
		A:           a,
		B:           b,
		Tolerance:   tolerance,
		Iterations:  n,
		FinalA:      lo,
		FinalB:      hi,
		Evaluations: evaluations,
		Table:       table,
		Trace:       trace,
	}
	if f1 < f2 {
		res.Minimizer, res.Minimum = x1, f1
	} else {
		res.Minimizer, res.Minimum = x2, f2
	}
	res.Report = BuildReport(res)

	s.logger.Info("search converged",
		logging.String("function", label),
		logging.Int("iterations", n),
		logging.Int("evaluations", evaluations),
		logging.Float64("minimizer", res.Minimizer),
		logging.Float64("minimum", res.Minimum),
	)
	return res, nil
}

// probe places a point at fraction r of [lo, hi], clamped so rounding can
// never push it outside the interval. r == 1 lands exactly on hi.
func probe(lo, hi, r float64) float64 {
	if r >= 1 {
		return hi
	}
	x := lo + r*(hi-lo)
	return math.Min(math.Max(x, lo), hi)
}

func describe(f Objective) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return "f(x)"
}
