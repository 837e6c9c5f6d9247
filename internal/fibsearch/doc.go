// Package fibsearch implements the Fibonacci search method for minimizing a
// unimodal function of one variable over a closed interval.
//
// The package provides:
//
//   - [Table]: the Fibonacci numbers F0=1, F1=1, Fi=Fi-1+Fi-2 sized for a run
//   - [Solver]: validates inputs, places probes and narrows the interval
//   - [Result]: minimizer, minimum, iteration trace and a text report
//   - typed errors for every rejected input and failed evaluation
//
// For an interval [a, b] and tolerance t the table is extended until its last
// entry Fn exceeds (b-a)/t. The search then performs exactly n-1 reductions,
// each one reusing one of the two interior probes, so a run costs n or n+1
// function evaluations and leaves an interval of width (b-a)/Fn < t.
//
// # Example
//
//	res, err := fibsearch.SolveExpression("x**2 - 4*x + 4", 0, 5, 1e-5)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Minimizer, res.Minimum)
//
// # Evaluation failures
//
// The solver fails fast: the first probe at which the objective returns an
// error or a non-finite value aborts the run with a [*FunctionEvaluationError]
// naming that x. No partial result is returned.
//
// # Thread Safety
//
// A [Solver] only carries configuration. Every call to Solve keeps its state
// local, so one Solver can serve any number of goroutines, provided the
// objective and any registered observers are themselves safe to share.
package fibsearch
