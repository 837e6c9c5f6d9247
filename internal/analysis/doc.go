// Package analysis inspects finished searches.
//
// [Convergence] checks that each reduction shrank the interval by the
// Fibonacci ratio F[n-k]/F[n-k+1] and compares the evaluation count with
// golden-section search reaching the same final width:
//
//	rep := analysis.Convergence(res)
//	if rep.MaxRatioError > 1e-9 {
//	    // the trace does not follow the Fibonacci schedule
//	}
package analysis
