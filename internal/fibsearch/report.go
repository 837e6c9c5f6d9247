package fibsearch

import (
	"fmt"
	"strings"
)

// BuildReport renders the plain-text execution report of a run.
func BuildReport(r *Result) string {
	var sb strings.Builder

	sb.WriteString("FIBONACCI SEARCH METHOD - EXECUTION REPORT\n")
	sb.WriteString("==========================================\n")
	fmt.Fprintf(&sb, "Function: %s\n", r.Expr)
	fmt.Fprintf(&sb, "Initial Interval: [%v, %v]\n", r.A, r.B)
	fmt.Fprintf(&sb, "Tolerance: %v\n", r.Tolerance)
	sb.WriteString("\n")
	sb.WriteString("RESULTS\n")
	sb.WriteString("-------\n")
	fmt.Fprintf(&sb, "Total Iterations: %d\n", r.Iterations)
	fmt.Fprintf(&sb, "Function Evaluations: %d\n", r.Evaluations)
	fmt.Fprintf(&sb, "Converged Interval: [%.8f, %.8f]\n", r.FinalA, r.FinalB)
	fmt.Fprintf(&sb, "Approximate Minimizer (x): %.8f\n", r.Minimizer)
	fmt.Fprintf(&sb, "Minimum Value f(x): %.8f\n", r.Minimum)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Final Interval Width: %.8f\n", r.FinalWidth())

	return sb.String()
}
