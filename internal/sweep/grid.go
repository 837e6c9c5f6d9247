package sweep

import "math"

// Interval is a closed search interval [A, B].
type Interval struct {
	A, B float64
}

// Grid expands the cartesian product of functions, intervals and tolerances
// into jobs, ordered function-major then interval then tolerance.
func Grid(functions []string, intervals []Interval, tolerances []float64) []Job {
	jobs := make([]Job, 0, len(functions)*len(intervals)*len(tolerances))
	for _, f := range functions {
		for _, iv := range intervals {
			for _, tol := range tolerances {
				jobs = append(jobs, Job{Function: f, A: iv.A, B: iv.B, Tolerance: tol})
			}
		}
	}
	return jobs
}

// Best returns the index of the successful outcome with the lowest minimum,
// or -1 if every job failed. Ties keep the earlier job.
func Best(outcomes []Outcome) int {
	best, value := -1, math.Inf(1)
	for i, o := range outcomes {
		if o.Err != nil || o.Result == nil {
			continue
		}
		if o.Result.Minimum < value {
			best, value = i, o.Result.Minimum
		}
	}
	return best
}
