package fibsearch

// Objective is a function of one variable that may be undefined at some x.
type Objective interface {
	Eval(x float64) (float64, error)
}

// ObjectiveFunc adapts a plain function to Objective.
type ObjectiveFunc func(x float64) (float64, error)

func (f ObjectiveFunc) Eval(x float64) (float64, error) { return f(x) }

// Pure wraps a total function that cannot fail.
func Pure(f func(float64) float64) Objective {
	return ObjectiveFunc(func(x float64) (float64, error) { return f(x), nil })
}

// Observer is notified of every iteration record as it is appended.
type Observer interface {
	OnIteration(rec IterationRecord)
}

// IterationRecord is the state entering one iteration, before its reduction.
type IterationRecord struct {
	Iteration int     `json:"iteration"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	X1        float64 `json:"x1"`
	X2        float64 `json:"x2"`
	F1        float64 `json:"f_x1"`
	F2        float64 `json:"f_x2"`
	Width     float64 `json:"width"`
}

// Result is the outcome of one run. It is owned by the caller.
type Result struct {
	Expr        string            `json:"function"`
	A           float64           `json:"a"`
	B           float64           `json:"b"`
	Tolerance   float64           `json:"tolerance"`
	Minimizer   float64           `json:"minimizer"`
	Minimum     float64           `json:"minimum"`
	Iterations  int               `json:"iterations"`
	FinalA      float64           `json:"final_a"`
	FinalB      float64           `json:"final_b"`
	Evaluations int               `json:"evaluations"`
	Table       Table             `json:"fibonacci"`
	Trace       []IterationRecord `json:"trace"`
	Report      string            `json:"report"`
}

// FinalWidth returns the width of the converged interval.
func (r *Result) FinalWidth() float64 { return r.FinalB - r.FinalA }

// Widths returns the interval width entering each iteration followed by the
// final width.
func (r *Result) Widths() []float64 {
	w := make([]float64, 0, len(r.Trace)+1)
	for _, rec := range r.Trace {
		w = append(w, rec.Width)
	}
	return append(w, r.FinalWidth())
}
