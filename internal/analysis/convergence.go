package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

// InvPhi is the golden-section reduction factor, 1/phi.
const InvPhi = 1 / math.Phi

type Report struct {
	// Ratios[k-1] is width after iteration k divided by width before it.
	Ratios         []float64
	ExpectedRatios []float64
	MaxRatioError  float64

	Evaluations       int
	GoldenEvaluations int
	FinalWidth        float64
	// Reduction is the initial width divided by the final width.
	Reduction float64
}

// Convergence measures how closely a run followed the Fibonacci schedule.
// The result must carry its trace and table.
func Convergence(res *fibsearch.Result) Report {
	widths := res.Widths()
	n := res.Table.N()

	rep := Report{
		Ratios:         make([]float64, 0, len(widths)-1),
		ExpectedRatios: make([]float64, 0, len(widths)-1),
		Evaluations:    res.Evaluations,
		FinalWidth:     res.FinalWidth(),
	}
	for i := 1; i < len(widths); i++ {
		k := i
		got := widths[i] / widths[i-1]
		want := math.NaN()
		if n-k >= 0 && n-k+1 <= n {
			want = res.Table.Ratio(n-k, n-k+1)
		}
		rep.Ratios = append(rep.Ratios, got)
		rep.ExpectedRatios = append(rep.ExpectedRatios, want)
		if d := math.Abs(got - want); d > rep.MaxRatioError {
			rep.MaxRatioError = d
		}
	}

	initial := res.B - res.A
	if rep.FinalWidth > 0 {
		rep.Reduction = initial / rep.FinalWidth
	}
	rep.GoldenEvaluations = GoldenEvaluations(initial, rep.FinalWidth)
	return rep
}

// GoldenEvaluations returns how many evaluations golden-section search needs
// to shrink an interval of width initial to at most final.
func GoldenEvaluations(initial, final float64) int {
	if !(final > 0) || final >= initial {
		return 2
	}
	steps := math.Ceil(math.Log(final/initial) / math.Log(InvPhi))
	// Golden section spends two evaluations before its first reduction.
	return int(steps) + 1
}

// Saved is how many evaluations the Fibonacci schedule saved over golden
// section for the same final width.
func (r Report) Saved() int { return r.GoldenEvaluations - r.Evaluations }

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "reduction:          %.6g\n", r.Reduction)
	fmt.Fprintf(&sb, "final width:        %.6e\n", r.FinalWidth)
	fmt.Fprintf(&sb, "max ratio error:    %.3e\n", r.MaxRatioError)
	fmt.Fprintf(&sb, "evaluations:        %d\n", r.Evaluations)
	fmt.Fprintf(&sb, "golden section:     %d\n", r.GoldenEvaluations)
	fmt.Fprintf(&sb, "saved:              %d\n", r.Saved())
	if len(r.Ratios) > 0 {
		fmt.Fprintf(&sb, "last ratio:         %.6f (1/phi = %.6f)\n", r.Ratios[len(r.Ratios)-1], InvPhi)
	}
	return sb.String()
}
