package export

import (
	"math"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

const (
	// DefaultSamples is the number of points plotted across the view.
	DefaultSamples = 400

	// DefaultMargin widens the view on both sides of the searched interval.
	DefaultMargin = 1.0
)

// Sample evaluates f at n evenly spaced points of [lo, hi]. Points where f is
// undefined or not finite are NaN so renderers can leave a gap.
func Sample(f fibsearch.Objective, lo, hi float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		x := lo + float64(i)*step
		if i == n-1 {
			x = hi
		}
		xs[i] = x
		y, err := f.Eval(x)
		if err != nil || math.IsInf(y, 0) {
			y = math.NaN()
		}
		ys[i] = y
	}
	return xs, ys
}

// PlotSpec describes a function plot with the located minimum marked.
type PlotSpec struct {
	Title    string
	X, Y     []float64
	MarkX    float64
	MarkY    float64
	A, B     float64
	Interval bool
}

// NewPlotSpec samples f over the searched interval widened by DefaultMargin.
func NewPlotSpec(res *fibsearch.Result, f fibsearch.Objective, points int) PlotSpec {
	if points <= 0 {
		points = DefaultSamples
	}
	xs, ys := Sample(f, res.A-DefaultMargin, res.B+DefaultMargin, points)
	return PlotSpec{
		Title:    "f(x) = " + res.Expr,
		X:        xs,
		Y:        ys,
		MarkX:    res.Minimizer,
		MarkY:    res.Minimum,
		A:        res.A,
		B:        res.B,
		Interval: true,
	}
}

// Bounds returns the extent of the finite samples. ok is false when no
// sample is finite.
func (p PlotSpec) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i, y := range p.Y {
		if math.IsNaN(y) {
			continue
		}
		ok = true
		minX = math.Min(minX, p.X[i])
		maxX = math.Max(maxX, p.X[i])
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return minX, maxX, minY, maxY, ok
}
