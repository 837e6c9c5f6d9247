package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fibsearch/internal/export"
)

const (
	DefaultPlotWidth  = 72
	DefaultPlotHeight = 15
)

// PlotFunction draws the sampled curve with the located minimum as a second
// series. Samples map one to one onto columns, so callers should sample at
// the terminal width they want.
func PlotFunction(spec export.PlotSpec, height int) (string, error) {
	if _, _, _, _, ok := spec.Bounds(); !ok {
		return "", export.ErrNothingToPlot
	}
	if height <= 0 {
		height = DefaultPlotHeight
	}

	marker := make([]float64, len(spec.Y))
	for i := range marker {
		marker[i] = math.NaN()
	}
	if idx := nearest(spec.X, spec.MarkX); idx >= 0 && !math.IsNaN(spec.MarkY) {
		marker[idx] = spec.MarkY
	}

	return asciigraph.PlotMany([][]float64{spec.Y, marker},
		asciigraph.Height(height),
		asciigraph.Precision(4),
		asciigraph.Caption(spec.Title),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
	), nil
}

func nearest(xs []float64, x float64) int {
	if math.IsNaN(x) {
		return -1
	}
	best, dist := -1, math.Inf(1)
	for i, v := range xs {
		if d := math.Abs(v - x); d < dist {
			best, dist = i, d
		}
	}
	return best
}
