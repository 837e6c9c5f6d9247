package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strings"
)

var ErrNothingToPlot = errors.New("export: no finite samples to plot")

const (
	SVGWidth  = 800
	SVGHeight = 500
	svgPad    = 40
)

// WriteSVG renders the plot as a standalone SVG document. Undefined samples
// split the curve into separate segments.
func WriteSVG(w io.Writer, spec PlotSpec) error {
	minX, maxX, minY, maxY, ok := spec.Bounds()
	if !ok {
		return ErrNothingToPlot
	}

	if spec.Interval {
		minX = math.Min(minX, spec.A)
		maxX = math.Max(maxX, spec.B)
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	plotW := float64(SVGWidth - 2*svgPad)
	plotH := float64(SVGHeight - 2*svgPad)
	px := func(x float64) float64 { return svgPad + (x-minX)/rangeX*plotW }
	py := func(y float64) float64 { return svgPad + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, SVGWidth, SVGHeight, SVGWidth, SVGHeight)

	if spec.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" fill="#e0e0e0" font-family="monospace" font-size="14">%s</text>
`, svgPad, svgPad/2, html.EscapeString(spec.Title))
	}

	if spec.Interval {
		for _, x := range []float64{spec.A, spec.B} {
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="#555555" stroke-dasharray="4 4"/>
`, px(x), svgPad, px(x), SVGHeight-svgPad)
		}
	}

	sb.WriteString(`<path fill="none" stroke="#00ff00" stroke-width="1.5" d="`)
	pen, first := false, true
	for i, y := range spec.Y {
		if math.IsNaN(y) {
			pen = false
			continue
		}
		cmd := "L"
		if !pen {
			cmd = "M"
		}
		if !first {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, px(spec.X[i]), py(y))
		pen, first = true, false
	}
	sb.WriteString("\"/>\n")

	if !math.IsNaN(spec.MarkX) && !math.IsNaN(spec.MarkY) {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="5" fill="#ff4040"/>
<text x="%.1f" y="%.1f" fill="#ff8080" font-family="monospace" font-size="12">x*=%.6g</text>
`, px(spec.MarkX), py(spec.MarkY), px(spec.MarkX)+8, py(spec.MarkY)-8, spec.MarkX)
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
