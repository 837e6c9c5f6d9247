package export

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/fibsearch/internal/expr"
	"github.com/san-kum/fibsearch/internal/fibsearch"
)

func solveQuadratic(t *testing.T) *fibsearch.Result {
	t.Helper()
	res, err := fibsearch.SolveExpression("x**2 - 4*x + 4", 0, 5, 1e-3)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return res
}

func TestTraceCSVRoundTrip(t *testing.T) {
	res := solveQuadratic(t)

	var buf bytes.Buffer
	if err := WriteTraceCSV(&buf, res.Trace); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if firstLine != "iteration,a,b,x1,x2,f(x1),f(x2),interval width" {
		t.Errorf("unexpected header %q", firstLine)
	}

	trace, err := ReadTraceCSV(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(trace) != len(res.Trace) {
		t.Fatalf("expected %d rows, got %d", len(res.Trace), len(trace))
	}
	for i := range trace {
		if trace[i] != res.Trace[i] {
			t.Errorf("row %d: got %+v, want %+v", i, trace[i], res.Trace[i])
		}
	}
}

func TestReadTraceCSVRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"wrong header", "k,a,b,x1,x2,f1,f2,w\n"},
		{"bad number", "iteration,a,b,x1,x2,f(x1),f(x2),interval width\n1,0,5,abc,3,1,1,5\n"},
		{"short row", "iteration,a,b,x1,x2,f(x1),f(x2),interval width\n1,0,5\n"},
	}
	for _, tt := range tests {
		if _, err := ReadTraceCSV(strings.NewReader(tt.in)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := solveQuadratic(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"function": "x**2 - 4*x + 4"`) {
		t.Errorf("json missing function field:\n%s", buf.String())
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Minimizer != res.Minimizer || got.Iterations != res.Iterations {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Table) != len(res.Table) || len(got.Trace) != len(res.Trace) {
		t.Error("round trip lost table or trace")
	}
}

func TestWriteReport(t *testing.T) {
	res := solveQuadratic(t)
	var buf bytes.Buffer
	if err := WriteReport(&buf, res); err != nil {
		t.Fatal(err)
	}
	if buf.String() != res.Report {
		t.Error("report output differs from the stored report")
	}

	res.Report = ""
	buf.Reset()
	if err := WriteReport(&buf, res); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "FIBONACCI SEARCH METHOD") {
		t.Error("missing report should be rebuilt")
	}
}

func TestSampleMarksUndefinedPoints(t *testing.T) {
	xs, ys := Sample(expr.MustParse("log(x)"), -1, 1, 5)
	if len(xs) != 5 || len(ys) != 5 {
		t.Fatalf("expected 5 samples, got %d/%d", len(xs), len(ys))
	}
	if xs[0] != -1 || xs[4] != 1 {
		t.Errorf("endpoints %g, %g", xs[0], xs[4])
	}
	for i := 0; i < 3; i++ {
		if !math.IsNaN(ys[i]) {
			t.Errorf("log(%g) should be NaN, got %g", xs[i], ys[i])
		}
	}
	if ys[4] != 0 {
		t.Errorf("log(1) = %g", ys[4])
	}
}

func TestNewPlotSpec(t *testing.T) {
	res := solveQuadratic(t)
	spec := NewPlotSpec(res, expr.MustParse(res.Expr), 0)

	if len(spec.X) != DefaultSamples {
		t.Errorf("expected %d samples, got %d", DefaultSamples, len(spec.X))
	}
	if spec.X[0] != -1 || spec.X[len(spec.X)-1] != 6 {
		t.Errorf("view should be [a-1, b+1], got [%g, %g]", spec.X[0], spec.X[len(spec.X)-1])
	}
	if spec.MarkX != res.Minimizer {
		t.Error("marker should sit on the minimizer")
	}
}

func TestWriteSVG(t *testing.T) {
	res := solveQuadratic(t)
	spec := NewPlotSpec(res, expr.MustParse(res.Expr), 50)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, spec); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "<path", "<circle", "stroke-dasharray", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(out, "NaN") {
		t.Error("svg must not contain NaN coordinates")
	}
}

func TestWriteSVGGaps(t *testing.T) {
	spec := PlotSpec{
		X:     []float64{0, 1, 2, 3, 4},
		Y:     []float64{1, 2, math.NaN(), 2, 1},
		MarkX: math.NaN(),
		MarkY: math.NaN(),
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, spec); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "M"); n != 2 {
		t.Errorf("expected 2 segments, got %d", n)
	}
}

func TestWriteSVGNothingToPlot(t *testing.T) {
	spec := PlotSpec{X: []float64{0, 1}, Y: []float64{math.NaN(), math.NaN()}}
	if err := WriteSVG(&bytes.Buffer{}, spec); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}
