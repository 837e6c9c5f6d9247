package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

// TraceHeader is the first row of every iteration history file.
var TraceHeader = []string{"iteration", "a", "b", "x1", "x2", "f(x1)", "f(x2)", "interval width"}

func WriteTraceCSV(w io.Writer, trace []fibsearch.IterationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TraceHeader); err != nil {
		return err
	}
	for _, rec := range trace {
		row := []string{
			strconv.Itoa(rec.Iteration),
			formatFloat(rec.A),
			formatFloat(rec.B),
			formatFloat(rec.X1),
			formatFloat(rec.X2),
			formatFloat(rec.F1),
			formatFloat(rec.F2),
			formatFloat(rec.Width),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTraceCSV parses a file written by WriteTraceCSV.
func ReadTraceCSV(r io.Reader) ([]fibsearch.IterationRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(TraceHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("trace csv: missing header")
	}
	for i, h := range TraceHeader {
		if records[0][i] != h {
			return nil, fmt.Errorf("trace csv: column %d is %q, want %q", i, records[0][i], h)
		}
	}

	trace := make([]fibsearch.IterationRecord, 0, len(records)-1)
	for line, row := range records[1:] {
		k, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("trace csv line %d: %w", line+2, err)
		}
		var vals [7]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("trace csv line %d: %w", line+2, err)
			}
		}
		trace = append(trace, fibsearch.IterationRecord{
			Iteration: k,
			A:         vals[0],
			B:         vals[1],
			X1:        vals[2],
			X2:        vals[3],
			F1:        vals[4],
			F2:        vals[5],
			Width:     vals[6],
		})
	}
	return trace, nil
}

// WriteJSON writes the whole result, trace and report included.
func WriteJSON(w io.Writer, res *fibsearch.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func ReadJSON(r io.Reader) (*fibsearch.Result, error) {
	var res fibsearch.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func WriteReport(w io.Writer, res *fibsearch.Result) error {
	report := res.Report
	if report == "" {
		report = fibsearch.BuildReport(res)
	}
	_, err := io.WriteString(w, report)
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
