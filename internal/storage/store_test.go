package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

func solve(t *testing.T, src string) *fibsearch.Result {
	t.Helper()
	res, err := fibsearch.SolveExpression(src, 0, 5, 1e-4)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := solve(t, "x**2 - 4*x + 4")
	runID, err := st.Save(res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "fib_") {
		t.Errorf("unexpected run id %q", runID)
	}
	for _, name := range []string{"metadata.json", "history.csv", "report.txt"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Function != "x**2 - 4*x + 4" {
		t.Errorf("expected function 'x**2 - 4*x + 4', got '%s'", meta.Function)
	}
	if meta.Iterations != res.Iterations {
		t.Errorf("expected %d iterations, got %d", res.Iterations, meta.Iterations)
	}
	if meta.Minimizer != res.Minimizer {
		t.Errorf("expected minimizer %g, got %g", res.Minimizer, meta.Minimizer)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(trace) != len(res.Trace) {
		t.Errorf("expected %d records, got %d", len(res.Trace), len(trace))
	}

	report, err := st.LoadReport(runID)
	if err != nil {
		t.Fatalf("load report failed: %v", err)
	}
	if report != res.Report {
		t.Error("stored report differs")
	}
}

func TestStoreLoadResult(t *testing.T) {
	st := New(t.TempDir())
	res := solve(t, "cos(x)")

	runID, err := st.Save(res)
	if err != nil {
		t.Fatal(err)
	}
	got, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if got.Expr != res.Expr || got.FinalA != res.FinalA || got.FinalB != res.FinalB {
		t.Errorf("reloaded result differs: %+v", got)
	}
	if len(got.Table) != len(res.Table) || got.Table[got.Table.N()] != res.Table[res.Table.N()] {
		t.Error("fibonacci table not preserved")
	}
	for i := range res.Trace {
		if got.Trace[i] != res.Trace[i] {
			t.Fatalf("trace row %d differs", i)
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
	if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound from an empty store, got %v", err)
	}

	var ids []string
	for _, src := range []string{"x**2", "abs(x - 1)", "sin(x)"} {
		id, err := st.Save(solve(t, src))
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		ids = append(ids, id)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, id := range ids {
		if runs[i].ID != id {
			t.Errorf("run %d is %s, want %s", i, runs[i].ID, id)
		}
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if latest != ids[2] {
		t.Errorf("latest = %s, want %s", latest, ids[2])
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil {
		t.Fatalf("missing dir should list empty, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("fib_0"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.Load("../../etc"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("path traversal should stay inside the store, got %v", err)
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	for _, failing := range []string{historyFile, reportFile, metadataFile} {
		t.Run(failing, func(t *testing.T) {
			writeFile = func(name string, data []byte, perm os.FileMode) error {
				if filepath.Base(name) == failing {
					return errors.New("disk full")
				}
				return os.WriteFile(name, data, perm)
			}
			t.Cleanup(func() { writeFile = os.WriteFile })

			if _, err := st.Save(solve(t, "x**2")); err == nil {
				t.Fatal("expected save to fail")
			}

			entries, err := os.ReadDir(tmpDir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("partial run directory left behind: %v", entries)
			}
			if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
				t.Errorf("expected ErrRunNotFound, got %v", err)
			}
		})
	}
}
