package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/fibsearch/internal/export"
	"github.com/san-kum/fibsearch/internal/fibsearch"
)

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
	reportFile   = "report.txt"
)

// ErrRunNotFound is returned for run ids with no stored metadata.
var ErrRunNotFound = errors.New("storage: run not found")

// writeFile is replaced in tests to simulate a failing disk.
var writeFile = os.WriteFile

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunMetadata is everything about a run except its trace and report.
type RunMetadata struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Function    string          `json:"function"`
	A           float64         `json:"a"`
	B           float64         `json:"b"`
	Tolerance   float64         `json:"tolerance"`
	Iterations  int             `json:"iterations"`
	Evaluations int             `json:"evaluations"`
	Minimizer   float64         `json:"minimizer"`
	Minimum     float64         `json:"minimum"`
	FinalA      float64         `json:"final_a"`
	FinalB      float64         `json:"final_b"`
	Table       fibsearch.Table `json:"fibonacci"`
}

// Save writes a run directory holding metadata.json, history.csv and
// report.txt, and returns the new run id. metadata.json is written last, so
// List never sees a partial run; on failure the directory is removed.
func (s *Store) Save(res *fibsearch.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("fib_%d_%s", now.UnixNano(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, runID, now, res); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

func writeRun(runDir, runID string, now time.Time, res *fibsearch.Result) error {
	var csvBuf bytes.Buffer
	if err := export.WriteTraceCSV(&csvBuf, res.Trace); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(runDir, historyFile), csvBuf.Bytes(), 0644); err != nil {
		return err
	}

	var reportBuf bytes.Buffer
	if err := export.WriteReport(&reportBuf, res); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(runDir, reportFile), reportBuf.Bytes(), 0644); err != nil {
		return err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Function:    res.Expr,
		A:           res.A,
		B:           res.B,
		Tolerance:   res.Tolerance,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Minimizer:   res.Minimizer,
		Minimum:     res.Minimum,
		FinalA:      res.FinalA,
		FinalB:      res.FinalB,
		Table:       res.Table,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(runDir, metadataFile), data, 0644)
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the id of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", ErrRunNotFound
	}
	return runs[len(runs)-1].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]fibsearch.IterationRecord, error) {
	f, err := os.Open(s.path(runID, historyFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadTraceCSV(f)
}

func (s *Store) LoadReport(runID string) (string, error) {
	data, err := os.ReadFile(s.path(runID, reportFile))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadResult reassembles a full Result from the three run files.
func (s *Store) LoadResult(runID string) (*fibsearch.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return nil, err
	}
	report, err := s.LoadReport(runID)
	if err != nil {
		return nil, err
	}
	return &fibsearch.Result{
		Expr:        meta.Function,
		A:           meta.A,
		B:           meta.B,
		Tolerance:   meta.Tolerance,
		Minimizer:   meta.Minimizer,
		Minimum:     meta.Minimum,
		Iterations:  meta.Iterations,
		FinalA:      meta.FinalA,
		FinalB:      meta.FinalB,
		Evaluations: meta.Evaluations,
		Table:       meta.Table,
		Trace:       trace,
		Report:      report,
	}, nil
}

// path rejects ids that would escape the store directory.
func (s *Store) path(runID, name string) string {
	return filepath.Join(s.baseDir, filepath.Base(filepath.Clean("/"+runID)), name)
}
