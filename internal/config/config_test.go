package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Function != DefaultFunction {
		t.Errorf("expected function %q, got %q", DefaultFunction, cfg.Function)
	}
	if cfg.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if cfg.MaxIterations != fibsearch.DefaultMaxIterations {
		t.Errorf("expected max iterations %d, got %d", fibsearch.DefaultMaxIterations, cfg.MaxIterations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantIs error
	}{
		{"empty function", func(c *Config) { c.Function = "  " }, nil},
		{"reversed interval", func(c *Config) { c.A, c.B = 5, 0 }, fibsearch.ErrInvalidInterval},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }, fibsearch.ErrInvalidTolerance},
		{"ceiling too high", func(c *Config) { c.MaxIterations = 91 }, nil},
		{"ceiling too low", func(c *Config) { c.MaxIterations = 1 }, nil},
		{"no workers", func(c *Config) { c.Sweep.Workers = 0 }, nil},
		{"bad sweep tolerance", func(c *Config) { c.Sweep.Tolerances = []float64{1e-3, -1} }, nil},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantIs, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fib.yaml")
	cfg := DefaultConfig()
	cfg.Function = "cos(x)"
	cfg.A, cfg.B = 1, 4
	cfg.Sweep.Tolerances = []float64{0.5, 0.25}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Function != "cos(x)" || loaded.A != 1 || loaded.B != 4 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Sweep.Tolerances) != 2 || loaded.Sweep.Tolerances[1] != 0.25 {
		t.Errorf("sweep tolerances = %v", loaded.Sweep.Tolerances)
	}
}

func TestLoadKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	base := DefaultConfig()
	GetPreset("cosine").Apply(base)
	if err := os.WriteFile(path, []byte("tolerance: 0.01\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Function != "cos(x)" {
		t.Errorf("file without function should keep the preset, got %q", cfg.Function)
	}
	if cfg.Tolerance != 0.01 {
		t.Errorf("expected tolerance 0.01, got %g", cfg.Tolerance)
	}
	if base.Tolerance == 0.01 {
		t.Error("Load must not modify the base config")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FIBSEARCH_FUNCTION", "sin(x)")
	t.Setenv("FIBSEARCH_A", "-1.5")
	t.Setenv("FIBSEARCH_TOLERANCE", "1e-3")
	t.Setenv("FIBSEARCH_MAX_ITERATIONS", "not-a-number")
	t.Setenv("FIBSEARCH_SWEEP_TOLERANCES", "0.1, 0.01")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	if cfg.Function != "sin(x)" {
		t.Errorf("function = %q", cfg.Function)
	}
	if cfg.A != -1.5 {
		t.Errorf("a = %g", cfg.A)
	}
	if cfg.Tolerance != 1e-3 {
		t.Errorf("tolerance = %g", cfg.Tolerance)
	}
	if cfg.MaxIterations != fibsearch.DefaultMaxIterations {
		t.Errorf("invalid value should be ignored, got %d", cfg.MaxIterations)
	}
	if len(cfg.Sweep.Tolerances) != 2 || cfg.Sweep.Tolerances[1] != 0.01 {
		t.Errorf("sweep tolerances = %v", cfg.Sweep.Tolerances)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("quadratic")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.A != 0 || p.B != 5 {
		t.Errorf("expected [0, 5], got [%g, %g]", p.A, p.B)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsSolve(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		_, err := fibsearch.SolveExpression(p.Function, p.A, p.B, p.Tolerance)
		if name == "log" {
			if !errors.Is(err, fibsearch.ErrFunctionEvaluation) {
				t.Errorf("log preset should fail evaluation, got %v", err)
			}
			continue
		}
		if err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
