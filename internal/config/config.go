package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

const (
	DefaultFunction  = "x**2 - 4*x + 4"
	DefaultA         = 0.0
	DefaultB         = 5.0
	DefaultTolerance = 1e-5
	DefaultDataDir   = "./runs"
	DefaultLogLevel  = "info"
	DefaultTheme     = "default"
	DefaultWorkers   = 4
)

type Config struct {
	Function      string      `yaml:"function"`
	A             float64     `yaml:"a"`
	B             float64     `yaml:"b"`
	Tolerance     float64     `yaml:"tolerance"`
	MaxIterations int         `yaml:"max_iterations"`
	LogLevel      string      `yaml:"log_level"`
	DataDir       string      `yaml:"data_dir"`
	Theme         string      `yaml:"theme"`
	Sweep         SweepConfig `yaml:"sweep"`
}

// SweepConfig drives the sweep command: every tolerance is solved against
// the configured function and interval.
type SweepConfig struct {
	Tolerances []float64 `yaml:"tolerances"`
	Workers    int       `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Function:      DefaultFunction,
		A:             DefaultA,
		B:             DefaultB,
		Tolerance:     DefaultTolerance,
		MaxIterations: fibsearch.DefaultMaxIterations,
		LogLevel:      DefaultLogLevel,
		DataDir:       DefaultDataDir,
		Theme:         DefaultTheme,
		Sweep: SweepConfig{
			Tolerances: []float64{1e-1, 1e-2, 1e-3, 1e-4, 1e-5, 1e-6, 1e-8},
			Workers:    DefaultWorkers,
		},
	}
}

// Load reads a YAML file on top of base. A nil base starts from the defaults.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if base != nil {
		cfg = base.Clone()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Sweep.Tolerances = append([]float64(nil), c.Sweep.Tolerances...)
	return &out
}

// Validate rejects values the solver or the sweep would refuse anyway, so the
// CLI can fail before doing any work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Function) == "" {
		return fmt.Errorf("config: function is empty")
	}
	if err := fibsearch.Validate(c.A, c.B, c.Tolerance); err != nil {
		return err
	}
	if c.MaxIterations < 2 || c.MaxIterations > fibsearch.MaxTableIndex {
		return fmt.Errorf("config: max_iterations %d outside [2, %d]", c.MaxIterations, fibsearch.MaxTableIndex)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("config: sweep workers must be at least 1, got %d", c.Sweep.Workers)
	}
	for _, tol := range c.Sweep.Tolerances {
		if !(tol > 0) || math.IsInf(tol, 0) {
			return fmt.Errorf("config: sweep tolerance %g must be finite and greater than zero", tol)
		}
	}
	return nil
}
