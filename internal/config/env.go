package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "FIBSEARCH_"

type envOverride struct {
	key   string
	apply func(*Config, string)
}

// Unparseable values are ignored and leave the field untouched.
var envOverrides = []envOverride{
	{"FUNCTION", func(c *Config, v string) { c.Function = v }},
	{"A", func(c *Config, v string) { setFloat(&c.A, v) }},
	{"B", func(c *Config, v string) { setFloat(&c.B, v) }},
	{"TOLERANCE", func(c *Config, v string) { setFloat(&c.Tolerance, v) }},
	{"MAX_ITERATIONS", func(c *Config, v string) { setInt(&c.MaxIterations, v) }},
	{"LOG_LEVEL", func(c *Config, v string) { c.LogLevel = v }},
	{"DATA_DIR", func(c *Config, v string) { c.DataDir = v }},
	{"THEME", func(c *Config, v string) { c.Theme = v }},
	{"SWEEP_WORKERS", func(c *Config, v string) { setInt(&c.Sweep.Workers, v) }},
	{"SWEEP_TOLERANCES", func(c *Config, v string) {
		if tols, ok := parseFloatList(v); ok {
			c.Sweep.Tolerances = tols
		}
	}},
}

// ApplyEnv overrides fields from FIBSEARCH_* environment variables.
// Supported keys: FUNCTION, A, B, TOLERANCE, MAX_ITERATIONS, LOG_LEVEL,
// DATA_DIR, THEME, SWEEP_WORKERS, SWEEP_TOLERANCES (comma separated).
func ApplyEnv(c *Config) {
	for _, o := range envOverrides {
		if val := os.Getenv(EnvPrefix + o.key); val != "" {
			o.apply(c, val)
		}
	}
}

func setFloat(dst *float64, v string) {
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		*dst = parsed
	}
}

func setInt(dst *int, v string) {
	if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		*dst = parsed
	}
}

func parseFloatList(v string) ([]float64, bool) {
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		out = append(out, parsed)
	}
	return out, true
}
