package config

import "sort"

// Preset is a named problem: a function, an interval and a tolerance.
type Preset struct {
	Description string
	Function    string
	A, B        float64
	Tolerance   float64
}

var Presets = map[string]Preset{
	"quadratic": {
		Description: "parabola with its vertex at x=2",
		Function:    "x**2 - 4*x + 4", A: 0, B: 5, Tolerance: 1e-5,
	},
	"sine": {
		Description: "sin(x) around its minimum at 3*pi/2",
		Function:    "sin(x)", A: 0, B: 2 * 3.141592653589793, Tolerance: 1e-6,
	},
	"log": {
		Description: "undefined left of zero; the search fails fast",
		Function:    "log(x)", A: -2, B: 5, Tolerance: 1e-5,
	},
	"exp_linear": {
		Description: "exp(x) - 2x with its minimum at ln 2",
		Function:    "exp(x) - 2*x", A: -1, B: 2, Tolerance: 1e-6,
	},
	"abs_shift": {
		Description: "non-smooth V with its corner at x=1.5",
		Function:    "abs(x - 1.5)", A: -3, B: 4, Tolerance: 1e-4,
	},
	"cosine": {
		Description: "cos(x) on [0, 2pi] with its minimum at pi",
		Function:    "cos(x)", A: 0, B: 2 * 3.141592653589793, Tolerance: 1e-6,
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's problem into c.
func (p *Preset) Apply(c *Config) {
	c.Function = p.Function
	c.A = p.A
	c.B = p.B
	c.Tolerance = p.Tolerance
}
