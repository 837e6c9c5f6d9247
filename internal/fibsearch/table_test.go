package fibsearch

import (
	"errors"
	"math"
	"testing"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		ratio float64
		wantN int
	}{
		{0.1, 2},
		{1, 2},
		{1.5, 2},
		{2, 3},
		{7.9, 5},
		{8, 6},
		{5e5, 28},
	}

	for _, tt := range tests {
		table, err := NewTable(tt.ratio, DefaultMaxIterations)
		if err != nil {
			t.Fatalf("ratio %g: %v", tt.ratio, err)
		}
		if table.N() != tt.wantN {
			t.Errorf("ratio %g: n = %d, want %d", tt.ratio, table.N(), tt.wantN)
		}
		if float64(table[table.N()]) <= tt.ratio {
			t.Errorf("ratio %g: last entry %d does not exceed ratio", tt.ratio, table[table.N()])
		}
		if table.N() > 2 && float64(table[table.N()-1]) > tt.ratio {
			t.Errorf("ratio %g: table longer than needed", tt.ratio)
		}
	}
}

func TestTableRecurrence(t *testing.T) {
	table, err := NewTable(1e18, MaxTableIndex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table[0] != 1 || table[1] != 1 {
		t.Fatalf("table starts %v", table[:2])
	}
	for i := 2; i < len(table); i++ {
		if table[i] != table[i-1]+table[i-2] {
			t.Fatalf("F%d = %d, want %d", i, table[i], table[i-1]+table[i-2])
		}
	}
}

func TestTableCeiling(t *testing.T) {
	_, err := NewTable(1e6, 10)
	var tts *ToleranceTooSmallError
	if !errors.As(err, &tts) {
		t.Fatalf("expected ToleranceTooSmallError, got %v", err)
	}
	if tts.Limit != 10 {
		t.Errorf("limit = %d, want 10", tts.Limit)
	}

	if _, err := NewTable(math.Inf(1), 1000); !errors.Is(err, ErrToleranceTooSmall) {
		t.Errorf("infinite ratio must hit the hard ceiling, got %v", err)
	}
}

func TestTableRatio(t *testing.T) {
	table, _ := NewTable(20, DefaultMaxIterations)
	n := table.N()
	if got := table.Ratio(n, n); got != 1 {
		t.Errorf("Ratio(n, n) = %g", got)
	}
	if got := table.Ratio(n-1, n); math.Abs(got-1/math.Phi) > 0.02 {
		t.Errorf("Ratio(n-1, n) = %g, want close to 1/phi", got)
	}
}
