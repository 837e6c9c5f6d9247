package fibsearch

const (
	// DefaultMaxIterations bounds n unless a Solver is configured otherwise.
	DefaultMaxIterations = 80

	// MaxTableIndex is the largest n accepted. F90 still fits in a uint64.
	MaxTableIndex = 90
)

// Table holds F0..Fn with F0 = F1 = 1. It is never modified after NewTable.
type Table []uint64

// NewTable extends [1, 1] until the last entry strictly exceeds ratio. At
// least three entries are always produced so every run has a reduction step.
// maxN is clamped to [2, MaxTableIndex].
func NewTable(ratio float64, maxN int) (Table, error) {
	if maxN > MaxTableIndex {
		maxN = MaxTableIndex
	}
	if maxN < 2 {
		maxN = 2
	}

	t := Table{1, 1}
	for len(t) < 3 || float64(t[len(t)-1]) <= ratio {
		if len(t)-1 >= maxN {
			return nil, &ToleranceTooSmallError{Ratio: ratio, Limit: maxN}
		}
		t = append(t, t[len(t)-1]+t[len(t)-2])
	}
	return t, nil
}

// N returns the index of the last entry.
func (t Table) N() int { return len(t) - 1 }

// Ratio returns F[i]/F[j].
func (t Table) Ratio(i, j int) float64 {
	return float64(t[i]) / float64(t[j])
}
