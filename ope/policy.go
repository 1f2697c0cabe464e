package ope

import (
	"fmt"
	"math"
)

// PolicyTable is a dense action-selection probability table indexed by
// (state, action). Rows need not sum to 1 (repaired or clipped tables are
// accepted as-is); entries must be finite and nonnegative.
type PolicyTable [][]float64

// NumStates returns the number of state rows.
func (p PolicyTable) NumStates() int {
	return len(p)
}

// NumActions returns the number of action columns, 0 for an empty table.
func (p PolicyTable) NumActions() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// Prob returns the table entry for (state, action). Callers bounds-check with
// Contains first; out-of-range indices panic with ordinary slice semantics.
func (p PolicyTable) Prob(state, action int) float64 {
	return p[state][action]
}

// Contains reports whether (state, action) indexes into the table.
func (p PolicyTable) Contains(state, action int) bool {
	return state >= 0 && state < len(p) && action >= 0 && action < len(p[state])
}

// Validate checks that the table is non-empty, rectangular, and that every
// entry is a finite nonnegative probability score.
func (p PolicyTable) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("policy table has no states")
	}
	width := len(p[0])
	if width == 0 {
		return fmt.Errorf("policy table has no actions")
	}
	for s, row := range p {
		if len(row) != width {
			return fmt.Errorf("policy table is ragged: state %d has %d actions, expected %d", s, len(row), width)
		}
		for a, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("policy table entry (%d, %d) is non-finite: %v", s, a, v)
			}
			if v < 0 {
				return fmt.Errorf("policy table entry (%d, %d) is negative: %v", s, a, v)
			}
		}
	}
	return nil
}

// Clone returns a deep copy, for callers that want to mutate scores (e.g. the
// safety layer) without touching the original.
func (p PolicyTable) Clone() PolicyTable {
	out := make(PolicyTable, len(p))
	for s, row := range p {
		out[s] = append([]float64(nil), row...)
	}
	return out
}
