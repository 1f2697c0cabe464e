package ope

import (
	"fmt"
	"math"
)

// Timestep is one logged decision: a discretized state, the discrete action
// taken there, and the return of the trajectory the row belongs to. Every row
// of the same trajectory must carry the identical Return value; the return is
// a property of the whole trajectory, repeated per row for convenience.
type Timestep struct {
	TrajectoryID string
	State        int
	Action       int
	Return       float64
}

// Dataset is an ordered collection of timestep rows, typically many rows per
// trajectory. Row order within a trajectory is preserved by the loaders, but
// the importance-weight aggregation is a product and therefore order-independent.
type Dataset []Timestep

// Validate checks the dataset integrity invariants: at least one row,
// nonnegative state/action indices, finite returns, and a constant return per
// trajectory id. Estimators do not call this; it is offered to ingestion code.
func (d Dataset) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("dataset has no rows")
	}
	returns := make(map[string]float64, 16)
	for i, ts := range d {
		if ts.TrajectoryID == "" {
			return fmt.Errorf("row %d: empty trajectory id", i)
		}
		if ts.State < 0 || ts.Action < 0 {
			return fmt.Errorf("row %d: negative state/action index (%d, %d)", i, ts.State, ts.Action)
		}
		if math.IsNaN(ts.Return) || math.IsInf(ts.Return, 0) {
			return fmt.Errorf("row %d: non-finite return %v", i, ts.Return)
		}
		if r, seen := returns[ts.TrajectoryID]; seen {
			if r != ts.Return {
				return fmt.Errorf("trajectory %q: inconsistent returns %v and %v", ts.TrajectoryID, r, ts.Return)
			}
		} else {
			returns[ts.TrajectoryID] = ts.Return
		}
	}
	return nil
}

// NumTrajectories counts distinct trajectory ids.
func (d Dataset) NumTrajectories() int {
	seen := make(map[string]struct{}, 16)
	for _, ts := range d {
		seen[ts.TrajectoryID] = struct{}{}
	}
	return len(seen)
}

// ReturnRange reports the min and max of the per-trajectory returns. It is the
// affine anchor used when bounds are mapped back to original units.
func (d Dataset) ReturnRange() (Range, error) {
	if len(d) == 0 {
		return Range{}, fmt.Errorf("dataset has no rows")
	}
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, ts := range d {
		r.Min = math.Min(r.Min, ts.Return)
		r.Max = math.Max(r.Max, ts.Return)
	}
	return r, nil
}

// Trajectory is the per-trajectory aggregate the estimators operate on: the
// importance weight (product of the trajectory's step ratios) and the observed
// return. Derived, never persisted.
type Trajectory struct {
	ID     string
	Weight float64
	Return float64
}

// Value is the importance-weighted return of the trajectory.
func (t Trajectory) Value() float64 {
	return t.Weight * t.Return
}
