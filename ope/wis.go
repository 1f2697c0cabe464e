package ope

// WIS is the weighted (self-normalized) trajectory-based importance sampling
// estimator (Sutton & Barto 2nd ed., p. 104-105): the sum of trajectory values
// divided by the sum of trajectory weights. When the total weight is 0 — no
// evaluation-supported trajectory carries mass — the estimate is defined as 0
// per S&B p. 105; this is a documented convention, not an error.
//
// The variance follows the self-normalized importance sampling bound of
// Aslett, Coolen & De Bock (p. 30): with normalized weights w̄_i = w_i / Σw,
// variance = Σ w̄_i² (return_i − estimate)², a single scalar with no further
// averaging. It is likewise 0 when the total weight is 0.
func WIS(ds Dataset, eval, behavior PolicyTable) (Estimate, error) {
	trajs, err := TrajectoryWeights(ds, eval, behavior)
	if err != nil {
		return Estimate{}, err
	}
	if len(trajs) == 0 {
		return Estimate{}, &NumericalError{Op: "wis", Reason: "dataset has no trajectories"}
	}
	var sumW, sumV float64
	for _, t := range trajs {
		sumW += t.Weight
		sumV += t.Value()
	}
	if sumW == 0 {
		return Estimate{}, nil
	}
	est := sumV / sumW
	var variance float64
	for _, t := range trajs {
		wn := t.Weight / sumW
		diff := t.Return - est
		variance += wn * wn * diff * diff
	}
	return Estimate{Value: est, Variance: variance}, nil
}
