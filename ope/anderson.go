package ope

import (
	"math"
	"sort"
)

// Anderson computes a distribution-free (n, δ)-confidence lower bound on the
// evaluation policy's expected return from order statistics of the empirical
// distribution of importance-weighted trajectory values (Anderson inequality,
// as applied in Thomas, Theocharous & Ghavamzadeh 2015).
//
// Observed returns are normalized to [0,1] with their min/max before the
// importance weighting is applied; this ordering is the opposite of the HCOPE
// path, which clips raw values. With unscale, the bound maps back to the
// original return units through the same range.
//
// Fails with a *ParameterError when δ ∉ (0,1) and with a *NumericalError when
// the dataset is empty or all returns are identical (the normalization range
// has zero width).
func Anderson(ds Dataset, eval, behavior PolicyTable, delta float64, unscale bool) (float64, error) {
	if !(delta > 0 && delta < 1) {
		return 0, &ParameterError{Name: "delta", Value: delta, Reason: "confidence parameter must be in (0,1)"}
	}
	trajs, err := TrajectoryWeights(ds, eval, behavior)
	if err != nil {
		return 0, err
	}
	if len(trajs) == 0 {
		return 0, &NumericalError{Op: "anderson", Reason: "dataset has no trajectories"}
	}
	rng, err := ds.ReturnRange()
	if err != nil {
		return 0, err
	}
	if !rng.Valid() {
		return 0, &NumericalError{Op: "anderson", Reason: "degenerate return range, all returns identical"}
	}
	n := len(trajs)
	zs := make([]float64, n)
	for i, t := range trajs {
		zs[i] = t.Weight * rng.Scale(t.Return)
	}
	sort.Float64s(zs)
	slack := math.Sqrt(math.Log(2/delta) / (2 * float64(n)))
	var sum float64
	for i := 0; i < n-1; i++ {
		sum += (zs[i+1] - zs[i]) * math.Min(1, float64(i)/float64(n)+slack)
	}
	bound := zs[n-1] - sum
	if unscale {
		bound = rng.Unscale(bound)
	}
	return bound, nil
}
