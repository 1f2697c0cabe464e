package ope

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// HCOPEOptions selects the HCOPE algorithm variant and the output scale.
type HCOPEOptions struct {
	// TwoPass selects the O(n²) double-loop form of Thm. 1 in Thomas,
	// Theocharous & Ghavamzadeh (2015). The default single-pass form
	// (Remark 3) is algebraically identical and O(n); the two are kept as a
	// cross-check pair and must agree within floating tolerance.
	TwoPass bool
	// Unscale maps the bound back to the dataset's original return units
	// using the observed return min/max as the affine anchor.
	Unscale bool
}

// HCOPE computes a 1−δ high-confidence lower bound on the evaluation policy's
// expected return from importance-weighted, clipped trajectory values.
//
// Clipping applies directly to the raw importance-weighted values
// Y_i = min(weight_i × return_i, c); returns are not normalized to [0,1]
// beforehand. Anderson takes the opposite order and normalizes first.
//
// Fails with a *ParameterError when c ≤ 0 or δ ∉ (0,1), and with a
// *NumericalError when fewer than two distinct trajectories are available
// (the bound divides by n−1).
func HCOPE(ds Dataset, eval, behavior PolicyTable, c, delta float64, opts HCOPEOptions) (float64, error) {
	if err := checkHCOPEParams(c, delta); err != nil {
		return 0, err
	}
	trajs, err := TrajectoryWeights(ds, eval, behavior)
	if err != nil {
		return 0, err
	}
	if len(trajs) < 2 {
		return 0, &NumericalError{Op: "hcope", Reason: "need at least 2 trajectories"}
	}
	y := clippedValues(trajs, c)
	var bound float64
	if opts.TwoPass {
		bound = hcopeTwoPass(y, c, delta)
	} else {
		bound = hcopeSinglePass(y, c, delta)
	}
	if opts.Unscale {
		rng, err := ds.ReturnRange()
		if err != nil {
			return 0, err
		}
		bound = rng.Unscale(bound)
	}
	return bound, nil
}

// HCOPEPrediction estimates, from the nPre trajectories present in the
// dataset, the lower bound a future sample of nPost trajectories is expected
// to achieve: the empirical and dispersion terms come from the observed
// sample while nPost replaces the sample size inside the confidence penalties.
func HCOPEPrediction(ds Dataset, eval, behavior PolicyTable, nPost int, c, delta float64, unscale bool) (float64, error) {
	if err := checkHCOPEParams(c, delta); err != nil {
		return 0, err
	}
	if nPost < 2 {
		return 0, &ParameterError{Name: "nPost", Value: float64(nPost), Reason: "future sample size must be at least 2"}
	}
	trajs, err := TrajectoryWeights(ds, eval, behavior)
	if err != nil {
		return 0, err
	}
	nPre := len(trajs)
	if nPre < 2 {
		return 0, &NumericalError{Op: "hcope prediction", Reason: "need at least 2 trajectories"}
	}
	y := clippedValues(trajs, c)
	sum := floats.Sum(y)
	var sumSq float64
	for _, v := range y {
		sumSq += v * v
	}
	ln := math.Log(2 / delta)
	penalty := (7 * c * ln) / (3 * (float64(nPost) - 1))
	dispersion := float64(nPre)*sumSq - sum*sum
	spread := math.Sqrt((ln / float64(nPost)) * (2 / (float64(nPre) * (float64(nPre) - 1))) * dispersion)
	bound := sum - penalty - spread
	if unscale {
		rng, err := ds.ReturnRange()
		if err != nil {
			return 0, err
		}
		bound = rng.Unscale(bound)
	}
	return bound, nil
}

func checkHCOPEParams(c, delta float64) error {
	if !(c > 0) {
		return &ParameterError{Name: "c", Value: c, Reason: "clipping threshold must be > 0"}
	}
	if !(delta > 0 && delta < 1) {
		return &ParameterError{Name: "delta", Value: delta, Reason: "confidence parameter must be in (0,1)"}
	}
	return nil
}

func clippedValues(trajs []Trajectory, c float64) []float64 {
	y := make([]float64, len(trajs))
	for i, t := range trajs {
		y[i] = math.Min(t.Value(), c)
	}
	return y
}

// hcopeTwoPass is the literal Thm. 1 form with the O(n²) pairwise sum.
func hcopeTwoPass(y []float64, c, delta float64) float64 {
	n := float64(len(y))
	ln := math.Log(2 / delta)
	mean := floats.Sum(y) / n
	penalty := (c / n) * (7 * n * ln) / (3 * (n - 1))
	var pairSum float64
	for _, yi := range y {
		for _, yj := range y {
			d := yi/c - yj/c
			pairSum += d * d
		}
	}
	spread := (c / n) * math.Sqrt((ln/(n-1))*pairSum)
	return mean - penalty - spread
}

// hcopeSinglePass is the Remark 3 form: the pairwise sum collapses through
// Σ_i Σ_j (a_i−a_j)² = 2n Σ a_i² − 2 (Σ a_i)², one pass over the data.
func hcopeSinglePass(y []float64, c, delta float64) float64 {
	n := float64(len(y))
	ln := math.Log(2 / delta)
	var sum, sumSq float64
	for _, v := range y {
		a := v / c
		sum += a
		sumSq += a * a
	}
	inner := n*sumSq - sum*sum
	if inner < 0 {
		inner = 0 // guard against catastrophic cancellation on constant inputs
	}
	spread := math.Sqrt(((2 * ln) / (n - 1)) * inner)
	return (c / n) * (sum - (7*n*ln)/(3*(n-1)) - spread)
}
