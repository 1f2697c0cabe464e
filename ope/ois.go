package ope

import (
	"gonum.org/v1/gonum/stat"
)

// Estimate is a point estimate of the evaluation policy's expected return
// together with a variance estimate for it.
type Estimate struct {
	Value    float64
	Variance float64
}

// OIS is the ordinary trajectory-based importance sampling estimator
// (Sutton & Barto 2nd ed., eq. 5.4): the arithmetic mean over distinct
// trajectories of weight × return, with the sample variance of those values
// divided by the trajectory count as the variance estimate.
//
// Fails with a *NumericalError when the dataset holds fewer than two distinct
// trajectories, since the sample variance is undefined there.
func OIS(ds Dataset, eval, behavior PolicyTable) (Estimate, error) {
	trajs, err := TrajectoryWeights(ds, eval, behavior)
	if err != nil {
		return Estimate{}, err
	}
	n := len(trajs)
	if n < 2 {
		return Estimate{}, &NumericalError{Op: "ois", Reason: "need at least 2 trajectories for a variance estimate"}
	}
	values := make([]float64, n)
	for i, t := range trajs {
		values[i] = t.Value()
	}
	return Estimate{
		Value:    stat.Mean(values, nil),
		Variance: stat.Variance(values, nil) / float64(n),
	}, nil
}
