package ope

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnderson_TwoTrajectoryHandComputation(t *testing.T) {
	// Identity policies, returns [0, 10]: normalized values are [0, 1], so
	// bound = 1 - (1-0) * min(1, 0/2 + sqrt(ln(2/delta)/(2*2))).
	p := uniformPolicy(1, 1.0)
	ds := Dataset{
		{TrajectoryID: "a", State: 0, Action: 0, Return: 0},
		{TrajectoryID: "b", State: 0, Action: 0, Return: 10},
	}
	delta := 0.1
	want := 1 - math.Min(1, math.Sqrt(math.Log(2/delta)/4))

	raw, err := Anderson(ds, p, p, delta, false)
	require.NoError(t, err)
	assert.InDelta(t, want, raw, 1e-12)

	unscaled, err := Anderson(ds, p, p, delta, true)
	require.NoError(t, err)
	assert.InDelta(t, want*10, unscaled, 1e-12)
}

func TestAnderson_BoundAtMostMaxValue(t *testing.T) {
	ds, eval, behavior := boundFixture(30)
	for _, delta := range []float64{0.01, 0.1, 0.5} {
		bound, err := Anderson(ds, eval, behavior, delta, true)
		require.NoError(t, err)

		rng, err := ds.ReturnRange()
		require.NoError(t, err)
		trajs, err := TrajectoryWeights(ds, eval, behavior)
		require.NoError(t, err)
		maxValue := math.Inf(-1)
		for _, tr := range trajs {
			maxValue = math.Max(maxValue, rng.Unscale(tr.Weight*rng.Scale(tr.Return)))
		}
		assert.LessOrEqual(t, bound, maxValue, "delta=%v", delta)
	}
}

func TestAnderson_BoundNonDecreasingInDelta(t *testing.T) {
	ds, eval, behavior := boundFixture(20)
	prev := math.Inf(-1)
	for _, delta := range []float64{0.001, 0.01, 0.1, 0.5, 0.9} {
		bound, err := Anderson(ds, eval, behavior, delta, false)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bound, prev, "delta=%v", delta)
		prev = bound
	}
}

func TestAnderson_SingleTrajectory(t *testing.T) {
	// One trajectory means one return value, so the normalization range has
	// zero width and the bound is undefined.
	p := uniformPolicy(1, 1.0)
	ds := Dataset{{TrajectoryID: "a", State: 0, Action: 0, Return: 3}}
	_, err := Anderson(ds, p, p, 0.1, false)
	var numErr *NumericalError
	require.True(t, errors.As(err, &numErr), "got %v", err)
}

func TestAnderson_ParameterErrors(t *testing.T) {
	ds, eval, behavior := boundFixture(5)
	for _, delta := range []float64{0, 1, -0.5, 2} {
		_, err := Anderson(ds, eval, behavior, delta, false)
		var paramErr *ParameterError
		require.True(t, errors.As(err, &paramErr), "delta=%v got %v", delta, err)
	}
}

func TestAnderson_IdenticalReturnsDegenerateRange(t *testing.T) {
	p := uniformPolicy(1, 1.0)
	ds := Dataset{
		{TrajectoryID: "a", State: 0, Action: 0, Return: 4},
		{TrajectoryID: "b", State: 0, Action: 0, Return: 4},
	}
	_, err := Anderson(ds, p, p, 0.1, false)
	var numErr *NumericalError
	assert.True(t, errors.As(err, &numErr))
}
