package ope

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformPolicy builds a states × actions table with identical rows.
func uniformPolicy(states int, row ...float64) PolicyTable {
	p := make(PolicyTable, states)
	for s := range p {
		p[s] = append([]float64(nil), row...)
	}
	return p
}

func TestStepRatios_IdenticalPoliciesAreOne(t *testing.T) {
	ds := Dataset{
		{TrajectoryID: "a", State: 0, Action: 0, Return: 1},
		{TrajectoryID: "a", State: 1, Action: 1, Return: 1},
		{TrajectoryID: "b", State: 2, Action: 0, Return: 2},
	}
	p := uniformPolicy(3, 0.3, 0.7)
	ratios, err := StepRatios(ds, p, p)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, ratios)
}

func TestStepRatios_SupportViolation(t *testing.T) {
	ds := Dataset{{TrajectoryID: "a", State: 0, Action: 1, Return: 1}}
	behavior := PolicyTable{{1.0, 0.0}}
	eval := PolicyTable{{0.5, 0.5}}

	_, err := StepRatios(ds, eval, behavior)
	require.Error(t, err)
	var supportErr *SupportError
	require.True(t, errors.As(err, &supportErr))
	assert.Equal(t, 0, supportErr.State)
	assert.Equal(t, 1, supportErr.Action)
	assert.Equal(t, "a", supportErr.TrajectoryID)
}

func TestStepRatios_BothZeroIsSupportedWithZeroRatio(t *testing.T) {
	// Behavior and evaluation both assign 0: absolutely continuous, and the
	// evaluation policy never takes the action, so the ratio is 0.
	ds := Dataset{{TrajectoryID: "a", State: 0, Action: 1, Return: 1}}
	behavior := PolicyTable{{1.0, 0.0}}
	eval := PolicyTable{{1.0, 0.0}}

	ratios, err := StepRatios(ds, eval, behavior)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, ratios)
}

func TestStepRatios_OutOfRangeIndex(t *testing.T) {
	ds := Dataset{{TrajectoryID: "a", State: 5, Action: 0, Return: 1}}
	p := uniformPolicy(2, 0.5, 0.5)
	_, err := StepRatios(ds, p, p)
	assert.Error(t, err)
}

func TestTrajectoryWeights_ProductPerTrajectory(t *testing.T) {
	// State 0: ratio 2.0; state 1: ratio 0.5.
	behavior := uniformPolicy(2, 0.4, 0.6)
	eval := PolicyTable{{0.8, 0.6}, {0.2, 0.6}}
	ds := Dataset{
		{TrajectoryID: "a", State: 0, Action: 0, Return: 3},
		{TrajectoryID: "a", State: 0, Action: 0, Return: 3},
		{TrajectoryID: "b", State: 1, Action: 0, Return: 7},
	}

	trajs, err := TrajectoryWeights(ds, eval, behavior)
	require.NoError(t, err)
	require.Len(t, trajs, 2)
	assert.Equal(t, "a", trajs[0].ID)
	assert.InDelta(t, 4.0, trajs[0].Weight, 1e-12) // 2.0 * 2.0
	assert.Equal(t, 3.0, trajs[0].Return)
	assert.Equal(t, "b", trajs[1].ID)
	assert.InDelta(t, 0.5, trajs[1].Weight, 1e-12)
	assert.Equal(t, 7.0, trajs[1].Return)
}

func TestTrajectoryWeights_RowOrderWithinTrajectoryIrrelevant(t *testing.T) {
	behavior := uniformPolicy(2, 0.4, 0.6)
	eval := PolicyTable{{0.8, 0.6}, {0.2, 0.6}}
	forward := Dataset{
		{TrajectoryID: "a", State: 0, Action: 0, Return: 1},
		{TrajectoryID: "a", State: 1, Action: 0, Return: 1},
	}
	backward := Dataset{
		{TrajectoryID: "a", State: 1, Action: 0, Return: 1},
		{TrajectoryID: "a", State: 0, Action: 0, Return: 1},
	}

	fw, err := TrajectoryWeights(forward, eval, behavior)
	require.NoError(t, err)
	bw, err := TrajectoryWeights(backward, eval, behavior)
	require.NoError(t, err)
	assert.InDelta(t, fw[0].Weight, bw[0].Weight, 1e-12)
}

func TestTrajectoryWeights_DoesNotMutateInputs(t *testing.T) {
	behavior := uniformPolicy(1, 0.4, 0.6)
	eval := uniformPolicy(1, 0.8, 0.2)
	ds := Dataset{{TrajectoryID: "a", State: 0, Action: 0, Return: 5}}

	_, err := TrajectoryWeights(ds, eval, behavior)
	require.NoError(t, err)
	assert.Equal(t, Dataset{{TrajectoryID: "a", State: 0, Action: 0, Return: 5}}, ds)
	assert.Equal(t, uniformPolicy(1, 0.4, 0.6), behavior)
	assert.Equal(t, uniformPolicy(1, 0.8, 0.2), eval)
}
