package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vent-ope/vent-ope/ope"
)

func TestSafeScores_DemotesNonCompliantColumns(t *testing.T) {
	p := ope.PolicyTable{
		{0.5, 0.3, 0.2},
		{0.1, 0.1, 0.8},
	}
	compliant := []bool{true, false, true}

	out, err := SafeScores(p, compliant)
	require.NoError(t, err)
	// Table minimum is 0.1; only the non-compliant column changes.
	assert.Equal(t, ope.PolicyTable{
		{0.5, 0.1, 0.2},
		{0.1, 0.1, 0.8},
	}, out)
	// Input untouched.
	assert.Equal(t, 0.3, p.Prob(0, 1))
}

func TestSafeScoresWithFloor(t *testing.T) {
	p := ope.PolicyTable{{0.5, 0.5}}
	out, err := SafeScoresWithFloor(p, []bool{false, true}, 0)
	require.NoError(t, err)
	assert.Equal(t, ope.PolicyTable{{0, 0.5}}, out)

	t.Run("map size mismatch", func(t *testing.T) {
		_, err := SafeScoresWithFloor(p, []bool{true}, 0)
		assert.Error(t, err)
	})
}

func TestRepair_ReplacesDegenerateRows(t *testing.T) {
	p := ope.PolicyTable{
		{0, 0},
		{0.2, 0.8},
	}
	def := ope.PolicyTable{
		{0.6, 0.4},
		{0.5, 0.5},
	}

	out, err := Repair(p, def)
	require.NoError(t, err)
	assert.Equal(t, ope.PolicyTable{
		{0.6, 0.4},
		{0.2, 0.8},
	}, out)
}

func TestRepairGreedy_PutsMassOnDefaultArgmax(t *testing.T) {
	p := ope.PolicyTable{{0, 0, 0}}
	def := ope.PolicyTable{{0.2, 0.5, 0.3}}

	out, err := RepairGreedy(p, def)
	require.NoError(t, err)
	assert.Equal(t, ope.PolicyTable{{0, 1, 0}}, out)
}

func TestRepair_ShapeMismatch(t *testing.T) {
	p := ope.PolicyTable{{0.5, 0.5}}
	def := ope.PolicyTable{{0.5, 0.3, 0.2}}
	_, err := Repair(p, def)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	p := ope.PolicyTable{
		{2, 2},
		{1, 3},
	}
	out, err := Normalize(p)
	require.NoError(t, err)
	assert.Equal(t, ope.PolicyTable{
		{0.5, 0.5},
		{0.25, 0.75},
	}, out)

	t.Run("zero row rejected", func(t *testing.T) {
		_, err := Normalize(ope.PolicyTable{{0, 0}})
		assert.Error(t, err)
	})
}

func TestRepairedSafe_EndToEnd(t *testing.T) {
	// Action 1 is non-compliant. State 0 keeps mass on compliant actions and
	// renormalizes; state 1 had all its mass on the unsafe action and is
	// repaired from the default policy.
	p := ope.PolicyTable{
		{0.5, 0.25, 0.25},
		{0, 1, 0},
	}
	def := ope.PolicyTable{
		{0.4, 0.2, 0.4},
		{0.4, 0.2, 0.4},
	}
	compliant := []bool{true, false, true}

	out, err := RepairedSafe(p, def, compliant, false)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 2.0/3.0, out[0][0], 1e-12)
	assert.InDelta(t, 0.0, out[0][1], 1e-12)
	assert.InDelta(t, 1.0/3.0, out[0][2], 1e-12)
	assert.Equal(t, []float64{0.4, 0.2, 0.4}, out[1])

	// The repaired table is a valid input for the estimators.
	require.NoError(t, out.Validate())
	for _, row := range out {
		var sum float64
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-12)
	}
}

func TestRepairedSafe_Greedy(t *testing.T) {
	p := ope.PolicyTable{{0, 1}}
	def := ope.PolicyTable{{0.3, 0.7}}
	compliant := []bool{true, false}

	out, err := RepairedSafe(p, def, compliant, true)
	require.NoError(t, err)
	assert.Equal(t, ope.PolicyTable{{0, 1}}, out)
}
