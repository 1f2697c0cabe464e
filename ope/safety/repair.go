package safety

import (
	"fmt"
	"math"

	"github.com/vent-ope/vent-ope/ope"
)

// SafeScores returns a copy of the policy where every non-compliant action
// column is demoted to the table's minimum score. The result is unnormalized;
// pass it through Repair and Normalize before handing it to an estimator.
func SafeScores(p ope.PolicyTable, compliant []bool) (ope.PolicyTable, error) {
	floor := math.Inf(1)
	for _, row := range p {
		for _, v := range row {
			floor = math.Min(floor, v)
		}
	}
	return SafeScoresWithFloor(p, compliant, floor)
}

// SafeScoresWithFloor is SafeScores with an explicit demotion score.
func SafeScoresWithFloor(p ope.PolicyTable, compliant []bool, floor float64) (ope.PolicyTable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.NumActions() != len(compliant) {
		return nil, fmt.Errorf("compliance map covers %d actions, policy has %d", len(compliant), p.NumActions())
	}
	out := p.Clone()
	for _, row := range out {
		for a := range row {
			if !compliant[a] {
				row[a] = floor
			}
		}
	}
	return out, nil
}

// Repair replaces degenerate state rows — rows whose scores sum to zero, so
// no action can be drawn there — with the corresponding row of a default
// policy. Non-degenerate rows pass through untouched.
func Repair(p, def ope.PolicyTable) (ope.PolicyTable, error) {
	return repair(p, def, false)
}

// RepairGreedy repairs degenerate rows by putting all mass on the default
// policy's highest-scoring action for that state instead of copying the row.
func RepairGreedy(p, def ope.PolicyTable) (ope.PolicyTable, error) {
	return repair(p, def, true)
}

func repair(p, def ope.PolicyTable, greedy bool) (ope.PolicyTable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("default policy: %w", err)
	}
	if p.NumStates() != def.NumStates() || p.NumActions() != def.NumActions() {
		return nil, fmt.Errorf("policy is %dx%d, default policy is %dx%d",
			p.NumStates(), p.NumActions(), def.NumStates(), def.NumActions())
	}
	out := p.Clone()
	for s, row := range out {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum != 0 {
			continue
		}
		if greedy {
			best := 0
			for a, v := range def[s] {
				if v > def[s][best] {
					best = a
				}
			}
			for a := range row {
				row[a] = 0
			}
			row[best] = 1
			continue
		}
		copy(row, def[s])
	}
	return out, nil
}

// Normalize rescales every state row to sum to 1, producing a proper
// probability table. Fails if any row still sums to zero; run Repair first.
func Normalize(p ope.PolicyTable) (ope.PolicyTable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := p.Clone()
	for s, row := range out {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			return nil, fmt.Errorf("state %d: all action scores are zero, cannot normalize", s)
		}
		for a := range row {
			row[a] /= sum
		}
	}
	return out, nil
}

// RepairedSafe composes the safety pipeline: demote non-compliant actions,
// repair degenerate rows from the default policy, and normalize.
func RepairedSafe(p, def ope.PolicyTable, compliant []bool, greedy bool) (ope.PolicyTable, error) {
	scored, err := SafeScoresWithFloor(p, compliant, 0)
	if err != nil {
		return nil, err
	}
	repaired, err := repair(scored, def, greedy)
	if err != nil {
		return nil, err
	}
	return Normalize(repaired)
}
