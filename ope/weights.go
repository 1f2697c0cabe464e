package ope

import "fmt"

// StepRatios computes the per-row importance ratio
// evaluation(state, action) / behavior(state, action), aligned with the rows
// of the dataset. It fails with a *SupportError if any observed pair violates
// absolute continuity (behavior 0, evaluation > 0); the check runs over the
// whole dataset before any ratio is returned, so callers never see a partial
// result.
func StepRatios(ds Dataset, eval, behavior PolicyTable) ([]float64, error) {
	for _, ts := range ds {
		if !behavior.Contains(ts.State, ts.Action) {
			return nil, fmt.Errorf("behavior policy has no entry for state %d action %d", ts.State, ts.Action)
		}
		if !eval.Contains(ts.State, ts.Action) {
			return nil, fmt.Errorf("evaluation policy has no entry for state %d action %d", ts.State, ts.Action)
		}
		if behavior.Prob(ts.State, ts.Action) == 0 && eval.Prob(ts.State, ts.Action) > 0 {
			return nil, &SupportError{TrajectoryID: ts.TrajectoryID, State: ts.State, Action: ts.Action}
		}
	}
	ratios := make([]float64, len(ds))
	for i, ts := range ds {
		b := behavior.Prob(ts.State, ts.Action)
		if b == 0 {
			// Support check passed, so evaluation is 0 here too: the
			// evaluation policy never takes this action and the
			// trajectory contributes weight 0.
			ratios[i] = 0
			continue
		}
		ratios[i] = eval.Prob(ts.State, ts.Action) / b
	}
	return ratios, nil
}

// TrajectoryWeights folds the step ratios into one weight per distinct
// trajectory id, the product of the ratios of all rows sharing that id.
// Trajectories come back in order of first appearance in the dataset, each
// carrying its observed return.
func TrajectoryWeights(ds Dataset, eval, behavior PolicyTable) ([]Trajectory, error) {
	ratios, err := StepRatios(ds, eval, behavior)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, 16)
	trajs := make([]Trajectory, 0, 16)
	for i, ts := range ds {
		j, seen := index[ts.TrajectoryID]
		if !seen {
			j = len(trajs)
			index[ts.TrajectoryID] = j
			trajs = append(trajs, Trajectory{ID: ts.TrajectoryID, Weight: 1, Return: ts.Return})
		}
		trajs[j].Weight *= ratios[i]
	}
	return trajs, nil
}
