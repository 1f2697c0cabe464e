package ope

import "fmt"

// SupportError reports an absolute-continuity violation: some observed
// (state, action) pair has behavior probability 0 while the evaluation policy
// assigns it positive probability, leaving the importance ratio undefined.
// Always surfaced before any ratio is computed, never recovered silently.
type SupportError struct {
	TrajectoryID string
	State        int
	Action       int
}

func (e *SupportError) Error() string {
	return fmt.Sprintf("evaluation policy unsupported by behavior policy at state %d action %d (trajectory %q)",
		e.State, e.Action, e.TrajectoryID)
}

// ParameterError reports an estimator parameter outside its legal range, such
// as a confidence level outside (0,1) or a non-positive clipping threshold.
// Detected before any computation is performed.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("parameter %s = %v: %s", e.Name, e.Value, e.Reason)
}

// NumericalError reports a degenerate input that would make a formula divide
// by zero, most commonly a sample of fewer than two trajectories in a variance
// or confidence-bound term.
type NumericalError struct {
	Op     string
	Reason string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
