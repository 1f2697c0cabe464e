// Package ope implements offline off-policy evaluation (OPE) for logged
// datasets of discretized sequential decisions.
//
// # Reading Guide
//
// Start with these three files to understand the estimator pipeline:
//   - dataset.go: Timestep rows, trajectory grouping, and the integrity invariant
//   - weights.go: per-step importance ratios and per-trajectory weights
//   - ois.go / wis.go: the ordinary and self-normalized estimators built on them
//
// The high-confidence lower bounds live in hcope.go (concentration inequality,
// Thomas et al. 2015) and anderson.go (distribution-free order-statistic bound).
// scale.go holds the affine range scaler used to report bounds in the dataset's
// original return units.
//
// # Model
//
// Every estimator is a pure function of a caller-owned Dataset and two dense
// PolicyTable values (evaluation and behavior). Derived quantities — step
// ratios, trajectory weights, trajectory values — are recomputed per call and
// never persisted. Nothing in this package mutates its inputs, so concurrent
// calls over shared tables are safe.
//
// Downstream consumers such as the clinical safety layer (ope/safety) take
// policy tables produced elsewhere; the estimators never depend on them.
package ope
