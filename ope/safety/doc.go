// Package safety implements the clinical compliance layer for discretized
// ventilation policies: the 7×7×7 treatment action space, ARDSNet-derived
// action compliance rules, bedside state compliance rules, and utilities that
// demote or repair non-compliant entries of a policy table.
//
// The package is a downstream consumer of policy tables; the ope estimators
// never depend on it. The derived action-compliance table is built once from
// immutable configuration and shared read-only afterwards.
package safety
