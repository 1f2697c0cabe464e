package safety

import (
	"math"
	"sync"
)

// FiO2 operating range for the paired FiO2/PEEP rule, in percent.
const (
	FiO2Min = 30.0
	FiO2Max = 100.0
)

// fio2PEEPTable is the ARDSNet table of paired FiO2 (%) and PEEP (cmH2O)
// settings (lower-PEEP/higher-FiO2 arm), see
// https://litfl.com/ardsnet-ventilation-strategy/.
var fio2PEEPTable = [][2]float64{
	{30, 5},
	{40, 5}, {40, 8},
	{50, 8}, {50, 10},
	{60, 10},
	{70, 10}, {70, 12}, {70, 14},
	{80, 14},
	{90, 14}, {90, 16}, {90, 18},
	{100, 18}, {100, 20}, {100, 22}, {100, 24},
}

// fio2PEEPBounds holds, per known FiO2 level, the min and max PEEP the paired
// table allows. Derived once from fio2PEEPTable at package init; read-only.
var fio2PEEPBounds = func() map[float64][2]float64 {
	bounds := make(map[float64][2]float64, len(fio2PEEPTable))
	for _, pair := range fio2PEEPTable {
		fio2, peep := pair[0], pair[1]
		if b, ok := bounds[fio2]; ok {
			bounds[fio2] = [2]float64{math.Min(b[0], peep), math.Max(b[1], peep)}
		} else {
			bounds[fio2] = [2]float64{peep, peep}
		}
	}
	return bounds
}()

// toKnownFiO2 snaps an arbitrary FiO2 value to the nearest level present in
// the paired table, preferring the lower level on ties.
func toKnownFiO2(fio2 float64) float64 {
	best := math.NaN()
	bestDist := math.Inf(1)
	for known := range fio2PEEPBounds {
		dist := math.Abs(known - fio2)
		if dist < bestDist || (dist == bestDist && known < best) {
			best = known
			bestDist = dist
		}
	}
	return best
}

// fio2Compliant is the FiO2 operating-range rule.
func fio2Compliant(fio2 float64) bool {
	return fio2 >= FiO2Min && fio2 <= FiO2Max
}

// peepCompliant checks the PEEP setting against the paired-table bounds for
// the nearest known FiO2 level.
func peepCompliant(fio2, peep float64) bool {
	b := fio2PEEPBounds[toKnownFiO2(fio2)]
	return peep >= b[0] && peep <= b[1]
}

// settingCompliant checks one concrete (FiO2, PEEP) setting against both
// action rules. Tidal volume has no action-level rule; it is covered by the
// bedside state rules.
func settingCompliant(fio2, peep float64) bool {
	return fio2Compliant(fio2) && peepCompliant(fio2, peep)
}

// actionCompliant reports whether any corner of the action's (FiO2, PEEP) bin
// rectangle satisfies the clinical rules. Unbounded bin edges are skipped, so
// the top bins are judged by their lower edge only.
func actionCompliant(fio2, peep Bin) bool {
	for _, f := range binEdges(fio2) {
		for _, p := range binEdges(peep) {
			if settingCompliant(f, p) {
				return true
			}
		}
	}
	return false
}

func binEdges(b Bin) []float64 {
	if math.IsInf(b.Hi, 1) {
		return []float64{b.Lo}
	}
	return []float64{b.Lo, b.Hi}
}

// BuildComplianceMap computes the action id → compliant table for an action
// space. Pure; callers wanting the shared default-space table should use
// DefaultComplianceMap instead.
func BuildComplianceMap(space ActionSpace) ([]bool, error) {
	compliant := make([]bool, space.NumActions())
	for id := range compliant {
		_, fio2, peep, err := space.Decode(id)
		if err != nil {
			return nil, err
		}
		compliant[id] = actionCompliant(fio2, peep)
	}
	return compliant, nil
}

var (
	defaultMapOnce sync.Once
	defaultMap     []bool
)

// DefaultComplianceMap returns the compliance table for the default 343-action
// space. It is built on first use and shared read-only afterwards; callers
// must not modify the returned slice.
func DefaultComplianceMap() []bool {
	defaultMapOnce.Do(func() {
		// Decode cannot fail for ids produced by range over the default space.
		defaultMap, _ = BuildComplianceMap(DefaultActionSpace())
	})
	return defaultMap
}
