package safety

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Bin is a half-open value interval [Lo, Hi). The last bin of each treatment
// variable is unbounded above (Hi = +Inf, spelled ".inf" in YAML).
type Bin struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// Contains reports whether v falls inside the bin.
func (b Bin) Contains(v float64) bool {
	return v >= b.Lo && v < b.Hi
}

// ActionSpace describes the discretized treatment action space: tidal volume
// (ml/kg ideal body weight), FiO2 (%) and PEEP (cmH2O), each split into bins.
// A composite action id enumerates the cartesian product in row-major order:
// id = (tvIdx × len(FiO2) + fio2Idx) × len(PEEP) + peepIdx.
type ActionSpace struct {
	TidalVolume []Bin `yaml:"tidal_volume"`
	FiO2        []Bin `yaml:"fio2"`
	PEEP        []Bin `yaml:"peep"`
}

// DefaultActionSpace returns the built-in 7-bin-per-variable action space
// (343 composite actions) used by the ventilation dataset.
func DefaultActionSpace() ActionSpace {
	inf := math.Inf(1)
	return ActionSpace{
		TidalVolume: []Bin{
			{0, 2.5}, {2.5, 5}, {5, 7.5}, {7.5, 10}, {10, 12.5}, {12.5, 15}, {15, inf},
		},
		FiO2: []Bin{
			{20, 30}, {30, 35}, {35, 40}, {40, 45}, {45, 50}, {50, 55}, {55, inf},
		},
		PEEP: []Bin{
			{0, 5}, {5, 7}, {7, 9}, {9, 11}, {11, 13}, {13, 15}, {15, inf},
		},
	}
}

// LoadActionSpace reads an action space definition from a YAML file.
func LoadActionSpace(path string) (ActionSpace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ActionSpace{}, fmt.Errorf("reading action space config: %w", err)
	}
	var space ActionSpace
	if err := yaml.Unmarshal(data, &space); err != nil {
		return ActionSpace{}, fmt.Errorf("parsing action space config: %w", err)
	}
	if err := space.Validate(); err != nil {
		return ActionSpace{}, err
	}
	return space, nil
}

// NumActions is the size of the composite action space.
func (s ActionSpace) NumActions() int {
	return len(s.TidalVolume) * len(s.FiO2) * len(s.PEEP)
}

// Decode splits a composite action id into its per-variable bins.
func (s ActionSpace) Decode(id int) (tv, fio2, peep Bin, err error) {
	if id < 0 || id >= s.NumActions() {
		return Bin{}, Bin{}, Bin{}, fmt.Errorf("action id %d out of range [0, %d)", id, s.NumActions())
	}
	nPEEP := len(s.PEEP)
	nFiO2 := len(s.FiO2)
	peep = s.PEEP[id%nPEEP]
	id /= nPEEP
	fio2 = s.FiO2[id%nFiO2]
	tv = s.TidalVolume[id/nFiO2]
	return tv, fio2, peep, nil
}

// Validate checks that each variable has at least one bin and that bins are
// ordered, contiguous and non-empty.
func (s ActionSpace) Validate() error {
	for name, bins := range map[string][]Bin{
		"tidal_volume": s.TidalVolume,
		"fio2":         s.FiO2,
		"peep":         s.PEEP,
	} {
		if len(bins) == 0 {
			return fmt.Errorf("action space variable %s has no bins", name)
		}
		for i, b := range bins {
			if !(b.Hi > b.Lo) {
				return fmt.Errorf("action space variable %s bin %d is empty: [%v, %v)", name, i, b.Lo, b.Hi)
			}
			if i > 0 && bins[i-1].Hi != b.Lo {
				return fmt.Errorf("action space variable %s bins %d and %d are not contiguous", name, i-1, i)
			}
		}
	}
	return nil
}
