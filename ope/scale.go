package ope

import "math"

// Range is an affine anchor between an observed return interval and the
// normalized [0,1] working scale of the bound estimators.
type Range struct {
	Min float64
	Max float64
}

// Valid reports whether the range is finite with positive width, the
// precondition for Scale to be defined.
func (r Range) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) &&
		!math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0) &&
		r.Max > r.Min
}

// Width is the length of the interval.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Scale maps v from the range onto [0,1]: Min scales to 0, Max to 1.
func (r Range) Scale(v float64) float64 {
	return (v - r.Min) / r.Width()
}

// Unscale is the inverse of Scale; Unscale(Scale(v)) == v within floating
// tolerance for any valid range.
func (r Range) Unscale(v float64) float64 {
	return v*r.Width() + r.Min
}
