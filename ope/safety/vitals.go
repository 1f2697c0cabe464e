package safety

// Vitals holds the bedside observations the clinical state rules evaluate.
// Units: tidal volume in ml/kg ideal body weight, respiratory rate in
// breaths/min, SpO2 in percent, plateau pressure in cmH2O.
type Vitals struct {
	TidalVolume     float64
	RespRate        float64
	SpO2            float64
	PlateauPressure float64
	PH              float64
}

// StateRule is a single clinically informed compliance predicate over one
// timestep's observations.
type StateRule func(Vitals) bool

// The individual lung-protective ventilation rules.
func TidalVolumeCompliant(v Vitals) bool     { return v.TidalVolume <= 7.0 }
func RespRateCompliant(v Vitals) bool        { return v.RespRate <= 35.0 }
func SpO2Compliant(v Vitals) bool            { return v.SpO2 >= 88.0 }
func PlateauPressureCompliant(v Vitals) bool { return v.PlateauPressure < 30.0 }
func PHCompliant(v Vitals) bool              { return v.PH < 7.5 }

// StateRules returns the full rule set in a fixed order.
func StateRules() []StateRule {
	return []StateRule{
		TidalVolumeCompliant,
		RespRateCompliant,
		SpO2Compliant,
		PlateauPressureCompliant,
		PHCompliant,
	}
}

// AnyCompliant aggregates the rule set with an inclusive or.
func AnyCompliant(v Vitals) bool {
	for _, rule := range StateRules() {
		if rule(v) {
			return true
		}
	}
	return false
}

// AllCompliant aggregates the rule set with an and.
func AllCompliant(v Vitals) bool {
	for _, rule := range StateRules() {
		if !rule(v) {
			return false
		}
	}
	return true
}

// ComplianceFraction aggregates the rule set by the fraction of rules met.
func ComplianceFraction(v Vitals) float64 {
	rules := StateRules()
	met := 0
	for _, rule := range rules {
		if rule(v) {
			met++
		}
	}
	return float64(met) / float64(len(rules))
}
