package interpret

// Confidence scoring constants. The base comes from the specificity weight
// of the strongest matched rule; corroborating evidence nudges it up, with
// explicit cues (an exact "N/10", a spelled-out date) worth more than
// inferred ones. Both bonus classes are capped so a noisy message cannot
// manufacture certainty from a weak trigger.
const (
	paramBonus       = 0.05
	maxParamBonus    = 0.20
	explicitBonus    = 0.10
	maxExplicitBonus = 0.20
)

// Score computes the confidence for a classification from the strongest
// rule weight, the number of parameters actually extracted, and how many of
// those were explicit. Pure and deterministic; result is clamped to [0,1].
func Score(weight float64, params, explicit int) float64 {
	s := clamp01(weight)

	pb := float64(params) * paramBonus
	if pb > maxParamBonus {
		pb = maxParamBonus
	}
	eb := float64(explicit) * explicitBonus
	if eb > maxExplicitBonus {
		eb = maxExplicitBonus
	}

	return clamp01(s + pb + eb)
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
