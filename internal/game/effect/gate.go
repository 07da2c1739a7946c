package effect

// ShouldApply is the application gate evaluated by trigger collaborators
// before an attempt reaches the Manager. Pure: the uniform random draw
// in [0,1) is supplied by the caller, never taken from global state.
//
// requiresCritical rejects non-crit attempts outright. The effective
// chance is the definition chance scaled by an external (weapon/source)
// multiplier, clamped to [0,1].
func ShouldApply(def *Definition, isCritical bool, externalMultiplier, randomDraw float64) bool {
	if def == nil {
		return false
	}
	if def.requiresCrit && !isCritical {
		return false
	}

	chance := def.chance * externalMultiplier
	if chance <= 0 {
		return false
	}
	if chance > 1 {
		chance = 1
	}
	return randomDraw < chance
}
