package combat

import "github.com/veilmark/riftgate/internal/game/effect"

// Control effects are plain tagged definitions: no payloads, just a
// distinguished id the combat and movement code checks for. This keeps
// "stun disables actions" out of the effect engine itself.
const (
	EffectIDStun  = "stun"
	EffectIDRoot  = "root"
	EffectIDSleep = "sleep"
)

// actionLockIDs are the control effects that prevent acting entirely.
var actionLockIDs = []string{EffectIDStun, EffectIDSleep}

// IsActionLocked reports whether the entity can act at all.
func IsActionLocked(m *effect.Manager) bool {
	for _, id := range actionLockIDs {
		if m.Has(id) {
			return true
		}
	}
	return false
}

// CanMove reports whether the entity may move. Rooted entities can
// still act (attack, use items) but not move.
func CanMove(m *effect.Manager) bool {
	return !IsActionLocked(m) && !m.Has(EffectIDRoot)
}
