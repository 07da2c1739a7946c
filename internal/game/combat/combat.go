package combat

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/veilmark/riftgate/internal/game/effect"
	"github.com/veilmark/riftgate/internal/model"
)

// WeaponProc is one on-hit status-effect trigger carried by a weapon.
// Multiplier scales the definition's application chance for this
// weapon (a venom-coated blade procs poison more often).
type WeaponProc struct {
	Definition *effect.Definition
	Multiplier float64
}

// Weapon bundles the numbers an attack resolution needs.
type Weapon struct {
	Name       string
	Damage     float64
	CritChance float64 // [0,1]
	Procs      []WeaponProc
}

// ProcResult reports one proc attempt of a hit.
type ProcResult struct {
	EffectID string
	Applied  bool
	Result   effect.ApplyResult
}

// HitOutcome is the full result of one resolved attack.
type HitOutcome struct {
	Landed   bool // false when the attacker is control-locked
	Critical bool
	Damage   float64
	Procs    []ProcResult
	Killed   bool
}

// Resolver resolves attacks. Every probability decision consumes a
// draw from the injected source, so a scripted source makes combat
// fully deterministic under test.
type Resolver struct {
	draw func() float64
}

// NewResolver builds a resolver around a uniform [0,1) draw source.
// A nil source falls back to math/rand/v2.
func NewResolver(draw func() float64) *Resolver {
	if draw == nil {
		draw = rand.Float64
	}
	return &Resolver{draw: draw}
}

// Strike resolves one weapon attack: control check, crit roll, damage
// through the target's stats, then on-hit effect procs through the
// application gate into the target's effect manager.
func (r *Resolver) Strike(attacker *model.Character, attackerFx *effect.Manager, target *model.Character, targetFx *effect.Manager, weapon Weapon) HitOutcome {
	if IsActionLocked(attackerFx) {
		slog.Debug("attack suppressed, attacker control-locked",
			"attacker", attacker.Name())
		return HitOutcome{}
	}

	out := HitOutcome{Landed: true}
	out.Critical = r.draw() < weapon.CritChance

	out.Damage = r.damage(attacker, target, weapon, out.Critical)
	target.ModifyStat(target.ID(), effect.StatHealth, -out.Damage, "attack:"+weapon.Name)

	out.Procs = r.applyProcs(attacker, targetFx, weapon, out.Critical)

	if target.IsDead() {
		out.Killed = true
		targetFx.OnOwnerDeath()
		slog.Info("character died",
			"victim", target.Name(),
			"killer", attacker.Name())
	}

	return out
}

// damage computes the hit damage: weapon plus attack power, reduced by
// armor on a 100/(100+armor) scale, doubled on crit.
func (r *Resolver) damage(attacker *model.Character, target *model.Character, weapon Weapon, crit bool) float64 {
	raw := weapon.Damage + attacker.StatValue(attacker.ID(), effect.StatAttackPower)
	if crit {
		raw *= 2
	}

	armor := target.StatValue(target.ID(), effect.StatArmor)
	if armor < 0 {
		armor = 0
	}
	dmg := raw * 100 / (100 + armor)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// applyProcs runs every weapon proc through the application gate and,
// on success, into the target's effect manager.
func (r *Resolver) applyProcs(attacker *model.Character, targetFx *effect.Manager, weapon Weapon, crit bool) []ProcResult {
	if len(weapon.Procs) == 0 {
		return nil
	}

	results := make([]ProcResult, 0, len(weapon.Procs))
	for _, proc := range weapon.Procs {
		if proc.Definition == nil {
			continue
		}
		pr := ProcResult{EffectID: proc.Definition.ID()}

		if effect.ShouldApply(proc.Definition, crit, proc.Multiplier, r.draw()) {
			res, err := targetFx.TryApply(proc.Definition, effect.ApplyContext{
				Source:   attacker.ID(),
				Critical: crit,
			})
			switch {
			case err == nil:
				pr.Applied = true
				pr.Result = res
			case errors.Is(err, effect.ErrCapacityExceeded):
				slog.Debug("proc rejected by capacity",
					"effect", pr.EffectID,
					"target", targetFx.Owner())
			default:
				slog.Warn("proc application failed",
					"effect", pr.EffectID,
					"error", err)
			}
		}

		results = append(results, pr)
	}
	return results
}
