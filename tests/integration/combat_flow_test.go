package integration

import (
	"github.com/veilmark/riftgate/internal/data"
	"github.com/veilmark/riftgate/internal/game/combat"
	"github.com/veilmark/riftgate/internal/game/effect"
)

// scripted returns a draw source that replays the given values in
// order. Running past the script fails the suite.
func (s *EffectEngineSuite) scripted(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		s.Require().Less(i, len(vals), "draw script exhausted")
		v := vals[i]
		i++
		return v
	}
}

func venomEdge() combat.Weapon {
	return combat.Weapon{
		Name:       "venom-edge",
		Damage:     14,
		CritChance: 0.2,
		Procs: []combat.WeaponProc{
			{Definition: data.GetEffectDefinition("poison"), Multiplier: 1},
			{Definition: data.GetEffectDefinition("stun"), Multiplier: 1},
		},
	}
}

// TestStrikeProcsPoison resolves one non-crit hit: 24 raw damage into
// 20 armor, the poison proc passes its gate, stun never fires without
// a crit.
func (s *EffectEngineSuite) TestStrikeProcsPoison() {
	// crit roll, poison gate, stun gate (ignored, crit required)
	r := combat.NewResolver(s.scripted(0.9, 0.1, 0.0))

	out := r.Strike(s.hero, s.heroFx, s.foe, s.foeFx, venomEdge())
	s.True(out.Landed)
	s.False(out.Critical)
	s.InDelta(20, out.Damage, 1e-9)
	s.InDelta(80, s.foe.StatValue(s.foe.ID(), effect.StatHealth), 1e-9)

	s.True(s.foeFx.Has("poison"))
	s.False(s.foeFx.Has("stun"))
}

// TestCriticalStrikeUnlocksStun checks the crit-gated proc path: on a
// crit the stun gate rolls for real and can land.
func (s *EffectEngineSuite) TestCriticalStrikeUnlocksStun() {
	// crit roll passes, poison gate passes, stun gate 0.1 < 0.3
	r := combat.NewResolver(s.scripted(0.05, 0.1, 0.1))

	out := r.Strike(s.hero, s.heroFx, s.foe, s.foeFx, venomEdge())
	s.True(out.Critical)
	s.InDelta(40, out.Damage, 1e-9)
	s.True(s.foeFx.Has("stun"))

	// The stunned side swings back and nothing happens.
	back := r.Strike(s.foe, s.foeFx, s.hero, s.heroFx, venomEdge())
	s.False(back.Landed)
	s.InDelta(100, s.hero.StatValue(s.hero.ID(), effect.StatHealth), 1e-9)

	// Stun wears off and the lock lifts.
	s.foeFx.Update(2.0)
	s.False(combat.IsActionLocked(s.foeFx))
}

// TestKillClearsVictimEffects drops the target with a strike and
// checks death wipes its effect set.
func (s *EffectEngineSuite) TestKillClearsVictimEffects() {
	s.apply(s.foeFx, "poison")
	s.apply(s.foeFx, "might")
	s.foe.ModifyStat(s.foe.ID(), effect.StatHealth, -95, "setup")

	r := combat.NewResolver(s.scripted(0.9, 0.9, 0.9))
	out := r.Strike(s.hero, s.heroFx, s.foe, s.foeFx, venomEdge())

	s.True(out.Killed)
	s.True(s.foe.IsDead())
	s.Zero(s.foeFx.Count())
}

// TestRootLocksMovementNotActions distinguishes the two control
// checks: a rooted fighter cannot move but still swings.
func (s *EffectEngineSuite) TestRootLocksMovementNotActions() {
	s.apply(s.heroFx, "root")

	s.False(combat.CanMove(s.heroFx))
	s.False(combat.IsActionLocked(s.heroFx))

	r := combat.NewResolver(s.scripted(0.9, 0.9, 0.9))
	out := r.Strike(s.hero, s.heroFx, s.foe, s.foeFx, venomEdge())
	s.True(out.Landed)
}
