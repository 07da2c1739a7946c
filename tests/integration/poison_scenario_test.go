package integration

import (
	"github.com/veilmark/riftgate/internal/game/effect"
)

// TestPoisonStacking drives the full poison lifecycle: three quick
// applications refresh the timer and build stacks, ticks scale with
// the stack count, and the dot expires cleanly on schedule.
func (s *EffectEngineSuite) TestPoisonStacking() {
	res := s.apply(s.foeFx, "poison")
	s.Equal(effect.StatusApplied, res.Status)

	res = s.apply(s.foeFx, "poison")
	s.Equal(effect.StatusRefreshed, res.Status)
	res = s.apply(s.foeFx, "poison")
	s.Equal(effect.StatusRefreshed, res.Status)

	in := s.foeFx.Get("poison")
	s.Require().NotNil(in)
	s.Equal(3, in.Stacks())
	s.InDelta(8.0, in.Remaining(), 1e-9)

	// One second: one tick at -3 * (1 + 0.5*(3-1)) = -6.
	s.foeFx.Update(1.0)
	s.InDelta(94, s.foe.StatValue(s.foe.ID(), effect.StatHealth), 1e-9)

	// Run the rest of the duration out: 8 ticks total, then gone.
	for i := 0; i < 7; i++ {
		s.foeFx.Update(1.0)
	}
	s.InDelta(52, s.foe.StatValue(s.foe.ID(), effect.StatHealth), 1e-9)
	s.False(s.foeFx.Has("poison"))
	s.Zero(s.foeFx.Count())
}

// TestFractionalTicksAccumulate feeds poison sub-interval deltas and
// checks ticks land only on whole-interval boundaries.
func (s *EffectEngineSuite) TestFractionalTicksAccumulate() {
	s.apply(s.foeFx, "poison")

	s.foeFx.Update(0.4)
	s.foeFx.Update(0.4)
	s.InDelta(100, s.foe.StatValue(s.foe.ID(), effect.StatHealth), 1e-9)

	s.foeFx.Update(0.4) // accumulator crosses 1.0
	s.InDelta(97, s.foe.StatValue(s.foe.ID(), effect.StatHealth), 1e-9)
}

// TestCleanseStripsOnlyCleansableDebuffs applies a mixed set and
// cleanses: poison goes, the uncleansable bleed and the might buff stay.
func (s *EffectEngineSuite) TestCleanseStripsOnlyCleansableDebuffs() {
	s.apply(s.foeFx, "poison")
	s.apply(s.foeFx, "bleed")
	s.apply(s.foeFx, "might")

	removed := s.foeFx.Cleanse()
	s.Equal(1, removed)
	s.False(s.foeFx.Has("poison"))
	s.True(s.foeFx.Has("bleed"))
	s.True(s.foeFx.Has("might"))
}

// TestMightBuffLifecycle checks the instant/on-expire payload pair
// restores attack power to baseline after the buff runs out.
func (s *EffectEngineSuite) TestMightBuffLifecycle() {
	base := s.hero.StatValue(s.hero.ID(), effect.StatAttackPower)

	s.apply(s.heroFx, "might")
	s.InDelta(base+8, s.hero.StatValue(s.hero.ID(), effect.StatAttackPower), 1e-9)

	s.heroFx.Update(30.0)
	s.False(s.heroFx.Has("might"))
	s.InDelta(base, s.hero.StatValue(s.hero.ID(), effect.StatAttackPower), 1e-9)
}

// TestIndependentBleedsExpireSeparately stacks two bleed instances
// applied a second apart and checks they run their own clocks.
func (s *EffectEngineSuite) TestIndependentBleedsExpireSeparately() {
	s.apply(s.foeFx, "bleed")
	s.foeFx.Update(1.0)
	s.apply(s.foeFx, "bleed")
	s.Equal(2, s.foeFx.Count())

	// First bleed has 5s left, second 6s.
	s.foeFx.Update(5.0)
	s.Equal(1, s.foeFx.Count())
	s.foeFx.Update(1.0)
	s.Zero(s.foeFx.Count())
}
