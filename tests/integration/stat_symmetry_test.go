package integration

import (
	"github.com/veilmark/riftgate/internal/game/effect"
)

// TestFrostbiteStacksRestoreSpeed builds frostbite up to full stacks
// and lets it run out: every stack's slow must be paid back on expiry,
// leaving speed exactly at baseline.
func (s *EffectEngineSuite) TestFrostbiteStacksRestoreSpeed() {
	base := s.foe.StatValue(s.foe.ID(), effect.StatSpeed)

	s.apply(s.foeFx, "frostbite")
	s.InDelta(base-20, s.foe.StatValue(s.foe.ID(), effect.StatSpeed), 1e-9)

	s.apply(s.foeFx, "frostbite")
	s.InDelta(base-40, s.foe.StatValue(s.foe.ID(), effect.StatSpeed), 1e-9)

	s.apply(s.foeFx, "frostbite")
	in := s.foeFx.Get("frostbite")
	s.Require().NotNil(in)
	s.Equal(3, in.Stacks())
	s.InDelta(base-60, s.foe.StatValue(s.foe.ID(), effect.StatSpeed), 1e-9)

	s.foeFx.Update(100)
	s.False(s.foeFx.Has("frostbite"))
	s.InDelta(base, s.foe.StatValue(s.foe.ID(), effect.StatSpeed), 1e-9)
}

// TestMightReapplyStaysSymmetric reapplies might mid-duration and runs
// it to expiry: the buff extends instead of double-paying its instant
// bonus, so attack power returns to baseline.
func (s *EffectEngineSuite) TestMightReapplyStaysSymmetric() {
	base := s.hero.StatValue(s.hero.ID(), effect.StatAttackPower)

	s.apply(s.heroFx, "might")
	res := s.apply(s.heroFx, "might")
	s.Equal(effect.StatusExtended, res.Status)
	s.InDelta(base+8, s.hero.StatValue(s.hero.ID(), effect.StatAttackPower), 1e-9)

	s.heroFx.Update(60)
	s.False(s.heroFx.Has("might"))
	s.InDelta(base, s.hero.StatValue(s.hero.ID(), effect.StatAttackPower), 1e-9)
}
