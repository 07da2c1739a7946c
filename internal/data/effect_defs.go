package data

import "github.com/veilmark/riftgate/internal/game/effect"

// effectDefs holds the builtin status-effect definitions as Go
// literals. LoadEffects() freezes them into the global table at
// startup; operator extensions come in through LoadEffectsFile.
var effectDefs = []effect.DefinitionConfig{
	{
		ID:                "poison",
		Category:          effect.CategoryDebuff,
		Duration:          8,
		TickInterval:      1,
		StackPolicy:       effect.StackRefresh,
		MaxStacks:         5,
		Stackable:         true,
		Mode:              effect.ModeOnHit,
		ApplicationChance: 1,
		Cleansable:        true,
		Payloads: []effect.Payload{
			{Kind: effect.PayloadOverTime, Stat: effect.StatHealth, Base: -3, ScalesWithStacks: true, StackMultiplier: 0.5},
		},
	},
	{
		ID:                "burn",
		Category:          effect.CategoryDebuff,
		Duration:          4,
		TickInterval:      0.5,
		StackPolicy:       effect.StackReplace,
		Mode:              effect.ModeOnHit,
		ApplicationChance: 1,
		Cleansable:        true,
		Payloads: []effect.Payload{
			// Burns fade out: strong at first, gone by the end.
			{Kind: effect.PayloadOverTime, Stat: effect.StatHealth, Base: -4,
				Curve: effect.NewCurve(
					effect.CurveKey{T: 0, Value: 1},
					effect.CurveKey{T: 1, Value: 0.25},
				)},
		},
	},
	{
		ID:                "bleed",
		Category:          effect.CategoryDebuff,
		Duration:          6,
		TickInterval:      1,
		StackPolicy:       effect.StackIndependent,
		Mode:              effect.ModeOnHit,
		ApplicationChance: 1,
		Payloads: []effect.Payload{
			{Kind: effect.PayloadOverTime, Stat: effect.StatHealth, Base: -2},
		},
	},
	{
		ID:                "frostbite",
		Category:          effect.CategoryDebuff,
		Duration:          5,
		StackPolicy:       effect.StackExtend,
		MaxStacks:         3,
		Stackable:         true,
		Mode:              effect.ModeOnHit,
		ApplicationChance: 1,
		Cleansable:        true,
		Payloads: []effect.Payload{
			// Each stack slows by a flat 20; expiry gives back 20 per
			// stack so speed lands exactly on baseline.
			{Kind: effect.PayloadInstant, Stat: effect.StatSpeed, Base: -20},
			{Kind: effect.PayloadOnStack, Stat: effect.StatSpeed, Base: -20},
			{Kind: effect.PayloadOnExpire, Stat: effect.StatSpeed, Base: 20, ScalesWithStacks: true, StackMultiplier: 1},
		},
	},
	{
		ID:                "regeneration",
		Category:          effect.CategoryBuff,
		Duration:          10,
		TickInterval:      2,
		StackPolicy:       effect.StackRefresh,
		MaxStacks:         3,
		Mode:              effect.ModeOnUse,
		ApplicationChance: 1,
		Payloads: []effect.Payload{
			{Kind: effect.PayloadOverTime, Stat: effect.StatHealth, Base: 5, ScalesWithStacks: true, StackMultiplier: 0.4},
		},
	},
	{
		// Extend, not Replace or Refresh: those re-run the Instant +8
		// on reapplication while only one expiry ever pays the -8 back.
		ID:                "might",
		Category:          effect.CategoryBuff,
		Duration:          30,
		StackPolicy:       effect.StackExtend,
		Mode:              effect.ModeOnUse,
		ApplicationChance: 1,
		Payloads: []effect.Payload{
			{Kind: effect.PayloadInstant, Stat: effect.StatAttackPower, Base: 8},
			{Kind: effect.PayloadOnExpire, Stat: effect.StatAttackPower, Base: -8},
		},
	},
	{
		ID:                "ironhide",
		Category:          effect.CategoryBuff,
		Duration:          20,
		StackPolicy:       effect.StackExtend,
		Mode:              effect.ModeOnUse,
		ApplicationChance: 1,
		Payloads: []effect.Payload{
			// Percentage payload: +25% of current armor on apply.
			{Kind: effect.PayloadInstant, Stat: effect.StatArmor, Modifier: effect.ModPercent, Base: 25},
			{Kind: effect.PayloadOnExpire, Stat: effect.StatArmor, Modifier: effect.ModPercent, Base: -20},
		},
	},
	{
		// Tagged control effect: no payloads, combat checks the id.
		ID:                "stun",
		Category:          effect.CategoryDebuff,
		Duration:          2,
		StackPolicy:       effect.StackRefresh,
		Mode:              effect.ModeOnHit,
		ApplicationChance: 0.3,
		RequiresCritical:  true,
	},
	{
		ID:                "root",
		Category:          effect.CategoryDebuff,
		Duration:          4,
		StackPolicy:       effect.StackReplace,
		Mode:              effect.ModeTriggered,
		ApplicationChance: 1,
		Cleansable:        true,
	},
	{
		// Permanent aura, never time-expires, ticks forever.
		ID:                "second-wind",
		Category:          effect.CategoryNeutral,
		Permanent:         true,
		TickInterval:      5,
		StackPolicy:       effect.StackReplace,
		Mode:              effect.ModeAura,
		ApplicationChance: 1,
		Payloads: []effect.Payload{
			{Kind: effect.PayloadOverTime, Stat: effect.StatStamina, Base: 2},
		},
	},
}
