package effect

// StatKind identifies a stat the engine can modify through the stat
// collaborator. The engine never interprets these beyond identity.
type StatKind string

const (
	StatHealth      StatKind = "health"
	StatStamina     StatKind = "stamina"
	StatArmor       StatKind = "armor"
	StatSpeed       StatKind = "speed"
	StatAttackPower StatKind = "attackPower"
)

// PayloadKind defines when a payload fires during an instance lifecycle.
type PayloadKind int8

const (
	PayloadInstant  PayloadKind = iota // on application (and re-application for Replace/Refresh)
	PayloadOverTime                    // on every tick boundary
	PayloadOnExpire                    // when the instance expires by time
	PayloadOnStack                     // when the stack count grows
)

// ModifierKind defines how an evaluated magnitude becomes a stat delta.
type ModifierKind int8

const (
	ModFlat    ModifierKind = iota // magnitude applied as-is
	ModPercent                     // magnitude is a percentage of the stat's current value
)

// Payload is a single stat-affecting clause inside a Definition.
// Payloads are plain values; a Definition owns its ordered payload list
// and shares it read-only across every instance.
type Payload struct {
	Kind             PayloadKind
	Stat             StatKind
	Modifier         ModifierKind
	Base             float64
	ScalesWithStacks bool
	StackMultiplier  float64
	Curve            *Curve
}

// Evaluate returns the magnitude this payload contributes at the given
// stack count and normalized progress. Pure: no shared state is touched.
//
// With ScalesWithStacks the base scales as base*(1 + mult*(stacks-1));
// a curve, when present, further scales the result by Curve.Sample(t).
func (p Payload) Evaluate(stacks int, normalizedTime float64) float64 {
	value := p.Base
	if p.ScalesWithStacks && stacks > 1 {
		value *= 1 + p.StackMultiplier*float64(stacks-1)
	}
	if p.Curve != nil {
		value *= p.Curve.Sample(normalizedTime)
	}
	return value
}
