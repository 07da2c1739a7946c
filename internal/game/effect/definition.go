package effect

import (
	"errors"
	"fmt"
)

// Category splits effects for bulk queries and cleansing.
type Category int8

const (
	CategoryBuff Category = iota
	CategoryDebuff
	CategoryNeutral
)

func (c Category) String() string {
	switch c {
	case CategoryBuff:
		return "buff"
	case CategoryDebuff:
		return "debuff"
	default:
		return "neutral"
	}
}

// StackPolicy resolves a re-application of an already-present definition.
type StackPolicy int8

const (
	StackReplace     StackPolicy = iota // remove existing, start fresh
	StackGrow                           // increment stacks up to max, duration untouched
	StackRefresh                        // reset duration, stacks still accrue
	StackExtend                         // add full duration to remaining time
	StackIndependent                    // unlimited co-existing instances, independently timed
)

func (p StackPolicy) String() string {
	switch p {
	case StackReplace:
		return "replace"
	case StackGrow:
		return "stack"
	case StackRefresh:
		return "refresh"
	case StackExtend:
		return "extend"
	case StackIndependent:
		return "independent"
	default:
		return fmt.Sprintf("stackPolicy(%d)", int8(p))
	}
}

// ApplicationMode names the trigger that may apply this effect. The
// engine itself does not branch on it; trigger collaborators use it to
// route application requests.
type ApplicationMode int8

const (
	ModeOnHit ApplicationMode = iota
	ModeOnUse
	ModeOnDamaged
	ModeOnAttack
	ModeAura
	ModeTriggered
)

// ChanceDefault marks an unset application chance; NewDefinition
// resolves any negative value to 1 (always applies). A literal 0 keeps
// its meaning: the gate never passes.
const ChanceDefault = -1.0

// DefinitionConfig is the mutable builder input for NewDefinition.
// Zero values produce a permanent, non-ticking effect with zero
// application chance; gate-applied content sets ApplicationChance
// explicitly, or ChanceDefault for always.
type DefinitionConfig struct {
	ID                string
	Category          Category
	Permanent         bool
	Duration          float64 // seconds, ignored when Permanent
	StackPolicy       StackPolicy
	MaxStacks         int // defaults to 1
	Stackable         bool
	TickInterval      float64 // seconds, 0 = no periodic payloads
	Mode              ApplicationMode
	ApplicationChance float64 // [0,1]; negative means ChanceDefault
	RequiresCritical  bool
	Cleansable        bool
	Payloads          []Payload
}

// Definition is the immutable template for one kind of status effect.
// All instances of the same kind share one Definition by reference.
type Definition struct {
	id           string
	category     Category
	permanent    bool
	duration     float64
	stackPolicy  StackPolicy
	maxStacks    int
	stackable    bool
	tickInterval float64
	mode         ApplicationMode
	chance       float64
	requiresCrit bool
	cleansable   bool
	payloads     []Payload
}

var (
	ErrEmptyDefinitionID = errors.New("effect definition has empty id")
	ErrBadDuration       = errors.New("timed effect needs a positive duration")
	ErrBadChance         = errors.New("application chance above 1")
)

// NewDefinition validates cfg and freezes it into a Definition.
func NewDefinition(cfg DefinitionConfig) (*Definition, error) {
	if cfg.ID == "" {
		return nil, ErrEmptyDefinitionID
	}
	if !cfg.Permanent && cfg.Duration <= 0 {
		return nil, fmt.Errorf("effect %q: %w", cfg.ID, ErrBadDuration)
	}
	if cfg.ApplicationChance > 1 {
		return nil, fmt.Errorf("effect %q: %w", cfg.ID, ErrBadChance)
	}
	if cfg.MaxStacks < 1 {
		cfg.MaxStacks = 1
	}
	if cfg.ApplicationChance < 0 {
		cfg.ApplicationChance = 1
	}
	if cfg.TickInterval < 0 {
		cfg.TickInterval = 0
	}

	payloads := make([]Payload, len(cfg.Payloads))
	copy(payloads, cfg.Payloads)

	return &Definition{
		id:           cfg.ID,
		category:     cfg.Category,
		permanent:    cfg.Permanent,
		duration:     cfg.Duration,
		stackPolicy:  cfg.StackPolicy,
		maxStacks:    cfg.MaxStacks,
		stackable:    cfg.Stackable,
		tickInterval: cfg.TickInterval,
		mode:         cfg.Mode,
		chance:       cfg.ApplicationChance,
		requiresCrit: cfg.RequiresCritical,
		cleansable:   cfg.Cleansable,
		payloads:     payloads,
	}, nil
}

// MustDefinition is NewDefinition for static definition tables; panics
// on invalid config.
func MustDefinition(cfg DefinitionConfig) *Definition {
	def, err := NewDefinition(cfg)
	if err != nil {
		panic(err)
	}
	return def
}

func (d *Definition) ID() string                 { return d.id }
func (d *Definition) Category() Category         { return d.category }
func (d *Definition) Permanent() bool            { return d.permanent }
func (d *Definition) Duration() float64          { return d.duration }
func (d *Definition) StackPolicy() StackPolicy   { return d.stackPolicy }
func (d *Definition) MaxStacks() int             { return d.maxStacks }
func (d *Definition) Stackable() bool            { return d.stackable }
func (d *Definition) TickInterval() float64      { return d.tickInterval }
func (d *Definition) Mode() ApplicationMode      { return d.mode }
func (d *Definition) ApplicationChance() float64 { return d.chance }
func (d *Definition) RequiresCritical() bool     { return d.requiresCrit }
func (d *Definition) Cleansable() bool           { return d.cleansable }

// Payloads returns a copy of the ordered payload list.
func (d *Definition) Payloads() []Payload {
	out := make([]Payload, len(d.payloads))
	copy(out, d.payloads)
	return out
}

// CreateInstance builds the initial runtime state for one application
// of this definition on the given entity: one stack, full duration,
// zero tick accumulator.
func (d *Definition) CreateInstance(owner uint32) *Instance {
	remaining := d.duration
	if d.permanent {
		remaining = 0
	}
	return &Instance{
		def:       d,
		owner:     owner,
		token:     nextInstanceToken(),
		stacks:    1,
		remaining: remaining,
	}
}
