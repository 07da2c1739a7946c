package model

import (
	"log/slog"
	"sync"

	"github.com/veilmark/riftgate/internal/game/effect"
)

// Character is the stat-storage collaborator of the effect engine.
// It owns the clamped stat values; the engine only hands it deltas.
//
// Thread-safe: all methods are protected by sync.Mutex.
type Character struct {
	mu   sync.Mutex
	id   uint32
	name string

	// current stat values, keyed by effect.StatKind
	stats map[effect.StatKind]float64
	// upper bounds for bounded stats (health, stamina); unbounded
	// stats clamp only at zero
	maxStats map[effect.StatKind]float64

	dead bool
}

// NewCharacter creates a character with baseline combat stats.
func NewCharacter(id uint32, name string) *Character {
	return &Character{
		id:   id,
		name: name,
		stats: map[effect.StatKind]float64{
			effect.StatHealth:      100,
			effect.StatStamina:     50,
			effect.StatArmor:       20,
			effect.StatSpeed:       100,
			effect.StatAttackPower: 10,
		},
		maxStats: map[effect.StatKind]float64{
			effect.StatHealth:  100,
			effect.StatStamina: 50,
		},
	}
}

// ID returns the entity id.
func (c *Character) ID() uint32 { return c.id }

// Name returns the display name.
func (c *Character) Name() string { return c.name }

// StatValue implements effect.StatSink.
func (c *Character) StatValue(_ uint32, stat effect.StatKind) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats[stat]
}

// ModifyStat implements effect.StatSink. The delta is applied and
// clamped against this stat's bounds; health hitting zero marks the
// character dead.
func (c *Character) ModifyStat(_ uint32, stat effect.StatKind, delta float64, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value := c.stats[stat] + delta
	if value < 0 {
		value = 0
	}
	if bound, bounded := c.maxStats[stat]; bounded && value > bound {
		value = bound
	}
	c.stats[stat] = value

	slog.Debug("stat modified",
		"character", c.name,
		"stat", string(stat),
		"delta", delta,
		"value", value,
		"reason", reason)

	if stat == effect.StatHealth && value <= 0 {
		c.dead = true
	}
}

// SetMaxStat changes a stat's upper bound, clamping the current value
// down if needed.
func (c *Character) SetMaxStat(stat effect.StatKind, bound float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maxStats[stat] = bound
	if c.stats[stat] > bound {
		c.stats[stat] = bound
	}
}

// IsDead reports whether health has reached zero.
func (c *Character) IsDead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dead
}

// Revive restores the character to full bounded stats.
func (c *Character) Revive() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dead = false
	for stat, bound := range c.maxStats {
		c.stats[stat] = bound
	}
}
