package effect

import (
	"errors"
	"log/slog"
	"sync"
)

// DefaultCapacity limits distinct active instances per entity when the
// caller does not configure one.
const DefaultCapacity = 32

// extendCapMultiple bounds remaining time under the Extend policy to a
// sane ceiling of the base duration.
const extendCapMultiple = 5.0

var (
	ErrNilDefinition    = errors.New("effect: nil definition")
	ErrCapacityExceeded = errors.New("effect: instance capacity exceeded")
)

// StatSink is the stat-storage collaborator. The engine computes deltas
// and the sink applies them, clamping against its own stat bounds.
// StatValue is needed to turn percentage payloads into deltas.
type StatSink interface {
	StatValue(entity uint32, stat StatKind) float64
	ModifyStat(entity uint32, stat StatKind, delta float64, reason string)
}

// ApplyContext carries the combat context of an application attempt.
// Stacking logic ignores it; it is forwarded to logging and listeners.
type ApplyContext struct {
	Source   uint32
	Critical bool
}

// ApplyStatus tells the caller how a successful TryApply resolved.
type ApplyStatus int8

const (
	StatusApplied     ApplyStatus = iota // new instance registered
	StatusReplaced                       // existing instance replaced by a fresh one
	StatusStacked                        // stack count grew
	StatusRefreshed                      // duration reset (stacks may also have grown)
	StatusExtended                       // duration extended
	StatusAtMaxStacks                    // no-op success: already at max stacks
)

func (s ApplyStatus) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusReplaced:
		return "replaced"
	case StatusStacked:
		return "stacked"
	case StatusRefreshed:
		return "refreshed"
	case StatusExtended:
		return "extended"
	case StatusAtMaxStacks:
		return "atMaxStacks"
	default:
		return "unknown"
	}
}

// ApplyResult is the success value of TryApply.
type ApplyResult struct {
	Instance *Instance
	Status   ApplyStatus
}

// Manager is the per-entity registry of active effect instances. It
// resolves stacking, drives per-step updates and enforces capacity.
//
// Thread-safe: all methods are protected by sync.RWMutex. Mutation is
// still expected only from the entity's owning simulation step.
type Manager struct {
	mu        sync.RWMutex
	owner     uint32
	capacity  int
	stats     StatSink
	listeners []Listener
	instances []*Instance
}

// NewManager creates an empty registry for the given entity. A
// non-positive capacity falls back to DefaultCapacity. sink may be nil
// when no stat collaborator exists (payload deltas are then dropped).
func NewManager(owner uint32, capacity int, sink StatSink) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{
		owner:     owner,
		capacity:  capacity,
		stats:     sink,
		instances: make([]*Instance, 0, 8),
	}
}

// Owner returns the entity id this manager belongs to.
func (m *Manager) Owner() uint32 { return m.owner }

// AddListener registers a lifecycle listener. Listeners are invoked
// synchronously and must not re-enter the manager.
func (m *Manager) AddListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// TryApply resolves an application request against the current effect
// set. The gate check (chance, crit requirement) is the caller's job;
// by the time a request reaches the manager it has already passed.
func (m *Manager) TryApply(def *Definition, ctx ApplyContext) (ApplyResult, error) {
	if def == nil {
		return ApplyResult{}, ErrNilDefinition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if def.stackPolicy != StackIndependent {
		if existing := m.findLocked(def.id); existing != nil {
			return m.restackLocked(existing, def, ctx), nil
		}
	}

	// New definition (or Independent): capacity gates here and only here.
	if len(m.instances) >= m.capacity {
		slog.Debug("effect rejected, capacity reached",
			"effect", def.id,
			"owner", m.owner,
			"capacity", m.capacity)
		return ApplyResult{}, ErrCapacityExceeded
	}

	in := def.CreateInstance(m.owner)
	m.instances = append(m.instances, in)
	m.applyPayloadsLocked(in, PayloadInstant, "apply")
	m.notifyAddedLocked(in)

	slog.Debug("effect applied",
		"effect", def.id,
		"owner", m.owner,
		"source", ctx.Source,
		"critical", ctx.Critical)

	return ApplyResult{Instance: in, Status: StatusApplied}, nil
}

// restackLocked resolves a re-application of an already-present
// definition per its stacking policy. Capacity never applies here.
func (m *Manager) restackLocked(existing *Instance, def *Definition, ctx ApplyContext) ApplyResult {
	switch def.stackPolicy {
	case StackReplace:
		m.evictLocked(existing, ReasonReplaced)
		in := def.CreateInstance(m.owner)
		m.instances = append(m.instances, in)
		m.applyPayloadsLocked(in, PayloadInstant, "replace")
		m.notifyAddedLocked(in)
		return ApplyResult{Instance: in, Status: StatusReplaced}

	case StackGrow:
		if existing.stacks >= existing.def.maxStacks {
			// No-op success: duration and stacks untouched.
			return ApplyResult{Instance: existing, Status: StatusAtMaxStacks}
		}
		existing.stacks++
		m.applyPayloadsLocked(existing, PayloadOnStack, "stack")
		m.notifyStackChangedLocked(existing)
		return ApplyResult{Instance: existing, Status: StatusStacked}

	case StackRefresh:
		existing.remaining = def.duration
		if existing.stacks < existing.def.maxStacks {
			existing.stacks++
			m.notifyStackChangedLocked(existing)
		}
		m.applyPayloadsLocked(existing, PayloadInstant, "refresh")
		return ApplyResult{Instance: existing, Status: StatusRefreshed}

	case StackExtend:
		existing.remaining += def.duration
		if ceiling := def.duration * extendCapMultiple; existing.remaining > ceiling {
			existing.remaining = ceiling
		}
		if def.stackable && existing.stacks < existing.def.maxStacks {
			existing.stacks++
			m.applyPayloadsLocked(existing, PayloadOnStack, "extend")
			m.notifyStackChangedLocked(existing)
		}
		return ApplyResult{Instance: existing, Status: StatusExtended}
	}

	// Unreachable for valid policies; treat like Replace to stay safe.
	m.evictLocked(existing, ReasonReplaced)
	in := def.CreateInstance(m.owner)
	m.instances = append(m.instances, in)
	m.applyPayloadsLocked(in, PayloadInstant, "replace")
	m.notifyAddedLocked(in)
	return ApplyResult{Instance: in, Status: StatusReplaced}
}

// Update advances all instances by deltaTime seconds: decrements
// timers, fires OverTime payloads on tick boundaries, then expires
// instances whose time ran out.
func (m *Manager) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []*Instance
	for _, in := range m.instances {
		if !in.def.permanent {
			in.remaining -= deltaTime
			if in.remaining < 0 {
				in.remaining = 0
			}
		}

		if interval := in.def.tickInterval; interval > 0 {
			in.tickAcc += deltaTime
			for in.tickAcc >= interval {
				m.applyPayloadsLocked(in, PayloadOverTime, "tick")
				in.tickAcc -= interval
			}
		}

		if in.Expired() {
			expired = append(expired, in)
		}
	}

	for _, in := range expired {
		m.removeLocked(in, ReasonExpired)
	}
}

// Remove evicts every instance of the given definition id. OnExpire
// payloads fire only for ReasonExpired. Unknown ids are a no-op.
// Reports whether anything was removed.
func (m *Manager) Remove(definitionID string, reason RemoveReason) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := false
	for _, in := range m.snapshotLocked() {
		if in.def.id == definitionID {
			m.removeLocked(in, reason)
			removed = true
		}
	}
	return removed
}

// RemoveInstance evicts one instance by token. Needed for Independent
// policy effects where a definition id is ambiguous.
func (m *Manager) RemoveInstance(token uint64, reason RemoveReason) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, in := range m.instances {
		if in.token == token {
			m.removeLocked(in, reason)
			return true
		}
	}
	return false
}

// RemoveAllOfCategory evicts every instance of the category and returns
// the count removed.
func (m *Manager) RemoveAllOfCategory(cat Category, reason RemoveReason) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, in := range m.snapshotLocked() {
		if in.def.category == cat {
			m.removeLocked(in, reason)
			n++
		}
	}
	return n
}

// RemoveAll evicts everything and returns the count removed.
func (m *Manager) RemoveAll(reason RemoveReason) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, in := range m.snapshotLocked() {
		m.removeLocked(in, reason)
		n++
	}
	return n
}

// Cleanse removes cleansable debuffs with ReasonCleansed (no OnExpire
// payloads) and returns the count removed.
func (m *Manager) Cleanse() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, in := range m.snapshotLocked() {
		if in.def.category == CategoryDebuff && in.def.cleansable {
			m.removeLocked(in, ReasonCleansed)
			n++
		}
	}
	return n
}

// OnOwnerDeath clears the effect set when the entity dies.
func (m *Manager) OnOwnerDeath() int {
	return m.RemoveAll(ReasonOwnerDied)
}

// Has reports whether any instance of the definition id is active.
// Control effects (stun, root) are checked this way by collaborators
// instead of per-type effect subclasses.
func (m *Manager) Has(definitionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLocked(definitionID) != nil
}

// Get returns the first active instance of the definition id, or nil.
func (m *Manager) Get(definitionID string) *Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLocked(definitionID)
}

// ListAll returns a copy of the active instance list.
func (m *Manager) ListAll() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Count returns the total number of active instances.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances)
}

// CountByCategory returns the number of active instances in a category.
func (m *Manager) CountByCategory(cat Category) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, in := range m.instances {
		if in.def.category == cat {
			n++
		}
	}
	return n
}

// findLocked returns the first instance matching the definition id.
func (m *Manager) findLocked(definitionID string) *Instance {
	for _, in := range m.instances {
		if in.def.id == definitionID {
			return in
		}
	}
	return nil
}

// snapshotLocked copies the instance slice so callers can mutate the
// registry while iterating.
func (m *Manager) snapshotLocked() []*Instance {
	out := make([]*Instance, len(m.instances))
	copy(out, m.instances)
	return out
}

// removeLocked fires OnExpire payloads when the reason is expiry, then
// evicts and notifies.
func (m *Manager) removeLocked(in *Instance, reason RemoveReason) {
	if reason == ReasonExpired {
		m.applyPayloadsLocked(in, PayloadOnExpire, "expire")
	}
	m.evictLocked(in, reason)
}

// evictLocked drops the instance from the registry and notifies.
// Never fires payloads: cleanse/clear/replace skip OnExpire by design
// intent, and expiry payloads are the caller's job.
func (m *Manager) evictLocked(target *Instance, reason RemoveReason) {
	n := 0
	for _, in := range m.instances {
		if in != target {
			m.instances[n] = in
			n++
		}
	}
	if n == len(m.instances) {
		return // not registered, idempotent no-op
	}
	m.instances = m.instances[:n]

	slog.Debug("effect removed",
		"effect", target.def.id,
		"owner", m.owner,
		"reason", reason.String())

	for _, l := range m.listeners {
		l.OnEffectRemoved(target, reason)
	}
}

// applyPayloadsLocked evaluates and pushes every payload of the given
// kind through the stat collaborator.
func (m *Manager) applyPayloadsLocked(in *Instance, kind PayloadKind, action string) {
	if m.stats == nil {
		return
	}
	t := in.normalizedTime()
	if kind == PayloadOnExpire {
		t = 1
	}
	reason := in.def.id + ":" + action
	for _, p := range in.def.payloads {
		if p.Kind != kind {
			continue
		}
		magnitude := p.Evaluate(in.stacks, t)
		delta := magnitude
		if p.Modifier == ModPercent {
			delta = m.stats.StatValue(m.owner, p.Stat) * magnitude / 100
		}
		if delta == 0 {
			continue
		}
		m.stats.ModifyStat(m.owner, p.Stat, delta, reason)
	}
}

func (m *Manager) notifyAddedLocked(in *Instance) {
	for _, l := range m.listeners {
		l.OnEffectAdded(in)
	}
}

func (m *Manager) notifyStackChangedLocked(in *Instance) {
	for _, l := range m.listeners {
		l.OnStackChanged(in)
	}
}
