package effect

import "log/slog"

// InstanceSnapshot is the persisted form of one active instance.
// Instant/OnStack payloads already took effect before the save, so a
// restore reconstructs state without re-running them.
type InstanceSnapshot struct {
	DefinitionID    string
	Stacks          int
	Remaining       float64
	TickAccumulator float64
	Token           uint64
}

// Snapshot copies every active instance into its persisted form.
// Safe to call from outside the simulation step.
func (m *Manager) Snapshot() []InstanceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]InstanceSnapshot, 0, len(m.instances))
	for _, in := range m.instances {
		out = append(out, InstanceSnapshot{
			DefinitionID:    in.def.id,
			Stacks:          in.stacks,
			Remaining:       in.remaining,
			TickAccumulator: in.tickAcc,
			Token:           in.token,
		})
	}
	return out
}

// Restore reconstructs instances from snapshots, resolving definition
// ids through the supplied catalog lookup. No Instant or OnStack
// payloads run; OnEffectAdded still fires so consumers learn of the
// reconstructed instances. Snapshots whose definition is no longer in
// the catalog are skipped with a warning; a stale save must not block
// the entity from loading.
func (m *Manager) Restore(snaps []InstanceSnapshot, resolve func(id string) (*Definition, bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var maxToken uint64
	for _, s := range snaps {
		def, ok := resolve(s.DefinitionID)
		if !ok {
			slog.Warn("skipping unknown effect in save",
				"effect", s.DefinitionID,
				"owner", m.owner)
			continue
		}

		stacks := s.Stacks
		if stacks < 1 {
			stacks = 1
		}
		if stacks > def.maxStacks {
			stacks = def.maxStacks
		}

		in := &Instance{
			def:       def,
			owner:     m.owner,
			token:     s.Token,
			stacks:    stacks,
			remaining: s.Remaining,
			tickAcc:   s.TickAccumulator,
		}
		m.instances = append(m.instances, in)
		m.notifyAddedLocked(in)

		if s.Token > maxToken {
			maxToken = s.Token
		}
	}

	// Keep fresh tokens unique across restores.
	bumpInstanceTokens(maxToken)
}
