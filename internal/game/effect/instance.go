package effect

import "sync/atomic"

// instanceTokens issues process-unique tokens. Restore bumps it past
// persisted tokens so reconstructed and fresh instances never collide.
var instanceTokens atomic.Uint64

func nextInstanceToken() uint64 {
	return instanceTokens.Add(1)
}

// bumpInstanceTokens raises the counter to at least floor.
func bumpInstanceTokens(floor uint64) {
	for {
		cur := instanceTokens.Load()
		if cur >= floor {
			return
		}
		if instanceTokens.CompareAndSwap(cur, floor) {
			return
		}
	}
}

// Instance is the mutable runtime state of one active application of a
// Definition on one entity. It is owned exclusively by one Manager;
// only the Manager mutates it. External readers get copies via the
// Manager's query methods.
type Instance struct {
	def       *Definition
	owner     uint32
	token     uint64
	stacks    int
	remaining float64
	tickAcc   float64
}

// Definition returns the shared immutable template.
func (in *Instance) Definition() *Definition { return in.def }

// Owner returns the entity id this instance is attached to.
func (in *Instance) Owner() uint32 { return in.owner }

// Token distinguishes co-existing instances of the same definition
// under the Independent stacking policy.
func (in *Instance) Token() uint64 { return in.token }

// Stacks is always within [1, MaxStacks].
func (in *Instance) Stacks() int { return in.stacks }

// Remaining is the time left in seconds; meaningless for permanent
// definitions.
func (in *Instance) Remaining() float64 { return in.remaining }

// TickAccumulator is the time carried toward the next tick boundary.
func (in *Instance) TickAccumulator() float64 { return in.tickAcc }

// Expired reports whether a non-permanent instance has run out of time.
func (in *Instance) Expired() bool {
	return !in.def.permanent && in.remaining <= 0
}

// normalizedTime is elapsed/duration in [0,1]. Permanent instances have
// no duration and sample at 0.
func (in *Instance) normalizedTime() float64 {
	if in.def.permanent || in.def.duration <= 0 {
		return 0
	}
	t := 1 - in.remaining/in.def.duration
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
