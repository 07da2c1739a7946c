package effect

// RemoveReason explains why an instance left the registry. Only
// ReasonExpired fires OnExpire payloads; every removal still emits an
// OnEffectRemoved notification.
type RemoveReason int8

const (
	ReasonExpired RemoveReason = iota
	ReasonCleansed
	ReasonCleared
	ReasonOwnerDied
	ReasonReplaced // internal eviction by the Replace stacking policy
)

func (r RemoveReason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonCleansed:
		return "cleansed"
	case ReasonCleared:
		return "cleared"
	case ReasonOwnerDied:
		return "ownerDied"
	case ReasonReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Listener receives effect lifecycle notifications. Callbacks fire
// synchronously at the point of mutation with the manager lock held:
// listeners must not call back into the Manager.
type Listener interface {
	OnEffectAdded(in *Instance)
	OnEffectRemoved(in *Instance, reason RemoveReason)
	OnStackChanged(in *Instance)
}
