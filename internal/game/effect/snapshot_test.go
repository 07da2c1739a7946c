package effect

import "testing"

func snapshotCatalog(defs ...*Definition) func(string) (*Definition, bool) {
	byID := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		byID[d.ID()] = d
	}
	return func(id string) (*Definition, bool) {
		d, ok := byID[id]
		return d, ok
	}
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	poison := MustDefinition(DefinitionConfig{
		ID: "poison", Category: CategoryDebuff, Duration: 8,
		TickInterval: 1, StackPolicy: StackRefresh, MaxStacks: 5,
		Payloads: []Payload{
			{Kind: PayloadInstant, Stat: StatHealth, Base: -10},
			{Kind: PayloadOverTime, Stat: StatHealth, Base: -3},
		},
	})

	src := NewManager(1, 0, newRecordingSink())
	src.TryApply(poison, ApplyContext{})
	src.TryApply(poison, ApplyContext{}) // 2 stacks
	src.Update(2.5)                      // remaining 5.5, tickAcc 0.5

	snaps := src.Snapshot()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	s := snaps[0]
	if s.DefinitionID != "poison" || s.Stacks != 2 {
		t.Fatalf("bad snapshot: %+v", s)
	}
	if s.Remaining != 5.5 || s.TickAccumulator != 0.5 {
		t.Fatalf("bad snapshot timing: %+v", s)
	}

	// Restore into a fresh manager; no Instant payloads may re-run.
	sink := newRecordingSink()
	lis := &recordingListener{}
	dst := NewManager(1, 0, sink)
	dst.AddListener(lis)
	dst.Restore(snaps, snapshotCatalog(poison))

	if len(sink.calls) != 0 {
		t.Errorf("restore must not re-run payloads, got %d stat calls", len(sink.calls))
	}
	if len(lis.added) != 1 {
		t.Errorf("restore should notify OnEffectAdded, got %d", len(lis.added))
	}

	in := dst.Get("poison")
	if in == nil {
		t.Fatal("restored instance missing")
	}
	if in.Stacks() != 2 || in.Remaining() != 5.5 || in.TickAccumulator() != 0.5 || in.Token() != s.Token {
		t.Errorf("restored state mismatch: stacks=%d remaining=%.2f acc=%.2f token=%d",
			in.Stacks(), in.Remaining(), in.TickAccumulator(), in.Token())
	}

	// Timing resumes where it left off: 0.5s more completes a tick.
	dst.Update(0.5)
	if got := len(sink.callsFor(StatHealth)); got != 1 {
		t.Errorf("expected 1 tick after restore, got %d", got)
	}
}

func TestRestore_UnknownDefinitionSkipped(t *testing.T) {
	known := MustDefinition(DefinitionConfig{ID: "known", Duration: 5})

	m := NewManager(1, 0, nil)
	m.Restore([]InstanceSnapshot{
		{DefinitionID: "gone", Stacks: 1, Remaining: 3, Token: 900},
		{DefinitionID: "known", Stacks: 1, Remaining: 3, Token: 901},
	}, snapshotCatalog(known))

	if m.Count() != 1 {
		t.Fatalf("expected stale entry skipped, got %d instances", m.Count())
	}
	if !m.Has("known") {
		t.Error("known definition should have been restored")
	}
}

func TestRestore_ClampsStacks(t *testing.T) {
	def := MustDefinition(DefinitionConfig{ID: "x", Duration: 5, MaxStacks: 3})

	m := NewManager(1, 0, nil)
	m.Restore([]InstanceSnapshot{
		{DefinitionID: "x", Stacks: 99, Remaining: 3, Token: 910},
	}, snapshotCatalog(def))

	if got := m.Get("x").Stacks(); got != 3 {
		t.Errorf("stacks should clamp to max on restore, got %d", got)
	}
}

func TestRestore_TokenUniqueness(t *testing.T) {
	def := MustDefinition(DefinitionConfig{ID: "x", Duration: 5, StackPolicy: StackIndependent})

	m := NewManager(1, 0, nil)
	m.Restore([]InstanceSnapshot{
		{DefinitionID: "x", Stacks: 1, Remaining: 3, Token: 1 << 40},
	}, snapshotCatalog(def))

	res, err := m.TryApply(def, ApplyContext{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Instance.Token() <= 1<<40 {
		t.Errorf("fresh tokens must not collide with restored ones, got %d", res.Instance.Token())
	}
}
