package data

import (
	"fmt"
	"log/slog"

	"github.com/veilmark/riftgate/internal/game/effect"
)

// EffectTable is the global definition catalog, keyed by effect id.
// Loaded via LoadEffects() at server start; persistence resolves saved
// instances against it.
var EffectTable map[string]*effect.Definition

// GetEffectDefinition returns the definition for an id, or nil if not
// loaded. Signature-compatible adapter for Manager.Restore is
// ResolveEffect.
func GetEffectDefinition(id string) *effect.Definition {
	if EffectTable == nil {
		return nil
	}
	return EffectTable[id]
}

// ResolveEffect is the catalog lookup handed to effect.Manager.Restore.
func ResolveEffect(id string) (*effect.Definition, bool) {
	def := GetEffectDefinition(id)
	return def, def != nil
}

// LoadEffects builds EffectTable from the builtin definition literals.
// Called at server start, before any catalog lookup.
func LoadEffects() error {
	EffectTable = make(map[string]*effect.Definition, len(effectDefs))

	for i := range effectDefs {
		def, err := effect.NewDefinition(effectDefs[i])
		if err != nil {
			return fmt.Errorf("building effect definition %q: %w", effectDefs[i].ID, err)
		}
		if _, dup := EffectTable[def.ID()]; dup {
			return fmt.Errorf("duplicate effect definition %q", def.ID())
		}
		EffectTable[def.ID()] = def
	}

	slog.Info("effect definitions loaded", "count", len(EffectTable))
	return nil
}
