package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veilmark/riftgate/internal/game/effect"
)

// effectFile is the YAML schema for operator-supplied definitions.
type effectFile struct {
	Effects []effectYAML `yaml:"effects"`
}

type effectYAML struct {
	ID           string  `yaml:"id"`
	Category     string  `yaml:"category"`
	Permanent    bool    `yaml:"permanent"`
	Duration     float64 `yaml:"duration"`
	TickInterval float64 `yaml:"tick_interval"`
	StackPolicy  string  `yaml:"stack_policy"`
	MaxStacks    int     `yaml:"max_stacks"`
	Stackable    bool    `yaml:"stackable"`
	Mode         string  `yaml:"mode"`
	// Pointer so an absent key means "always" while a literal 0 keeps
	// its never-applies meaning.
	ApplicationChance *float64      `yaml:"application_chance"`
	RequiresCritical  bool          `yaml:"requires_critical"`
	Cleansable        bool          `yaml:"cleansable"`
	Payloads          []payloadYAML `yaml:"payloads"`
}

type payloadYAML struct {
	Kind             string     `yaml:"kind"`
	Stat             string     `yaml:"stat"`
	Modifier         string     `yaml:"modifier"`
	Base             float64    `yaml:"base"`
	ScalesWithStacks bool       `yaml:"scales_with_stacks"`
	StackMultiplier  float64    `yaml:"stack_multiplier"`
	Curve            []curveKey `yaml:"curve"`
}

type curveKey struct {
	T     float64 `yaml:"t"`
	Value float64 `yaml:"value"`
}

// LoadEffectsFile parses a YAML definition file and merges its effects
// into EffectTable. File entries override builtins with the same id.
// LoadEffects must have run first.
func LoadEffectsFile(path string) error {
	if EffectTable == nil {
		return fmt.Errorf("effect table not initialized, call LoadEffects first")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading effects file %s: %w", path, err)
	}

	var file effectFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing effects file %s: %w", path, err)
	}

	loaded := 0
	for i := range file.Effects {
		cfg, err := file.Effects[i].toConfig()
		if err != nil {
			return fmt.Errorf("effects file %s: %w", path, err)
		}
		def, err := effect.NewDefinition(cfg)
		if err != nil {
			return fmt.Errorf("effects file %s: building %q: %w", path, cfg.ID, err)
		}
		if _, overrides := EffectTable[def.ID()]; overrides {
			slog.Debug("effect definition overridden", "effect", def.ID())
		}
		EffectTable[def.ID()] = def
		loaded++
	}

	slog.Info("effect definitions loaded from file", "path", path, "count", loaded)
	return nil
}

func (e *effectYAML) toConfig() (effect.DefinitionConfig, error) {
	cfg := effect.DefinitionConfig{
		ID:                e.ID,
		Permanent:         e.Permanent,
		Duration:          e.Duration,
		TickInterval:      e.TickInterval,
		MaxStacks:         e.MaxStacks,
		Stackable:         e.Stackable,
		ApplicationChance: effect.ChanceDefault,
		RequiresCritical:  e.RequiresCritical,
		Cleansable:        e.Cleansable,
	}
	if e.ApplicationChance != nil {
		cfg.ApplicationChance = *e.ApplicationChance
	}

	var err error
	if cfg.Category, err = parseCategory(e.Category); err != nil {
		return cfg, fmt.Errorf("effect %q: %w", e.ID, err)
	}
	if cfg.StackPolicy, err = parseStackPolicy(e.StackPolicy); err != nil {
		return cfg, fmt.Errorf("effect %q: %w", e.ID, err)
	}
	if cfg.Mode, err = parseMode(e.Mode); err != nil {
		return cfg, fmt.Errorf("effect %q: %w", e.ID, err)
	}

	for i := range e.Payloads {
		p, err := e.Payloads[i].toPayload()
		if err != nil {
			return cfg, fmt.Errorf("effect %q payload %d: %w", e.ID, i, err)
		}
		cfg.Payloads = append(cfg.Payloads, p)
	}
	return cfg, nil
}

func (p *payloadYAML) toPayload() (effect.Payload, error) {
	out := effect.Payload{
		Stat:             effect.StatKind(p.Stat),
		Base:             p.Base,
		ScalesWithStacks: p.ScalesWithStacks,
		StackMultiplier:  p.StackMultiplier,
	}

	var err error
	if out.Kind, err = parsePayloadKind(p.Kind); err != nil {
		return out, err
	}
	if out.Modifier, err = parseModifier(p.Modifier); err != nil {
		return out, err
	}

	if len(p.Curve) > 0 {
		keys := make([]effect.CurveKey, len(p.Curve))
		for i, k := range p.Curve {
			keys[i] = effect.CurveKey{T: k.T, Value: k.Value}
		}
		out.Curve = effect.NewCurve(keys...)
	}
	return out, nil
}

func parseCategory(s string) (effect.Category, error) {
	switch s {
	case "buff":
		return effect.CategoryBuff, nil
	case "debuff":
		return effect.CategoryDebuff, nil
	case "neutral", "":
		return effect.CategoryNeutral, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

func parseStackPolicy(s string) (effect.StackPolicy, error) {
	switch s {
	case "replace", "":
		return effect.StackReplace, nil
	case "stack":
		return effect.StackGrow, nil
	case "refresh":
		return effect.StackRefresh, nil
	case "extend":
		return effect.StackExtend, nil
	case "independent":
		return effect.StackIndependent, nil
	default:
		return 0, fmt.Errorf("unknown stack policy %q", s)
	}
}

func parseMode(s string) (effect.ApplicationMode, error) {
	switch s {
	case "on_hit", "":
		return effect.ModeOnHit, nil
	case "on_use":
		return effect.ModeOnUse, nil
	case "on_damaged":
		return effect.ModeOnDamaged, nil
	case "on_attack":
		return effect.ModeOnAttack, nil
	case "aura":
		return effect.ModeAura, nil
	case "triggered":
		return effect.ModeTriggered, nil
	default:
		return 0, fmt.Errorf("unknown application mode %q", s)
	}
}

func parsePayloadKind(s string) (effect.PayloadKind, error) {
	switch s {
	case "instant", "":
		return effect.PayloadInstant, nil
	case "over_time":
		return effect.PayloadOverTime, nil
	case "on_expire":
		return effect.PayloadOnExpire, nil
	case "on_stack":
		return effect.PayloadOnStack, nil
	default:
		return 0, fmt.Errorf("unknown payload kind %q", s)
	}
}

func parseModifier(s string) (effect.ModifierKind, error) {
	switch s {
	case "flat", "":
		return effect.ModFlat, nil
	case "percent":
		return effect.ModPercent, nil
	default:
		return 0, fmt.Errorf("unknown modifier kind %q", s)
	}
}
