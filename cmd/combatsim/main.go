package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veilmark/riftgate/internal/config"
	"github.com/veilmark/riftgate/internal/data"
	"github.com/veilmark/riftgate/internal/db"
	"github.com/veilmark/riftgate/internal/game/combat"
	"github.com/veilmark/riftgate/internal/game/effect"
	"github.com/veilmark/riftgate/internal/model"
)

const ConfigPath = "config/combatsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("RIFTGATE_SIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("combat simulator starting",
		"log_level", cfg.LogLevel,
		"tick_ms", cfg.TickMs,
		"duration_s", cfg.DurationSeconds)

	// Load effect definition catalog
	if err := data.LoadEffects(); err != nil {
		return fmt.Errorf("loading effect definitions: %w", err)
	}
	if cfg.EffectsFile != "" {
		if err := data.LoadEffectsFile(cfg.EffectsFile); err != nil {
			return fmt.Errorf("loading effects file: %w", err)
		}
	}

	// Fighters and their effect registries
	hero := model.NewCharacter(1, "hero")
	foe := model.NewCharacter(2, "foe")
	heroFx := effect.NewManager(hero.ID(), cfg.MaxEffects, hero)
	foeFx := effect.NewManager(foe.ID(), cfg.MaxEffects, foe)
	heroFx.AddListener(&logListener{who: hero.Name()})
	foeFx.AddListener(&logListener{who: foe.Name()})

	// Optional persistence: restore the hero's saved effects, flush on
	// the way out.
	var effectRepo *db.EffectRepository
	if cfg.Database.Enabled() {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")

		effectRepo = db.NewEffectRepository(database.Pool())
		snaps, err := effectRepo.LoadByCharacterID(ctx, int64(hero.ID()))
		if err != nil {
			return fmt.Errorf("loading saved effects: %w", err)
		}
		if len(snaps) > 0 {
			heroFx.Restore(snaps, data.ResolveEffect)
			slog.Info("restored saved effects", "count", len(snaps))
		}
	}

	resolver := combat.NewResolver(nil)
	heroWeapon := combat.Weapon{
		Name:       "venom-edge",
		Damage:     14,
		CritChance: 0.2,
		Procs: []combat.WeaponProc{
			{Definition: data.GetEffectDefinition("poison"), Multiplier: 1.5},
			{Definition: data.GetEffectDefinition("stun"), Multiplier: 1},
		},
	}
	foeWeapon := combat.Weapon{
		Name:       "jagged-maul",
		Damage:     10,
		CritChance: 0.1,
		Procs: []combat.WeaponProc{
			{Definition: data.GetEffectDefinition("bleed"), Multiplier: 1},
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	simDone := make(chan struct{})

	g.Go(func() error {
		defer close(simDone)
		return simulate(gctx, cfg, resolver,
			fighter{hero, heroFx, heroWeapon},
			fighter{foe, foeFx, foeWeapon})
	})

	// Periodic effect flush while the fight runs
	if effectRepo != nil {
		g.Go(func() error {
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-simDone:
					return nil
				case <-ticker.C:
					if err := effectRepo.Save(gctx, int64(hero.ID()), heroFx.Snapshot()); err != nil {
						slog.Warn("periodic effect flush failed", "error", err)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	// Final flush so a later run resumes the hero's effects
	if effectRepo != nil {
		if err := effectRepo.Save(context.Background(), int64(hero.ID()), heroFx.Snapshot()); err != nil {
			return fmt.Errorf("saving effects: %w", err)
		}
		slog.Info("effects saved", "count", len(heroFx.Snapshot()))
	}

	slog.Info("fight over",
		"hero_health", hero.StatValue(hero.ID(), effect.StatHealth),
		"hero_effects", heroFx.Count(),
		"foe_health", foe.StatValue(foe.ID(), effect.StatHealth),
		"foe_effects", foeFx.Count())

	return nil
}

type fighter struct {
	char   *model.Character
	fx     *effect.Manager
	weapon combat.Weapon
}

// simulate runs the fixed-step duel until the configured duration,
// a death, or cancellation.
func simulate(ctx context.Context, cfg config.Simulator, resolver *combat.Resolver, a, b fighter) error {
	step := time.Duration(cfg.TickMs) * time.Millisecond
	dt := step.Seconds()
	maxSteps := int(cfg.DurationSeconds / dt)

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for n := 1; n <= maxSteps; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		a.fx.Update(dt)
		b.fx.Update(dt)

		if cfg.SwingEverySteps > 0 && n%cfg.SwingEverySteps == 0 {
			out := resolver.Strike(a.char, a.fx, b.char, b.fx, a.weapon)
			logStrike(a.char.Name(), b.char.Name(), out)
			if out.Killed {
				return nil
			}

			out = resolver.Strike(b.char, b.fx, a.char, a.fx, b.weapon)
			logStrike(b.char.Name(), a.char.Name(), out)
			if out.Killed {
				return nil
			}
		}
	}
	return nil
}

func logStrike(attacker, target string, out combat.HitOutcome) {
	if !out.Landed {
		return
	}
	applied := 0
	for _, p := range out.Procs {
		if p.Applied {
			applied++
		}
	}
	slog.Debug("strike",
		"attacker", attacker,
		"target", target,
		"damage", out.Damage,
		"critical", out.Critical,
		"procs", applied)
}

// logListener surfaces effect lifecycle events in the log. Stands in
// for the visual/audio collaborators a real client would register.
type logListener struct {
	who string
}

func (l *logListener) OnEffectAdded(in *effect.Instance) {
	slog.Info("effect gained",
		"who", l.who,
		"effect", in.Definition().ID(),
		"category", in.Definition().Category().String())
}

func (l *logListener) OnEffectRemoved(in *effect.Instance, reason effect.RemoveReason) {
	slog.Info("effect lost",
		"who", l.who,
		"effect", in.Definition().ID(),
		"reason", reason.String())
}

func (l *logListener) OnStackChanged(in *effect.Instance) {
	slog.Info("effect stacked",
		"who", l.who,
		"effect", in.Definition().ID(),
		"stacks", in.Stacks())
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
