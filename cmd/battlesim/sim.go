package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/turnbattle/internal/config"
	"github.com/udisondev/turnbattle/internal/data"
	"github.com/udisondev/turnbattle/internal/game/battle"
	"github.com/udisondev/turnbattle/internal/game/combat"
	"github.com/udisondev/turnbattle/internal/model"
)

// simulation plays battles of one player against one encounter.
type simulation struct {
	cfg       config.Battle
	player    *model.CharacterStats
	encounter string
	enemies   func() ([]*model.CharacterStats, error)
	strategy  battle.Strategy
	manager   *battle.Manager
}

func newSimulation(cfg config.Battle, catalog *data.Catalog, opts options) (*simulation, error) {
	player, err := catalog.Character(opts.player)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	encounter := opts.encounter
	if encounter == "" {
		ids := catalog.EncounterIDs()
		if len(ids) == 0 {
			return nil, fmt.Errorf("catalog has no encounters: %w", data.ErrUnknownEncounter)
		}
		encounter = ids[0]
	}
	if _, err := catalog.Encounter(encounter); err != nil {
		return nil, err
	}

	strategy, err := parseStrategy(opts.strategy)
	if err != nil {
		return nil, err
	}

	return &simulation{
		cfg:       cfg,
		player:    player,
		encounter: encounter,
		enemies:   func() ([]*model.CharacterStats, error) { return catalog.EncounterEnemies(encounter) },
		strategy:  strategy,
		manager:   battle.NewManager(),
	}, nil
}

func parseStrategy(name string) (battle.Strategy, error) {
	switch name {
	case "attack":
		return battle.AlwaysAttack, nil
	case "greedy":
		return battle.Greedy{HealBelow: 0.4}, nil
	case "run":
		return battle.AlwaysRun, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func timing(t config.Timing) battle.Timing {
	return battle.Timing{
		AttackMove:     t.AttackMove,
		DamageFlash:    t.DamageFlash,
		DamageFlashes:  t.DamageFlashes,
		TurnPause:      t.TurnPause,
		IndicatorClear: t.IndicatorClear,
	}
}

// create registers a session seeded with seed. logger tags the session's
// own log records.
func (sim *simulation) create(seed uint64, logger *slog.Logger, extra ...battle.Option) (*battle.Session, error) {
	enemies, err := sim.enemies()
	if err != nil {
		return nil, err
	}
	opts := append([]battle.Option{
		battle.WithLogger(logger),
		battle.WithRoller(combat.NewRoller(seed)),
		battle.WithTiming(timing(sim.cfg.Timing)),
		battle.WithEscapeFailPercent(sim.cfg.EscapeFailPercent),
	}, extra...)
	return sim.manager.Create(sim.player, enemies, opts...)
}

func (sim *simulation) driver() battle.Driver {
	if sim.cfg.RealTime {
		return &battle.Pacer{Scale: sim.cfg.TimeScale}
	}
	return battle.Instant{}
}

// single plays one battle and prints its log as it happens.
func (sim *simulation) single(ctx context.Context, out io.Writer) error {
	printer := battle.ObserverFuncs{
		LogLine: func(line string) { fmt.Fprintln(out, line) },
	}
	s, err := sim.create(sim.cfg.Seed, slog.With("seed", sim.cfg.Seed), battle.WithObserver(printer))
	if err != nil {
		return err
	}
	defer sim.manager.Remove(s.ID())

	o, err := battle.Autoplay(ctx, s, sim.strategy, sim.driver(), sim.cfg.MaxTurns)
	if err != nil && !errors.Is(err, battle.ErrTurnLimit) {
		return err
	}

	p := s.Player()
	fmt.Fprintf(out, "outcome: %s after %d turns (%s HP %d/%d, MP %d/%d)\n",
		o, s.Turn(), p.Name(), p.CurrentHP(), p.MaxHP(), p.CurrentMP(), p.MaxMP())
	return nil
}

// summary aggregates the outcomes of a batch.
type summary struct {
	Battles    int
	Outcomes   map[battle.Outcome]int
	TurnLimits int
	Turns      int
}

func (s summary) AvgTurns() float64 {
	if s.Battles == 0 {
		return 0
	}
	return float64(s.Turns) / float64(s.Battles)
}

func (s summary) write(out io.Writer, encounter string) {
	fmt.Fprintf(out, "encounter %s: %d battles, avg %.1f turns\n", encounter, s.Battles, s.AvgTurns())
	for _, o := range []battle.Outcome{battle.OutcomePlayerVictory, battle.OutcomePlayerDefeat, battle.OutcomePlayerEscaped} {
		fmt.Fprintf(out, "  %-10s %d\n", o, s.Outcomes[o])
	}
	if s.TurnLimits > 0 {
		fmt.Fprintf(out, "  %-10s %d\n", "turn limit", s.TurnLimits)
	}
}

// batch plays n battles through the manager, at most cfg.Workers at a
// time, seeding battle i with seed+i, and prints a summary.
func (sim *simulation) batch(ctx context.Context, n int, out io.Writer) error {
	sum, err := sim.runBatch(ctx, n)
	if err != nil {
		return err
	}
	sum.write(out, sim.encounter)
	return nil
}

func (sim *simulation) runBatch(ctx context.Context, n int) (summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu  sync.Mutex
		sum = summary{Outcomes: make(map[battle.Outcome]int, 3)}
	)
	start := time.Now()
	driver := sim.driver()
	sim.manager.SetLimit(sim.cfg.Workers)

	var createErr error
	for i := range n {
		if ctx.Err() != nil {
			break
		}
		seed := sim.cfg.Seed + uint64(i)
		s, err := sim.create(seed, slog.With("battle", i, "seed", seed))
		if err != nil {
			createErr = fmt.Errorf("battle %d: %w", i, err)
			cancel()
			break
		}

		sim.manager.Start(ctx, s, sim.strategy, driver, sim.cfg.MaxTurns, func(s *battle.Session, o battle.Outcome, err error) error {
			limited := errors.Is(err, battle.ErrTurnLimit)
			if err != nil && !limited {
				cancel()
				return fmt.Errorf("battle %d (seed %d): %w", i, seed, err)
			}

			mu.Lock()
			defer mu.Unlock()
			sum.Battles++
			sum.Turns += s.Turn()
			if limited {
				sum.TurnLimits++
			} else {
				sum.Outcomes[o]++
			}
			return nil
		})
	}
	if err := errors.Join(createErr, sim.manager.Wait()); err != nil {
		return summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return summary{}, err
	}

	slog.Info("batch finished",
		"encounter", sim.encounter,
		"battles", sum.Battles,
		"duration", time.Since(start))
	return sum, nil
}
