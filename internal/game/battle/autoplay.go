package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/turnbattle/internal/model"
)

// ErrTurnLimit is returned by Autoplay when the battle is still undecided
// after the allowed number of turns.
var ErrTurnLimit = errors.New("turn limit reached")

// Strategy picks the player's next command from the current HUD state.
type Strategy interface {
	Next(snap Snapshot, player *model.Combatant) Command
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(snap Snapshot, player *model.Combatant) Command

func (f StrategyFunc) Next(snap Snapshot, player *model.Combatant) Command {
	return f(snap, player)
}

// AlwaysAttack uses the basic attack on the first alive enemy.
var AlwaysAttack = StrategyFunc(func(Snapshot, *model.Combatant) Command {
	return Attack(TargetNone)
})

// AlwaysRun tries to escape every turn.
var AlwaysRun = StrategyFunc(func(Snapshot, *model.Combatant) Command {
	return Run()
})

// Greedy heals below HealBelow of max HP when a support skill is
// affordable, otherwise uses the affordable damage skill with the highest
// power, falling back to the basic attack.
type Greedy struct {
	// HealBelow is a fraction of max HP in (0,1]. Zero disables healing.
	HealBelow float64
}

func (g Greedy) Next(snap Snapshot, player *model.Combatant) Command {
	var heal, hit *model.Skill
	for _, sk := range player.Skills() {
		if sk == nil || !player.CanAfford(sk.MPCost) {
			continue
		}
		if sk.Type == model.SkillSupport {
			if heal == nil || sk.EffectAmount > heal.EffectAmount {
				heal = sk
			}
			continue
		}
		if hit == nil || sk.Power > hit.Power {
			hit = sk
		}
	}

	hp := float64(snap.Player.CurrentHP) / float64(max(snap.Player.MaxHP, 1))
	if heal != nil && hp < g.HealBelow {
		return UseSkill(heal, snap.Target)
	}
	if hit != nil && hit.Power > 1 {
		return UseSkill(hit, snap.Target)
	}
	return Attack(snap.Target)
}

// Autoplay submits commands chosen by strategy and plays each cycle with
// driver until the outcome is decided or maxTurns cycles have run
// (maxTurns ≤ 0 means no limit).
func Autoplay(ctx context.Context, s *Session, strategy Strategy, driver Driver, maxTurns int) (Outcome, error) {
	for turns := 0; ; turns++ {
		if o := s.Outcome(); o.IsTerminal() {
			return o, nil
		}
		if maxTurns > 0 && turns >= maxTurns {
			return OutcomeUndetermined, fmt.Errorf("after %d turns: %w", turns, ErrTurnLimit)
		}
		if err := ctx.Err(); err != nil {
			return s.Outcome(), err
		}

		cmd := strategy.Next(s.Snapshot(), s.Player())
		if err := s.Submit(cmd); err != nil {
			return s.Outcome(), fmt.Errorf("submitting %s: %w", cmd.Kind, err)
		}
		if err := driver.Play(ctx, s); err != nil {
			return s.Outcome(), err
		}
	}
}
