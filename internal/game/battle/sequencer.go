package battle

import (
	"fmt"
	"math"
	"time"

	"github.com/udisondev/turnbattle/internal/game/combat"
	"github.com/udisondev/turnbattle/internal/model"
)

// step is one unit of a turn cycle. It mutates the session and returns
// how long the cycle waits before the next step.
type step func(s *Session) time.Duration

// Submit starts a turn cycle for cmd.
//
// The first step resolves before Submit returns; the rest run as the
// caller advances time with Advance. Returns ErrBattleOver once the
// outcome is decided and ErrInputDisabled while a cycle is playing.
func (s *Session) Submit(cmd Command) error {
	s.mu.Lock()
	defer s.unlock()

	if s.outcome.IsTerminal() {
		return ErrBattleOver
	}
	if s.inCycle {
		return ErrInputDisabled
	}

	s.turn++
	s.inCycle = true
	s.pending = 0

	switch cmd.Kind {
	case CommandRun:
		s.steps = []step{escapeStep, trailingPause}
	default:
		s.steps = s.planTurn(cmd.skill(), cmd.Target)
	}

	s.logger.Debug("turn cycle started",
		"session", s.id,
		"turn", s.turn,
		"command", cmd.Kind.String())

	s.drain(0)
	return nil
}

// Advance moves the cycle clock forward by elapsed, running every step
// whose delay has passed. Overflow carries into the next delay.
func (s *Session) Advance(elapsed time.Duration) {
	s.mu.Lock()
	defer s.unlock()
	s.drain(max(elapsed, 0))
}

// FastForward runs the current cycle to completion without waiting.
func (s *Session) FastForward() {
	s.mu.Lock()
	defer s.unlock()
	for s.inCycle {
		s.drain(s.pending)
	}
}

func (s *Session) drain(elapsed time.Duration) {
	for s.inCycle {
		if s.pending > elapsed {
			s.pending -= elapsed
			return
		}
		elapsed -= s.pending
		s.pending = 0

		if len(s.steps) == 0 {
			s.finishCycle()
			return
		}
		next := s.steps[0]
		s.steps = s.steps[1:]
		s.pending = next(s)
	}
}

func (s *Session) finishCycle() {
	s.inCycle = false
	s.steps = nil
	if s.outcome.IsTerminal() {
		return
	}
	s.indicator = ""
}

// halt drops the remaining steps of the cycle.
func (s *Session) halt() {
	s.steps = nil
}

// planTurn validates the target and orders the two actors by initiative.
func (s *Session) planTurn(skill *model.Skill, target int) []step {
	idx := s.resolveTarget(target)
	if idx == TargetNone {
		return []step{func(s *Session) time.Duration {
			s.addLog("No enemies to target.")
			s.end(OutcomePlayerVictory)
			return 0
		}}
	}

	playerSpeed := s.player.Speed() + int32(math.RoundToEven(skill.SpeedModifier))
	enemySpeed := s.enemies[idx].Speed()

	player := func(s *Session) time.Duration {
		s.indicator = IndicatorPlayerTurn
		s.playerAction(skill, target)
		return s.timing.ActionDelay()
	}
	enemy := func(s *Session) time.Duration {
		s.indicator = IndicatorEnemyTurn
		s.enemyTurn()
		return s.timing.ActionDelay()
	}

	if playerSpeed >= enemySpeed {
		return []step{player, gate(enemy), trailingPause}
	}
	return []step{enemy, gate(player), trailingPause}
}

// gate skips st when the battle is over or no enemy is left to fight.
// A defeated player always ends the battle, so the outcome check covers
// the player's side.
func gate(st step) step {
	return func(s *Session) time.Duration {
		if s.outcome.IsTerminal() || !s.anyEnemyAlive() {
			return 0
		}
		return st(s)
	}
}

func trailingPause(s *Session) time.Duration {
	return s.timing.IndicatorClear
}

// playerAction resolves the player's command against target, re-validated
// at the moment the player acts.
func (s *Session) playerAction(skill *model.Skill, target int) {
	player := s.player
	report := ActionReport{Side: SidePlayer, Actor: player.Name(), Skill: skill.Name}

	if !player.CanAfford(skill.MPCost) {
		s.addLog(fmt.Sprintf("Not enough MP for %s!", skill.Name))
		report.Skipped = true
		s.report(report)
		return
	}

	idx := s.resolveTarget(target)
	if idx == TargetNone {
		s.addLog("No valid target.")
		report.Skipped = true
		s.report(report)
		s.end(OutcomePlayerVictory)
		s.halt()
		return
	}
	enemy := s.enemies[idx]

	res := combat.Resolve(s.roller, player, enemy, skill)
	s.narrate(SidePlayer, res)
	s.report(reportFrom(SidePlayer, res, false))
	s.checkTermination()
}

// enemyTurn lets the first alive enemy act against the player.
func (s *Session) enemyTurn() {
	idx := s.firstAliveEnemy()
	if idx == TargetNone {
		return
	}
	enemy := s.enemies[idx]

	skills := enemy.Skills()
	if len(skills) == 0 {
		s.enemyFallback(enemy)
		return
	}

	skill := skills[s.roller.IntN(len(skills))]
	if skill == nil {
		s.enemyFallback(enemy)
		return
	}
	if !enemy.CanAfford(skill.MPCost) {
		s.addLog(fmt.Sprintf("%s tried to use %s but lacks MP!", enemy.Name(), skill.Name))
		s.enemyFallback(enemy)
		return
	}

	res := combat.Resolve(s.roller, enemy, s.player, skill)
	s.narrate(SideEnemy, res)
	s.report(reportFrom(SideEnemy, res, false))
	s.checkTermination()
}

// enemyFallback is the plain attack an enemy uses with no usable skill.
func (s *Session) enemyFallback(enemy *model.Combatant) {
	res := combat.Resolve(s.roller, enemy, s.player, model.FallbackAttack())
	s.addLog(fmt.Sprintf("%s attacks for %d damage!", enemy.Name(), res.Damage))
	if res.Defeated {
		s.addLog(fmt.Sprintf("%s defeated", res.Recipient.Name()))
	}
	s.report(reportFrom(SideEnemy, res, true))
	s.checkTermination()
}

func escapeStep(s *Session) time.Duration {
	s.addLog(fmt.Sprintf("%s tries to escape...", s.player.Name()))

	idx := s.firstAliveEnemy()
	if idx == TargetNone {
		s.addLog("No enemies to escape from.")
		s.end(OutcomePlayerVictory)
		s.halt()
		return 0
	}

	if s.player.Speed() > s.enemies[idx].Speed() || s.roller.IntN(100) >= s.escapeFailPercent {
		s.addLog("Escaped successfully!")
		s.end(OutcomePlayerEscaped)
		s.halt()
		return 0
	}

	s.addLog("Escape failed!")
	s.steps = append([]step{func(s *Session) time.Duration {
		s.indicator = IndicatorEnemyTurn
		s.enemyTurn()
		return s.timing.ActionDelay()
	}}, s.steps...)
	return 0
}

// checkTermination ends the battle after an action when a side is wiped out.
func (s *Session) checkTermination() {
	switch {
	case !s.player.IsAlive():
		s.end(OutcomePlayerDefeat)
	case !s.anyEnemyAlive():
		s.end(OutcomePlayerVictory)
	default:
		return
	}
	s.halt()
}

// narrate appends the log lines for one resolved action.
func (s *Session) narrate(side Side, res combat.Result) {
	actor, skill := res.Actor.Name(), res.Skill.Name

	if res.Miss {
		s.addLog(fmt.Sprintf("%s's %s missed!", actor, skill))
		return
	}

	if res.Crit {
		s.addLog(critNotice(side, res.Skill.Type))
	}

	switch res.Skill.Type {
	case model.SkillSupport:
		if side == SidePlayer {
			s.addLog(fmt.Sprintf("%s uses %s and heals %d HP!", actor, skill, res.Heal))
		} else {
			s.addLog(fmt.Sprintf("%s heals for %d HP!", actor, res.Heal))
		}
	case model.SkillMagical:
		if side == SidePlayer {
			s.addLog(fmt.Sprintf("%s casts %s on %s for %d magical damage!", actor, skill, res.Recipient.Name(), res.Damage))
		} else {
			s.addLog(fmt.Sprintf("%s casts %s for %d magical damage!", actor, skill, res.Damage))
		}
	default:
		if side == SidePlayer {
			s.addLog(fmt.Sprintf("%s uses %s on %s for %d physical damage!", actor, skill, res.Recipient.Name(), res.Damage))
		} else {
			s.addLog(fmt.Sprintf("%s uses %s for %d physical damage!", actor, skill, res.Damage))
		}
	}

	if res.Defeated {
		s.addLog(fmt.Sprintf("%s defeated", res.Recipient.Name()))
	}
}

func critNotice(side Side, t model.SkillType) string {
	switch {
	case side == SidePlayer && t == model.SkillMagical:
		return "Magic critical hit!"
	case side == SidePlayer:
		return "Critical hit!"
	case t == model.SkillMagical:
		return "Enemy magic critical hit!"
	default:
		return "Enemy critical hit!"
	}
}

func reportFrom(side Side, res combat.Result, fallback bool) ActionReport {
	return ActionReport{
		Side:      side,
		Actor:     res.Actor.Name(),
		Skill:     res.Skill.Name,
		Recipient: res.Recipient.Name(),
		Fallback:  fallback,
		Miss:      res.Miss,
		Crit:      res.Crit,
		Damage:    res.HPLost,
		Heal:      res.HPGain,
		MPSpent:   res.MPSpent,
		Defeated:  res.Defeated,
	}
}
