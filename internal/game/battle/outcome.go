// Package battle implements the turn-based battle session: roster
// construction, the turn-cycle state machine and its pacing.
// Lifecycle: NewSession → Submit(command) → Advance until input is
// re-enabled → ... → terminal Outcome.
package battle

import (
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/turnbattle/internal/model"
)

// Outcome is the terminal state of a battle.
type Outcome int

const (
	OutcomeUndetermined  Outcome = iota // battle continues
	OutcomePlayerVictory                // every enemy defeated
	OutcomePlayerDefeat                 // player HP reached 0
	OutcomePlayerEscaped                // player ran away
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUndetermined:
		return "undetermined"
	case OutcomePlayerVictory:
		return "victory"
	case OutcomePlayerDefeat:
		return "defeat"
	case OutcomePlayerEscaped:
		return "escaped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// IsTerminal reports whether the battle is over.
func (o Outcome) IsTerminal() bool { return o != OutcomeUndetermined }

var (
	// ErrMissingStats is returned when the player or an enemy has no stats.
	// The session refuses to start rather than invent placeholder stats.
	ErrMissingStats = errors.New("missing character stats")

	// ErrInputDisabled is returned for a command submitted while a turn cycle plays.
	ErrInputDisabled = errors.New("input disabled: turn cycle in progress")

	// ErrBattleOver is returned for a command submitted after the outcome is decided.
	ErrBattleOver = errors.New("battle is over")
)

// TargetNone selects the first alive enemy.
const TargetNone = -1

// CommandKind is the player's choice for a turn.
type CommandKind int

const (
	CommandAttack CommandKind = iota // basic physical attack
	CommandSkill                     // use a skill
	CommandRun                       // try to escape
)

func (k CommandKind) String() string {
	switch k {
	case CommandAttack:
		return "attack"
	case CommandSkill:
		return "skill"
	case CommandRun:
		return "run"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one player input.
type Command struct {
	Kind   CommandKind
	Skill  *model.Skill // CommandSkill only; nil falls back to the basic attack
	Target int         // enemy index, or TargetNone
}

// Attack returns a basic attack command.
func Attack(target int) Command { return Command{Kind: CommandAttack, Target: target} }

// UseSkill returns a skill command.
func UseSkill(skill *model.Skill, target int) Command {
	return Command{Kind: CommandSkill, Skill: skill, Target: target}
}

// Run returns an escape command.
func Run() Command { return Command{Kind: CommandRun, Target: TargetNone} }

func (c Command) skill() *model.Skill {
	if c.Kind == CommandSkill && c.Skill != nil {
		return c.Skill
	}
	return model.BasicAttack()
}

// Timing holds the presentation delays a turn cycle waits on.
type Timing struct {
	AttackMove     time.Duration
	DamageFlash    time.Duration
	DamageFlashes  int
	TurnPause      time.Duration
	IndicatorClear time.Duration
}

// DefaultTiming mirrors the stock battle animations.
func DefaultTiming() Timing {
	return Timing{
		AttackMove:     350 * time.Millisecond,
		DamageFlash:    120 * time.Millisecond,
		DamageFlashes:  2,
		TurnPause:      250 * time.Millisecond,
		IndicatorClear: 250 * time.Millisecond,
	}
}

// ActionDelay is the pause after one action: move + flashes + pause.
func (t Timing) ActionDelay() time.Duration {
	return t.AttackMove + t.DamageFlash*time.Duration(t.DamageFlashes) + t.TurnPause
}

// Turn indicator texts.
const (
	IndicatorPlayerTurn = "Player Turn"
	IndicatorEnemyTurn  = "Enemy Turn"
)
