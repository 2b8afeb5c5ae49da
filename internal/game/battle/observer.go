package battle

import (
	"github.com/udisondev/turnbattle/internal/model"
)

// Side identifies which roster an actor belongs to.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// Snapshot is a point-in-time HUD view of a session.
// Reading it never changes state.
type Snapshot struct {
	Player  model.CombatantSnapshot
	Enemies []model.CombatantSnapshot

	// Target is the index of the first alive enemy, or TargetNone.
	Target int

	Outcome      Outcome
	Indicator    string
	InputEnabled bool
}

// ActionReport is the change-set of one resolved action.
type ActionReport struct {
	Side  Side
	Actor string
	Skill string

	// Recipient is the display name of whoever was damaged or healed.
	Recipient string

	Skipped  bool // not enough MP, nothing happened
	Fallback bool // enemy fell back to a plain attack
	Miss     bool
	Crit     bool
	Damage   int32
	Heal     int32
	MPSpent  int32
	Defeated bool

	// After is the HUD state right after the action resolved.
	After Snapshot
}

// Observer receives session events in order. Callbacks run after the
// session has released its lock, so they may read the session.
type Observer interface {
	OnLogLine(line string)
	OnAction(report ActionReport)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	LogLine func(line string)
	Action  func(report ActionReport)
}

func (o ObserverFuncs) OnLogLine(line string) {
	if o.LogLine != nil {
		o.LogLine(line)
	}
}

func (o ObserverFuncs) OnAction(report ActionReport) {
	if o.Action != nil {
		o.Action(report)
	}
}

type event struct {
	line   string
	report *ActionReport
}
