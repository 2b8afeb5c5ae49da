package battle

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/turnbattle/internal/game/combat"
	"github.com/udisondev/turnbattle/internal/model"
)

// DefaultPlayerName names a player whose stats carry neither name nor id.
const DefaultPlayerName = "Player"

// DefaultEscapeFailPercent is the chance an escape fails when the player is not faster.
const DefaultEscapeFailPercent = 50

// Option configures a Session.
type Option func(*Session)

// WithRoller injects the random source. Defaults to a roller seeded from the clock.
func WithRoller(r combat.Roller) Option {
	return func(s *Session) { s.roller = r }
}

// WithTiming sets the pacing delays.
func WithTiming(t Timing) Option {
	return func(s *Session) { s.timing = t }
}

// WithEscapeFailPercent sets the failure chance of a contested escape (0..100).
func WithEscapeFailPercent(p int) Option {
	return func(s *Session) { s.escapeFailPercent = min(max(p, 0), 100) }
}

// WithObserver subscribes o to log lines and action reports.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session owns one battle: the player, the enemy roster in spawn order,
// the append-only log and the outcome.
//
// All HP/MP mutation happens inside Submit or Advance, at the instant an
// action resolves. Pending delays only pace the next step.
//
// Thread-safe: public methods serialize on an internal mutex.
type Session struct {
	mu sync.Mutex

	id      int32
	player  *model.Combatant
	enemies []*model.Combatant

	log     []string
	outcome Outcome

	roller            combat.Roller
	timing            Timing
	escapeFailPercent int
	observers         []Observer
	logger            *slog.Logger

	// turn cycle state
	indicator string
	inCycle   bool
	pending   time.Duration
	steps     []step
	turn      int

	events []event
}

// NewSession builds the combatants for a battle.
//
// A nil player or enemy is a configuration fault: ErrMissingStats is
// returned and no session is created. Enemy display names get letter
// suffixes when base names repeat.
func NewSession(player *model.CharacterStats, enemies []*model.CharacterStats, opts ...Option) (*Session, error) {
	if player == nil {
		return nil, fmt.Errorf("player: %w", ErrMissingStats)
	}
	for i, e := range enemies {
		if e == nil {
			return nil, fmt.Errorf("enemy %d: %w", i, ErrMissingStats)
		}
	}

	s := &Session{
		timing:            DefaultTiming(),
		escapeFailPercent: DefaultEscapeFailPercent,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.roller == nil {
		s.roller = combat.NewRoller(uint64(time.Now().UnixNano()))
	}

	playerName := DefaultPlayerName
	if player.Name != "" || player.ID != "" {
		playerName = player.DisplayName()
	}
	pc, err := model.NewCombatant(player, playerName)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}
	s.player = pc

	baseNames := make([]string, len(enemies))
	for i, e := range enemies {
		baseNames[i] = e.DisplayName()
	}
	names := model.SuffixDuplicateNames(baseNames)

	s.enemies = make([]*model.Combatant, 0, len(enemies))
	for i, e := range enemies {
		c, err := model.NewCombatant(e, names[i])
		if err != nil {
			return nil, fmt.Errorf("enemy %d: %w", i, err)
		}
		s.enemies = append(s.enemies, c)
	}

	if len(s.enemies) == 0 {
		s.addLog("No enemies assigned to spawn.")
	}
	for _, e := range s.enemies {
		s.addLog(fmt.Sprintf("Spawned enemy: %s - HP: %d", e.Name(), e.CurrentHP()))
	}

	s.logger.Debug("battle session created",
		"player", s.player.Name(),
		"enemies", len(s.enemies))

	// spawn lines are delivered on the first Submit
	return s, nil
}

// ID returns the identifier assigned by a Manager (0 when unmanaged).
func (s *Session) ID() int32 { return s.id }

// Player returns the player combatant.
func (s *Session) Player() *model.Combatant { return s.player }

// Enemies returns the enemy roster in spawn order. Defeated enemies stay in place.
func (s *Session) Enemies() []*model.Combatant { return slices.Clone(s.enemies) }

// Outcome returns the current outcome.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Log returns a copy of the battle log.
func (s *Session) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.log)
}

// Indicator returns the turn indicator text ("" between cycles).
func (s *Session) Indicator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indicator
}

// InputEnabled reports whether a command may be submitted now.
func (s *Session) InputEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputEnabled()
}

// Busy reports whether a turn cycle is still playing.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inCycle
}

// PendingDelay returns how long the current cycle waits before its next step.
func (s *Session) PendingDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inCycle {
		return 0
	}
	return s.pending
}

// Turn returns the number of turn cycles started.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Snapshot returns the HUD state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) inputEnabled() bool {
	return !s.inCycle && !s.outcome.IsTerminal()
}

func (s *Session) snapshot() Snapshot {
	enemies := make([]model.CombatantSnapshot, len(s.enemies))
	for i, e := range s.enemies {
		enemies[i] = e.Snapshot()
	}
	return Snapshot{
		Player:       s.player.Snapshot(),
		Enemies:      enemies,
		Target:       s.firstAliveEnemy(),
		Outcome:      s.outcome,
		Indicator:    s.indicator,
		InputEnabled: s.inputEnabled(),
	}
}

func (s *Session) addLog(line string) {
	s.log = append(s.log, line)
	s.events = append(s.events, event{line: line})
}

func (s *Session) report(r ActionReport) {
	r.After = s.snapshot()
	s.events = append(s.events, event{report: &r})
}

// unlock releases the session and delivers queued events to observers.
func (s *Session) unlock() {
	events := s.events
	s.events = nil
	s.mu.Unlock()

	for _, ev := range events {
		for _, o := range s.observers {
			if ev.report != nil {
				o.OnAction(*ev.report)
			} else {
				o.OnLogLine(ev.line)
			}
		}
	}
}

func (s *Session) firstAliveEnemy() int {
	for i, e := range s.enemies {
		if e.IsAlive() {
			return i
		}
	}
	return TargetNone
}

func (s *Session) anyEnemyAlive() bool {
	return s.firstAliveEnemy() != TargetNone
}

// resolveTarget keeps a valid alive index, otherwise falls back to the first alive enemy.
func (s *Session) resolveTarget(idx int) int {
	if idx >= 0 && idx < len(s.enemies) && s.enemies[idx].IsAlive() {
		return idx
	}
	return s.firstAliveEnemy()
}

// end fixes the outcome. The first terminal outcome wins.
func (s *Session) end(o Outcome) {
	if s.outcome.IsTerminal() {
		return
	}
	s.outcome = o
	switch o {
	case OutcomePlayerVictory:
		s.addLog("Victory!")
	default:
		s.addLog("Battle ended.")
	}
	s.logger.Debug("battle finished",
		"session", s.id,
		"outcome", o.String(),
		"turns", s.turn,
		"player_hp", s.player.CurrentHP())
}
