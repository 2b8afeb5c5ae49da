package battle

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/turnbattle/internal/model"
)

// Manager tracks live battle sessions.
// Thread-safe for concurrent access.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int32]*Session // sessionID → Session
	nextID   atomic.Int32
	running  errgroup.Group
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int32]*Session, 16),
	}
}

// Create builds a session and registers it under a fresh ID.
func (m *Manager) Create(player *model.CharacterStats, enemies []*model.CharacterStats, opts ...Option) (*Session, error) {
	s, err := NewSession(player, enemies, opts...)
	if err != nil {
		return nil, err
	}

	s.id = m.nextID.Add(1)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	slog.Debug("battle registered",
		"sessionID", s.id,
		"player", s.player.Name(),
		"enemies", len(s.enemies))

	return s, nil
}

// Get returns a session by ID, or nil.
func (m *Manager) Get(id int32) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove drops a session from the registry.
func (m *Manager) Remove(id int32) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	slog.Debug("battle removed",
		"sessionID", id,
		"outcome", s.Outcome().String())
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SetLimit bounds how many sessions started with Start play at once.
// A negative n means no limit. Must not be called while sessions run.
func (m *Manager) SetLimit(n int) {
	m.running.SetLimit(n)
}

// Start plays s to the end in its own goroutine and removes it from the
// registry afterwards. It blocks while the SetLimit bound is reached.
//
// onEnd, if set, receives the final outcome and the error that stopped
// play (nil for a decided battle). An error returned by onEnd is reported
// by Wait.
func (m *Manager) Start(ctx context.Context, s *Session, strategy Strategy, driver Driver, maxTurns int, onEnd func(s *Session, o Outcome, err error) error) {
	m.running.Go(func() error {
		defer m.Remove(s.id)

		o, err := Autoplay(ctx, s, strategy, driver, maxTurns)
		if err != nil {
			slog.Debug("battle stopped",
				"sessionID", s.id,
				"error", err)
		}
		if onEnd == nil {
			return nil
		}
		return onEnd(s, o, err)
	})
}

// Wait blocks until every session started with Start has finished and
// returns the first error returned by an onEnd callback.
func (m *Manager) Wait() error {
	return m.running.Wait()
}
