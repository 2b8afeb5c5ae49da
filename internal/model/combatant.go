package model

import (
	"errors"
	"sync"
)

var (
	// ErrNilStats is returned when a stats reference is missing.
	ErrNilStats = errors.New("nil character stats")

	// ErrInvalidScale is returned for a non-positive or non-finite scale factor.
	ErrInvalidScale = errors.New("invalid stats scale factor")
)

// Combatant is the runtime state of one participant of a battle.
// It owns its current HP/MP; the stats snapshot is read-only.
type Combatant struct {
	mu sync.RWMutex

	stats       CharacterStats
	displayName string

	currentHP int32
	currentMP int32
}

// NewCombatant creates a combatant at full HP/MP from a snapshot of stats.
// MaxHP and MaxMP are clamped to at least 1.
func NewCombatant(stats *CharacterStats, displayName string) (*Combatant, error) {
	if stats == nil {
		return nil, ErrNilStats
	}

	snapshot := *stats.Clone()
	snapshot.MaxHP = max(snapshot.MaxHP, 1)
	snapshot.MaxMP = max(snapshot.MaxMP, 1)

	if displayName == "" {
		displayName = snapshot.DisplayName()
	}

	return &Combatant{
		stats:       snapshot,
		displayName: displayName,
		currentHP:   snapshot.MaxHP,
		currentMP:   snapshot.MaxMP,
	}, nil
}

// Stats returns the stats snapshot. Callers must not modify the skills it references.
func (c *Combatant) Stats() *CharacterStats { return &c.stats }

// Name returns the display name (with duplicate suffix for enemies).
func (c *Combatant) Name() string { return c.displayName }

// Speed returns base speed.
func (c *Combatant) Speed() int32 { return c.stats.Speed }

// Skills returns the available skills.
func (c *Combatant) Skills() []*Skill { return c.stats.Skills }

// CurrentHP returns current HP.
func (c *Combatant) CurrentHP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentHP
}

// MaxHP returns maximum HP.
func (c *Combatant) MaxHP() int32 { return c.stats.MaxHP }

// CurrentMP returns current MP.
func (c *Combatant) CurrentMP() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentMP
}

// MaxMP returns maximum MP.
func (c *Combatant) MaxMP() int32 { return c.stats.MaxMP }

// IsAlive reports HP > 0.
func (c *Combatant) IsAlive() bool {
	return c.CurrentHP() > 0
}

// SetCurrentHP sets HP with clamp 0..maxHP.
func (c *Combatant) SetCurrentHP(hp int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentHP = clamp(hp, c.stats.MaxHP)
}

// SetCurrentMP sets MP with clamp 0..maxMP.
func (c *Combatant) SetCurrentMP(mp int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentMP = clamp(mp, c.stats.MaxMP)
}

// TakeDamage reduces HP by damage (minimum 0) and reports whether this hit
// took the combatant from alive to defeated. A defeated combatant is not
// damaged again: the call is a no-op returning (0, false).
func (c *Combatant) TakeDamage(damage int32) (applied int32, defeated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentHP <= 0 || damage <= 0 {
		return 0, false
	}
	applied = min(damage, c.currentHP)
	c.currentHP -= applied
	return applied, c.currentHP == 0
}

// Heal restores HP up to maxHP and returns the amount actually restored.
// Defeated combatants cannot be healed.
func (c *Combatant) Heal(amount int32) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentHP <= 0 || amount <= 0 {
		return 0
	}
	before := c.currentHP
	c.currentHP = clamp(c.currentHP+amount, c.stats.MaxHP)
	return c.currentHP - before
}

// CanAfford reports whether current MP covers cost.
func (c *Combatant) CanAfford(cost int32) bool {
	return c.CurrentMP() >= cost
}

// SpendMP deducts cost when affordable. Returns false (and changes nothing)
// when MP is insufficient.
func (c *Combatant) SpendMP(cost int32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cost <= 0 {
		return true
	}
	if c.currentMP < cost {
		return false
	}
	c.currentMP -= cost
	return true
}

// Snapshot returns a point-in-time copy of the combatant's HUD values.
func (c *Combatant) Snapshot() CombatantSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CombatantSnapshot{
		Name:      c.displayName,
		CurrentHP: c.currentHP,
		MaxHP:     c.stats.MaxHP,
		CurrentMP: c.currentMP,
		MaxMP:     c.stats.MaxMP,
		Alive:     c.currentHP > 0,
	}
}

// CombatantSnapshot is an immutable HUD view of a combatant.
type CombatantSnapshot struct {
	Name      string
	CurrentHP int32
	MaxHP     int32
	CurrentMP int32
	MaxMP     int32
	Alive     bool
}

func clamp(v, hi int32) int32 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
