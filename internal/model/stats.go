package model

import (
	"fmt"
	"math"
	"slices"
)

// CharacterStats is the immutable definition of a player or enemy.
// Loaded once by the data layer and shared by reference between every
// Combatant built from it. Never mutate a loaded value: use ScaleStats
// to derive a new one.
type CharacterStats struct {
	ID   string
	Name string

	MaxHP int32
	MaxMP int32

	Attack       int32
	Defense      int32
	MagicAttack  int32
	MagicDefense int32
	Speed        int32

	// Skills are shared, read-only definitions.
	Skills []*Skill
}

// DefaultEnemyName is used when an enemy definition carries no display name.
const DefaultEnemyName = "Enemy"

// DisplayName returns Name, falling back to ID and then DefaultEnemyName.
func (s *CharacterStats) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.ID != "":
		return s.ID
	default:
		return DefaultEnemyName
	}
}

// Clone returns an independent copy. The skill slice is copied, the skills
// themselves stay shared.
func (s *CharacterStats) Clone() *CharacterStats {
	cp := *s
	cp.Skills = slices.Clone(s.Skills)
	return &cp
}

// ScaleStats returns a copy of stats with MaxHP, Attack, MagicAttack,
// Defense and MagicDefense multiplied by factor and rounded to the nearest
// integer (halves to even). MaxMP and Speed are left untouched.
// A factor that pushes any scaled stat out of the int32 range is rejected
// with ErrInvalidScale.
//
// The template is never modified.
func ScaleStats(stats *CharacterStats, factor float64) (*CharacterStats, error) {
	if stats == nil {
		return nil, fmt.Errorf("scaling stats: %w", ErrNilStats)
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("scaling %q by %v: %w", stats.ID, factor, ErrInvalidScale)
	}

	cp := stats.Clone()
	for _, f := range []struct {
		name string
		v    *int32
	}{
		{"max_hp", &cp.MaxHP},
		{"attack", &cp.Attack},
		{"magic_attack", &cp.MagicAttack},
		{"defense", &cp.Defense},
		{"magic_defense", &cp.MagicDefense},
	} {
		v, ok := scale(*f.v, factor)
		if !ok {
			return nil, fmt.Errorf("scaling %q %s %d by %v: %w", stats.ID, f.name, *f.v, factor, ErrInvalidScale)
		}
		*f.v = v
	}
	return cp, nil
}

// scale multiplies v by factor, reporting false when the result leaves the int32 range.
func scale(v int32, factor float64) (int32, bool) {
	r := math.RoundToEven(float64(v) * factor)
	if r > math.MaxInt32 || r < math.MinInt32 {
		return 0, false
	}
	return int32(r), true
}
