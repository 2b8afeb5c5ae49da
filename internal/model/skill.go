package model

import "fmt"

// SkillType selects which stat pair a skill resolves against.
type SkillType int

const (
	SkillPhysical SkillType = iota // Attack vs Defense
	SkillMagical                   // MagicAttack vs MagicDefense
	SkillSupport                   // heals, ignores stats
)

// String returns the lowercase name used in catalogs and logs.
func (t SkillType) String() string {
	switch t {
	case SkillPhysical:
		return "physical"
	case SkillMagical:
		return "magical"
	case SkillSupport:
		return "support"
	default:
		return fmt.Sprintf("SkillType(%d)", int(t))
	}
}

// ParseSkillType is the inverse of SkillType.String.
func ParseSkillType(s string) (SkillType, error) {
	switch s {
	case "physical":
		return SkillPhysical, nil
	case "magical":
		return SkillMagical, nil
	case "support":
		return SkillSupport, nil
	default:
		return 0, fmt.Errorf("unknown skill type %q", s)
	}
}

// Targeting describes who a skill may be aimed at.
//
// Only single-target-forward (one enemy for offensive skills, the user for
// support skills) is resolved by the battle core. The remaining flags are
// carried so multi-target resolution can be added without touching the
// data layer.
type Targeting struct {
	Enemies bool
	Allies  bool
	All     bool
	Self    bool
	Single  bool
	Random  bool
	Dead    bool
}

// DefaultTargeting is single enemy, the default of a fresh skill asset.
var DefaultTargeting = Targeting{Enemies: true, Single: true}

// Skill is an immutable action definition.
type Skill struct {
	ID   string
	Name string
	Type SkillType

	MPCost        int32
	Power         float64 // damage multiplier, > 0
	SpeedModifier float64 // initiative only
	EffectAmount  int32   // heal amount for support skills

	Accuracy           float64 // [0,1]
	CriticalChance     float64 // [0,1]
	CriticalMultiplier float64 // >= 1

	Targeting Targeting
}

// Default values of a skill definition that leaves them unset.
const (
	DefaultPower              = 1.0
	DefaultAccuracy           = 1.0
	DefaultCriticalChance     = 0.1
	DefaultCriticalMultiplier = 1.5
)

// BasicAttackName is the name of the implicit attack command.
const BasicAttackName = "Attack"

// BasicAttack returns the implicit physical attack bound to the attack
// command: power 1, no MP cost, always hits, default crit settings.
func BasicAttack() *Skill {
	return &Skill{
		ID:                 "attack",
		Name:               BasicAttackName,
		Type:               SkillPhysical,
		Power:              DefaultPower,
		Accuracy:           DefaultAccuracy,
		CriticalChance:     DefaultCriticalChance,
		CriticalMultiplier: DefaultCriticalMultiplier,
		Targeting:          DefaultTargeting,
	}
}

// FallbackAttack is what an enemy does when it has no usable skill:
// a plain physical hit that never misses and never crits.
func FallbackAttack() *Skill {
	return &Skill{
		ID:                 "fallback_attack",
		Name:               BasicAttackName,
		Type:               SkillPhysical,
		Power:              1,
		Accuracy:           1,
		CriticalMultiplier: 1,
		Targeting:          DefaultTargeting,
	}
}

// Validate checks the numeric ranges of a definition.
func (s *Skill) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("skill %q: empty name", s.ID)
	case s.MPCost < 0:
		return fmt.Errorf("skill %q: mp_cost %d < 0", s.ID, s.MPCost)
	case s.Power <= 0:
		return fmt.Errorf("skill %q: power %v <= 0", s.ID, s.Power)
	case s.EffectAmount < 0:
		return fmt.Errorf("skill %q: effect_amount %d < 0", s.ID, s.EffectAmount)
	case s.Accuracy < 0 || s.Accuracy > 1:
		return fmt.Errorf("skill %q: accuracy %v outside [0,1]", s.ID, s.Accuracy)
	case s.CriticalChance < 0 || s.CriticalChance > 1:
		return fmt.Errorf("skill %q: critical_chance %v outside [0,1]", s.ID, s.CriticalChance)
	case s.CriticalMultiplier < 1:
		return fmt.Errorf("skill %q: critical_multiplier %v < 1", s.ID, s.CriticalMultiplier)
	}
	return nil
}
