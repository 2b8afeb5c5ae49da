package testutil

import (
	"github.com/udisondev/turnbattle/internal/game/combat"
	"github.com/udisondev/turnbattle/internal/model"
)

// HeroStats возвращает свежую копию статов игрока для тестов.
// MaxHP 50, MaxMP 20, Attack 12, Defense 4, MagicAttack 15, MagicDefense 5, Speed 10.
func HeroStats() *model.CharacterStats {
	return &model.CharacterStats{
		ID:           "hero",
		Name:         "Hero",
		MaxHP:        50,
		MaxMP:        20,
		Attack:       12,
		Defense:      4,
		MagicAttack:  15,
		MagicDefense: 5,
		Speed:        10,
	}
}

// GoblinStats возвращает статы врага без скиллов (всегда fallback-атака).
// MaxHP 30, MaxMP 5, Attack 8, Defense 2, MagicAttack 1, MagicDefense 3, Speed 6.
func GoblinStats() *model.CharacterStats {
	return &model.CharacterStats{
		ID:           "goblin",
		Name:         "Goblin",
		MaxHP:        30,
		MaxMP:        5,
		Attack:       8,
		Defense:      2,
		MagicAttack:  1,
		MagicDefense: 3,
		Speed:        6,
	}
}

// FireballSkill возвращает магический скилл (MP 5, сила 2), который всегда попадает и не критует.
func FireballSkill() *model.Skill {
	return &model.Skill{
		ID:                 "fireball",
		Name:               "Fireball",
		Type:               model.SkillMagical,
		MPCost:             5,
		Power:              2,
		Accuracy:           1,
		CriticalMultiplier: 1.5,
		Targeting:          model.DefaultTargeting,
	}
}

// MendSkill возвращает лечащий скилл (MP 4), восстанавливающий 15 HP.
func MendSkill() *model.Skill {
	return &model.Skill{
		ID:                 "mend",
		Name:               "Mend",
		Type:               model.SkillSupport,
		MPCost:             4,
		Power:              1,
		EffectAmount:       15,
		Accuracy:           1,
		CriticalMultiplier: 1,
		Targeting:          model.DefaultTargeting,
	}
}

// SureHits returns a roller whose every float draw is 0.5: accuracy 1
// always hits and the default 10% crit never triggers.
func SureHits() *combat.ScriptedRoller {
	return &combat.ScriptedRoller{Floats: []float64{0.5}}
}
