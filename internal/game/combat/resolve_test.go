package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/model"
)

func heroStats() *model.CharacterStats {
	return &model.CharacterStats{
		ID: "hero", Name: "Hero",
		MaxHP: 50, MaxMP: 20,
		Attack: 12, Defense: 4, MagicAttack: 15, MagicDefense: 5, Speed: 10,
	}
}

func goblinStats() *model.CharacterStats {
	return &model.CharacterStats{
		ID: "goblin", Name: "Goblin",
		MaxHP: 30, MaxMP: 5,
		Attack: 8, Defense: 2, MagicAttack: 1, MagicDefense: 3, Speed: 6,
	}
}

func TestResolve_Physical(t *testing.T) {
	hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
	skill := &model.Skill{Name: "Slash", Type: model.SkillPhysical, Power: 1, Accuracy: 1, CriticalChance: 0, CriticalMultiplier: 1.5}

	// hit draw 0.0, crit draw 0.5 (no crit since chance 0)
	res := Resolve(&ScriptedRoller{Floats: []float64{0, 0.5}}, hero, gob, skill)

	assert.False(t, res.Miss)
	assert.False(t, res.Crit)
	assert.Equal(t, int32(10), res.Damage)
	assert.Equal(t, int32(10), res.HPLost)
	assert.Equal(t, int32(20), gob.CurrentHP())
	assert.Same(t, gob, res.Recipient)
	assert.False(t, res.Defeated)
}

func TestResolve_MagicalCrit(t *testing.T) {
	hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
	skill := &model.Skill{Name: "Fire", Type: model.SkillMagical, MPCost: 5, Power: 1, Accuracy: 1, CriticalChance: 0.5, CriticalMultiplier: 2}

	res := Resolve(&ScriptedRoller{Floats: []float64{0.2, 0.1}}, hero, gob, skill)

	assert.True(t, res.Crit)
	assert.Equal(t, int32(24), res.Damage) // (15-3)*1 = 12, ×2
	assert.Equal(t, int32(6), gob.CurrentHP())
	assert.Equal(t, int32(5), res.MPSpent)
	assert.Equal(t, int32(15), hero.CurrentMP())
}

func TestResolve_MissSpendsMP(t *testing.T) {
	hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
	skill := &model.Skill{Name: "Wild Swing", Type: model.SkillPhysical, MPCost: 3, Power: 3, Accuracy: 0.3, CriticalMultiplier: 1}

	r := &ScriptedRoller{Floats: []float64{0.8}}
	res := Resolve(r, hero, gob, skill)

	assert.True(t, res.Miss)
	assert.Zero(t, res.Damage)
	assert.Equal(t, int32(17), hero.CurrentMP())
	assert.Equal(t, gob.MaxHP(), gob.CurrentHP())
	floats, _ := r.Draws()
	assert.Equal(t, 1, floats, "no crit roll after a miss")
}

func TestResolve_SupportHealsActor(t *testing.T) {
	hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
	hero.TakeDamage(30)
	skill := &model.Skill{Name: "Mend", Type: model.SkillSupport, MPCost: 4, Power: 1, EffectAmount: 50, Accuracy: 1, CriticalMultiplier: 1}

	res := Resolve(&ScriptedRoller{}, hero, gob, skill)

	assert.Same(t, hero, res.Recipient)
	assert.Equal(t, int32(50), res.Heal)
	assert.Equal(t, int32(30), res.HPGain, "clamped to max HP")
	assert.Equal(t, hero.MaxHP(), hero.CurrentHP())
	assert.Equal(t, gob.MaxHP(), gob.CurrentHP(), "target untouched")
}

func TestResolve_SupportMinimumHeal(t *testing.T) {
	hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
	hero.TakeDamage(10)
	skill := &model.Skill{Name: "Breathe", Type: model.SkillSupport, Power: 1, Accuracy: 1, CriticalMultiplier: 1}

	res := Resolve(&ScriptedRoller{}, hero, gob, skill)
	assert.Equal(t, int32(1), res.Heal)
	assert.Equal(t, int32(41), hero.CurrentHP())
}

func TestResolve_Defeat(t *testing.T) {
	s := goblinStats()
	s.MaxHP = 1
	s.Defense = 0
	hero, gob := newFighter(t, heroStats()), newFighter(t, s)

	res := Resolve(&ScriptedRoller{Floats: []float64{0, 0.99}}, hero, gob, model.BasicAttack())

	assert.True(t, res.Defeated)
	assert.Equal(t, int32(12), res.Damage)
	assert.Equal(t, int32(1), res.HPLost)
	assert.False(t, gob.IsAlive())
}

func TestResolve_HPStaysInRange(t *testing.T) {
	r := NewRoller(2024)
	skills := []*model.Skill{
		model.BasicAttack(),
		{Name: "Bolt", Type: model.SkillMagical, MPCost: 2, Power: 2.5, Accuracy: 0.8, CriticalChance: 0.3, CriticalMultiplier: 2},
		{Name: "Mend", Type: model.SkillSupport, MPCost: 1, Power: 1, EffectAmount: 7, Accuracy: 0.9, CriticalMultiplier: 1},
	}

	for round := range 200 {
		hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
		for i := 0; gob.IsAlive() && i < 50; i++ {
			sk := skills[(round+i)%len(skills)]
			if !hero.CanAfford(sk.MPCost) {
				sk = skills[0]
			}
			Resolve(r, hero, gob, sk)
			Resolve(r, gob, hero, skills[0])
			for _, c := range []*model.Combatant{hero, gob} {
				assert.GreaterOrEqual(t, c.CurrentHP(), int32(0))
				assert.LessOrEqual(t, c.CurrentHP(), c.MaxHP())
				assert.GreaterOrEqual(t, c.CurrentMP(), int32(0))
				assert.LessOrEqual(t, c.CurrentMP(), c.MaxMP())
			}
			if !hero.IsAlive() {
				break
			}
		}
	}
}

func TestResolve_HugePowerDefeats(t *testing.T) {
	hero, gob := newFighter(t, heroStats()), newFighter(t, goblinStats())
	skill := &model.Skill{Name: "Meteor", Type: model.SkillPhysical, Power: 1e9, Accuracy: 1, CriticalChance: 1, CriticalMultiplier: 2}
	require.NoError(t, skill.Validate())

	res := Resolve(&ScriptedRoller{Floats: []float64{0}}, hero, gob, skill)

	assert.True(t, res.Crit)
	assert.Equal(t, int32(math.MaxInt32), res.Damage)
	assert.Equal(t, int32(30), res.HPLost)
	assert.True(t, res.Defeated)
	assert.Zero(t, gob.CurrentHP())
}
