package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleStats(t *testing.T) {
	base := &CharacterStats{
		ID: "wolf", Name: "Wolf",
		MaxHP: 30, MaxMP: 5,
		Attack: 10, Defense: 4, MagicAttack: 2, MagicDefense: 3, Speed: 9,
		Skills: []*Skill{BasicAttack()},
	}

	scaled, err := ScaleStats(base, 1.5)
	require.NoError(t, err)

	assert.Equal(t, int32(45), scaled.MaxHP)
	assert.Equal(t, int32(15), scaled.Attack)
	assert.Equal(t, int32(6), scaled.Defense)
	assert.Equal(t, int32(3), scaled.MagicAttack)
	assert.Equal(t, int32(4), scaled.MagicDefense, "4.5 rounds to even")
	assert.Equal(t, int32(5), scaled.MaxMP, "MP is not scaled")
	assert.Equal(t, int32(9), scaled.Speed, "speed is not scaled")

	// template untouched, skills shared
	assert.Equal(t, int32(30), base.MaxHP)
	assert.Same(t, base.Skills[0], scaled.Skills[0])

	scaled.Skills[0] = nil
	assert.NotNil(t, base.Skills[0], "skill slice is copied")
}

func TestScaleStats_InvalidFactor(t *testing.T) {
	base := &CharacterStats{ID: "wolf", MaxHP: 10}

	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := ScaleStats(base, f)
		assert.ErrorIs(t, err, ErrInvalidScale, "factor %v", f)
	}

	_, err := ScaleStats(nil, 2)
	assert.ErrorIs(t, err, ErrNilStats)
}

func TestScaleStats_Overflow(t *testing.T) {
	goblin := &CharacterStats{ID: "goblin", MaxHP: 30, Attack: 8}

	_, err := ScaleStats(goblin, 1e9)
	require.ErrorIs(t, err, ErrInvalidScale)
	assert.ErrorContains(t, err, "max_hp")
	assert.Equal(t, int32(30), goblin.MaxHP, "template untouched")

	_, err = ScaleStats(&CharacterStats{ID: "dummy", MaxHP: 1}, math.MaxFloat64)
	require.ErrorIs(t, err, ErrInvalidScale)

	top := &CharacterStats{ID: "titan", MaxHP: math.MaxInt32, Attack: math.MaxInt32}
	scaled, err := ScaleStats(top, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), scaled.MaxHP)
	assert.Equal(t, int32(math.MaxInt32), scaled.Attack)

	_, err = ScaleStats(top, 1.01)
	require.ErrorIs(t, err, ErrInvalidScale)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Bat", (&CharacterStats{ID: "bat", Name: "Bat"}).DisplayName())
	assert.Equal(t, "bat", (&CharacterStats{ID: "bat"}).DisplayName())
	assert.Equal(t, DefaultEnemyName, (&CharacterStats{}).DisplayName())
}

func TestSkillValidate(t *testing.T) {
	ok := BasicAttack()
	require.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(*Skill)
	}{
		{"empty name", func(s *Skill) { s.Name = "" }},
		{"negative cost", func(s *Skill) { s.MPCost = -1 }},
		{"zero power", func(s *Skill) { s.Power = 0 }},
		{"negative effect", func(s *Skill) { s.EffectAmount = -3 }},
		{"accuracy above one", func(s *Skill) { s.Accuracy = 1.2 }},
		{"negative crit chance", func(s *Skill) { s.CriticalChance = -0.1 }},
		{"crit multiplier below one", func(s *Skill) { s.CriticalMultiplier = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BasicAttack()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestParseSkillType(t *testing.T) {
	for _, st := range []SkillType{SkillPhysical, SkillMagical, SkillSupport} {
		got, err := ParseSkillType(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParseSkillType("holy")
	assert.Error(t, err)
}
