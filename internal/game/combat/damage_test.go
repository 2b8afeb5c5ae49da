package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/turnbattle/internal/model"
)

func TestComputeDamage(t *testing.T) {
	tests := []struct {
		name     string
		atk, def int32
		power    float64
		want     int32
	}{
		{"plain", 10, 4, 1, 6},
		{"power multiplier", 10, 4, 2, 12},
		{"fractional power", 10, 3, 1.5, 10}, // 10.5 rounds to even
		{"defense equal", 5, 5, 1, 1},
		{"defense higher", 3, 50, 3, 1},
		{"zero stats", 0, 0, 1, 1},
		{"huge power saturates", 10, 0, 1e9, math.MaxInt32},
		{"max attack", math.MaxInt32, 0, 2, math.MaxInt32},
		{"stat gap beyond int32", math.MaxInt32, math.MinInt32, 1, math.MaxInt32},
		{"negative attack vs large defense", -2e9, 2e9, 1, 1},
		{"nan power", 10, 0, math.NaN(), 1},
		{"infinite power", 10, 0, math.Inf(1), math.MaxInt32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDamage(tt.atk, tt.def, tt.power))
		})
	}
}

func TestComputeDamage_Properties(t *testing.T) {
	powers := []float64{0.25, 0.5, 1, 1.5, 2, 3}
	for atk := int32(0); atk <= 40; atk += 3 {
		for def := int32(0); def <= 40; def += 3 {
			for pi, p := range powers {
				d := ComputeDamage(atk, def, p)
				require.GreaterOrEqual(t, d, int32(1), "atk=%d def=%d p=%v", atk, def, p)

				assert.GreaterOrEqual(t, ComputeDamage(atk+1, def, p), d, "monotonic in atk")
				assert.LessOrEqual(t, ComputeDamage(atk, def+1, p), d, "non-increasing in def")
				if pi+1 < len(powers) {
					assert.GreaterOrEqual(t, ComputeDamage(atk, def, powers[pi+1]), d, "monotonic in power")
				}
			}
		}
	}
}

func TestComputeDamage_ExtremeValues(t *testing.T) {
	stats := []int32{math.MinInt32, -2e9, -1, 0, 1, 2e9, math.MaxInt32}
	powers := []float64{1e-9, 0.5, 1, 1e9, math.MaxFloat64}
	for _, atk := range stats {
		for _, def := range stats {
			for _, p := range powers {
				d := ComputeDamage(atk, def, p)
				require.GreaterOrEqual(t, d, int32(1), "atk=%d def=%d p=%v", atk, def, p)
			}
		}
	}
}

func TestRollHit(t *testing.T) {
	r := NewRoller(42)
	for range 1000 {
		require.True(t, RollHit(r, 1))
		require.False(t, RollHit(r, 0))
	}

	assert.True(t, RollHit(&ScriptedRoller{Floats: []float64{0.49}}, 0.5))
	assert.False(t, RollHit(&ScriptedRoller{Floats: []float64{0.5}}, 0.5))
}

func TestRollCritical_Rate(t *testing.T) {
	r := NewRoller(7)
	crits := 0
	const total = 100000
	for range total {
		if RollCritical(r, 0.1) {
			crits++
		}
	}
	rate := float64(crits) / total * 100
	assert.InDelta(t, 10.0, rate, 1.0, "crit rate %.2f%%", rate)
}

func TestApplyCritical(t *testing.T) {
	assert.Equal(t, int32(15), ApplyCritical(10, 1.5))
	assert.Equal(t, int32(10), ApplyCritical(10, 1))
	assert.Equal(t, int32(2), ApplyCritical(1, 1.5), "1.5 rounds to even")
	assert.Equal(t, int32(math.MaxInt32), ApplyCritical(2e9, 2), "saturates")
	assert.Equal(t, int32(math.MaxInt32), ApplyCritical(math.MaxInt32, 1e9))
	assert.Equal(t, int32(1), ApplyCritical(1, math.NaN()))
}

func TestHealAmount(t *testing.T) {
	assert.Equal(t, int32(1), HealAmount(0))
	assert.Equal(t, int32(25), HealAmount(25))
}

func TestNewRoller_Deterministic(t *testing.T) {
	a, b := NewRoller(99), NewRoller(99)
	for range 50 {
		require.Equal(t, a.Float64(), b.Float64())
		require.Equal(t, a.IntN(100), b.IntN(100))
	}
}

func TestScriptedRoller(t *testing.T) {
	r := &ScriptedRoller{Floats: []float64{0.1, 0.9}, Ints: []int{7, 120}}
	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.9, r.Float64())
	assert.Equal(t, 0.1, r.Float64(), "cycles")
	assert.Equal(t, 7, r.IntN(100))
	assert.Equal(t, 20, r.IntN(100))

	floats, ints := r.Draws()
	assert.Equal(t, 3, floats)
	assert.Equal(t, 2, ints)

	empty := &ScriptedRoller{}
	assert.Zero(t, empty.Float64())
	assert.Zero(t, empty.IntN(10))
}

func newFighter(t *testing.T, s *model.CharacterStats) *model.Combatant {
	t.Helper()
	c, err := model.NewCombatant(s, "")
	require.NoError(t, err)
	return c
}
