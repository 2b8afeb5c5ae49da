package combat

import (
	"math"
)

// ComputeDamage returns round(max(1, (attack-defense) × power)).
//
// Damage never drops below 1, however large the defender's advantage,
// and saturates at math.MaxInt32. Rounding is half-to-even.
func ComputeDamage(attack, defense int32, power float64) int32 {
	raw := (float64(attack) - float64(defense)) * power
	return toDamage(raw)
}

// RollHit succeeds iff a uniform [0,1) draw is below accuracy.
// accuracy >= 1 always hits, accuracy <= 0 always misses.
func RollHit(r Roller, accuracy float64) bool {
	return r.Float64() < accuracy
}

// RollCritical uses the same draw policy as RollHit, with its own draw.
func RollCritical(r Roller, chance float64) bool {
	return r.Float64() < chance
}

// ApplyCritical returns round(damage × multiplier), kept within
// [1, math.MaxInt32].
func ApplyCritical(damage int32, multiplier float64) int32 {
	return toDamage(float64(damage) * multiplier)
}

// HealAmount is the HP restored by a support skill: max(1, effectAmount).
func HealAmount(effectAmount int32) int32 {
	return max(1, effectAmount)
}

// toDamage rounds v and clamps it to [1, math.MaxInt32]. NaN counts as 1.
func toDamage(v float64) int32 {
	v = math.RoundToEven(v)
	switch {
	case math.IsNaN(v) || v < 1:
		return 1
	case v >= math.MaxInt32:
		return math.MaxInt32
	}
	return int32(v)
}
