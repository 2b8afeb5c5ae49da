package combat

import (
	"math/rand/v2"
)

// Roller is the injected source of randomness for every roll in a battle.
// *rand.Rand from math/rand/v2 satisfies it.
type Roller interface {
	// Float64 returns a uniform draw in [0,1).
	Float64() float64
	// IntN returns a uniform draw in [0,n).
	IntN(n int) int
}

// NewRoller returns a deterministic PCG-backed roller for seed.
func NewRoller(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ScriptedRoller replays fixed draws, cycling when exhausted.
// Used to pin hit/crit/escape rolls in tests and replays.
type ScriptedRoller struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

// Float64 returns the next scripted float, or 0 when none are scripted.
func (s *ScriptedRoller) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

// IntN returns the next scripted int modulo n, or 0 when none are scripted.
func (s *ScriptedRoller) IntN(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return v % n
}

// Draws reports how many float and int draws were consumed.
func (s *ScriptedRoller) Draws() (floats, ints int) { return s.fi, s.ii }
