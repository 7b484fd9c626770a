// Package randutil centralises how seeded random sources are built so that a
// simulation run can be replayed from its seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15

	// DefaultSides is a standard six-sided die.
	DefaultSides = 6
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// rand/v2's PCG needs two 64-bit seeds; both are derived from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ResolveSeed returns seed unless it is zero, in which case a time based seed
// is picked. Callers log the resolved value so the run can be replayed.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Die rolls uniformly over [1, sides].
type Die struct {
	rng   *rand.Rand
	sides int
	rolls int64
}

// NewDie returns a six-sided die driven by a PCG source seeded from seed.
func NewDie(seed int64) *Die {
	return NewDieWithRand(New(seed), DefaultSides)
}

// NewDieWithRand wraps an existing source. sides below 1 fall back to six.
func NewDieWithRand(rng *rand.Rand, sides int) *Die {
	if sides < 1 {
		sides = DefaultSides
	}
	return &Die{rng: rng, sides: sides}
}

// Roll returns the next face
func (d *Die) Roll() int {
	d.rolls++
	return d.rng.IntN(d.sides) + 1
}

// Rolls returns how many times the die has been rolled
func (d *Die) Rolls() int64 {
	return d.rolls
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
