package combat

import (
	"math/rand"
	"time"
)

// Roller is the engine's uniform random source. Battle resolution takes a
// Roller so tests can substitute a seeded or scripted one.
type Roller interface {
	// Percent rolls 1-100 inclusive.
	Percent() int

	// Between rolls an integer in [0, n] inclusive. n <= 0 yields 0.
	Between(n int) int
}

type randRoller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller seeded with the given value. The same seed
// produces the same roll sequence.
func NewRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomRoller returns a time-seeded Roller for production use.
func NewRandomRoller() Roller {
	return NewRoller(time.Now().UnixNano())
}

func (r *randRoller) Percent() int {
	return r.rng.Intn(100) + 1
}

func (r *randRoller) Between(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n + 1)
}
