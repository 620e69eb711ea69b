package core

import "math/rand"

// Rand is the randomness games draw from. *rand.Rand satisfies it; tests
// inject scripted sources to pin board layouts and refills.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded source for deterministic gameplay.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
