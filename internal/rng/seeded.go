package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Seeded is a deterministic generator backed by math/rand
// The same seed always produces the same sequence, which makes shuffles reproducible.
// It is safe for concurrent use, but the sequence seen by each caller then depends on scheduling.
type Seeded struct {
	seed int64

	lock sync.Mutex
	rng  *rand.Rand
}

// NewSeeded returns a new seeded generator
// If seed is 0, the current time is used
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rng.Intn(n)
}

// Seed returns the seed used
func (s *Seeded) Seed() int64 {
	return s.seed
}
