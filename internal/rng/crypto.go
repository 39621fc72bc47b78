package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto wraps the crypto/rand library
// It is the production generator; it cannot be seeded
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
// Panics if n <= 0, matching math/rand
func (c Crypto) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
