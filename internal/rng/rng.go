package rng

// Generator provides the randomness used to shuffle a deck
type Generator interface {
	// Intn will return a random number from 0 up to but not including n
	Intn(n int) int
}

// Default returns the generator used when none is injected
func Default() Generator {
	return Crypto{}
}
