package rng

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Crypto wraps the crypto/rand library
type Crypto struct{}

// Intn returns a random number from 0 < n
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// NewSeeded returns a deterministic generator for the given seed.
// Seeded generators should only be used by tests.
func NewSeeded(seed int64) Generator {
	return mrand.New(mrand.NewSource(seed))
}
