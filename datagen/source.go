package datagen

import "math/rand"

// Source is the randomness used by generation. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
