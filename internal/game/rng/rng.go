package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// New returns a PCG generator derived from seed and salt. Different salts give
// independent streams for the same seed.
func New(seed int64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional: exports must be reproducible.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
