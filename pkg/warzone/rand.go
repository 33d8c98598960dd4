package warzone

import "math/rand"

// rng is the package-level random source for deck draws and setup shuffles.
// When nil, the functions below delegate to the global math/rand default.
// Use SeedRng to set a deterministic source for reproducible games and tests.
var rng *rand.Rand

// SeedRng sets a deterministic random source.
func SeedRng(seed int64) {
	rng = rand.New(rand.NewSource(seed))
}

// ResetRng reverts to the default (non-deterministic) global random source.
func ResetRng() {
	rng = nil
}

// Intn returns a random int in [0, n).
func Intn(n int) int {
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}

// Shuffle randomizes the order of n elements using swap.
func Shuffle(n int, swap func(i, j int)) {
	if rng != nil {
		rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
