// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Decks, bots and tests all seed
// through here so a session replays exactly from its seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the independent source for one stream of a seed, e.g. one per seated bot.
// Streams of the same seed never share a sequence with the seed's own New source.
func Derive(seed int64, stream int) *rand.Rand {
	u := mix(uint64(seed)) ^ mix(uint64(stream)+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// mix is the splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
