// Package rng provides the random stream used for test assembly.
//
// When a seed string is supplied the stream is a pure function of the seed
// (FNV-1a hash of the UTF-8 bytes driving a mulberry32 mixer), so the same
// seed reproduces the same test on any run. Without a seed the stream falls
// back to system randomness.
package rng

import (
	"hash/fnv"
	"math/rand/v2"
)

// RNG is a stateful random stream. It is not safe for concurrent use; each
// assembly run owns its own instance.
type RNG struct {
	state  uint32
	seeded bool
	sys    *rand.Rand
}

// New builds a stream from seed. An empty seed yields a non-deterministic
// system stream.
func New(seed string) *RNG {
	if seed == "" {
		return &RNG{sys: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return &RNG{state: h.Sum32(), seeded: true}
}

// Float64 returns the next value in [0,1).
func (r *RNG) Float64() float64 {
	if !r.seeded {
		return r.sys.Float64()
	}
	// mulberry32: 32-bit arithmetic throughout, wrapping on overflow.
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// IntN returns an integer in [0,n). n must be > 0.
func (r *RNG) IntN(n int) int {
	return int(r.Float64() * float64(n))
}

// Shuffle returns a shuffled copy of s using a Fisher-Yates pass that
// consumes exactly one draw per swap, from the last index down to 1. The
// input slice is left untouched.
func Shuffle[T any](r *RNG, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
