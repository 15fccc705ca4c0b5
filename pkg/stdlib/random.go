package stdlib

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"sync"
	"time"
)

// rng is a xoroshiro128++ generator. A mutex serializes access so natives
// stay safe when embedders call the interpreter from multiple goroutines.
type rng struct {
	mu sync.Mutex
	s  [2]uint64
}

func newRNG() *rng {
	return &rng{s: [2]uint64{0x12345678, 0x87654321}}
}

func (r *rng) next() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextLocked()
}

func (r *rng) nextLocked() uint64 {
	s0, s1 := r.s[0], r.s[1]
	result := bits.RotateLeft64(s0+s1, 17) + s0

	s1 ^= s0
	r.s[0] = bits.RotateLeft64(s0, 49) ^ s1 ^ (s1 << 21)
	r.s[1] = bits.RotateLeft64(s1, 28)
	return result
}

// seed scrambles the given value through SplitMix64 to fill both state words.
func (r *rng) seed(v uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s[0] = splitmix64(v)
	r.s[1] = splitmix64(r.s[0])
}

func splitmix64(v uint64) uint64 {
	z := v + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// float01 draws a uniform double in [0, 1) from the top 53 bits.
func (r *rng) float01() float64 {
	return float64(r.next()>>11) * (1.0 / (1 << 53))
}

// intRange draws an inclusive integer in [min, max], swapping reversed bounds.
func (r *rng) intRange(min, max int64) int64 {
	if min > max {
		min, max = max, min
	}
	span := uint64(max-min) + 1
	if span == 0 {
		return min
	}
	return min + int64(r.next()%span)
}

// osEntropy reads a seed from the OS, falling back to the wall clock.
func osEntropy() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(buf[:])
}
