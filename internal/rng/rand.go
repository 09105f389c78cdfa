// Package rng provides the seeded generator every random choice in the
// mosaic is drawn from. Output depends only on the seed.
package rng

import "math"

const (
	golden = 0x9E3779B97F4A7C15
	mix1   = 0xBF58476D1CE4E5B9
	mix2   = 0x94D049BB133111EB
)

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	z := x
	z = (z ^ (z >> 30)) * mix1
	z = (z ^ (z >> 27)) * mix2
	return z ^ (z >> 31)
}

// Rand is a tiny deterministic RNG (SplitMix64).
type Rand struct {
	s uint64
}

func New(seed uint64) *Rand {
	return &Rand{s: seed}
}

// Seed resets the generator so the next draws replay the sequence for seed.
func (r *Rand) Seed(seed uint64) {
	r.s = seed
}

// State returns the raw generator state.
func (r *Rand) State() uint64 { return r.s }

// NextUint64 advances the state and returns the mixed value. It is the only
// method that mutates r.
func (r *Rand) NextUint64() uint64 {
	r.s += golden
	return splitmix64(r.s)
}

// NextDouble returns a value in [0,1).
func (r *Rand) NextDouble() float64 {
	d := float64(r.NextUint64()) / float64(math.MaxUint64)
	if d >= 1 {
		// Draws within 2^10 of MaxUint64 round up to 1.0 in float64.
		return math.Nextafter(1, 0)
	}
	return d
}

// InRange maps a draw linearly onto [lo,hi].
func (r *Rand) InRange(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	v := lo + (hi-lo)*r.NextDouble()
	if v > hi {
		return hi
	}
	return v
}

// IntInRange returns an integer in [lo,hi] inclusive.
func (r *Rand) IntInRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	span := float64(hi-lo) + 1
	v := lo + int(r.NextDouble()*span)
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

// Intn returns an integer in [0,n). n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.IntInRange(0, n-1)
}

// Chance reports true with probability p, clamped to [0,1].
func (r *Rand) Chance(p float64) bool {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return r.NextDouble() < p
}

// Fork returns an independent generator seeded from one draw of r.
func (r *Rand) Fork() *Rand {
	return New(r.NextUint64())
}

// Read fills p with generator output, eight little-endian bytes per draw,
// so a Rand can stand in as an io.Reader. It never fails.
func (r *Rand) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.NextUint64()
		for j := i; j < len(p) && j < i+8; j++ {
			p[j] = byte(v)
			v >>= 8
		}
	}
	return len(p), nil
}

// Hash2D returns a deterministic 64-bit hash for (x,y) under the given seed.
func Hash2D(seed uint64, x, y int) uint64 {
	ux := uint64(uint32(x))
	uy := uint64(uint32(y))
	h := seed
	h ^= ux * 0x9E3779B185EBCA87
	h ^= uy * 0xC2B2AE3D27D4EB4F
	return splitmix64(h + golden)
}
