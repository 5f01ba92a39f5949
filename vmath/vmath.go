package vmath

import "github.com/chewxy/math32"

// Epsilon is the smallest length treated as non-zero by normalization and division guards
const Epsilon = 1e-6

// --- Scalar ---

func Abs(x float32) float32 { return math32.Abs(x) }

func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// NearlyEqual reports |a-b| <= tol
func NearlyEqual(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

// AngleDelta returns the absolute difference of two angles, wrapped into [0, π]
func AngleDelta(a, b float32) float32 {
	d := math32.Mod(math32.Abs(a-b), 2*math32.Pi)
	if d > math32.Pi {
		d = 2*math32.Pi - d
	}
	return d
}

// --- Randomness ---

// FastRand is a xorshift64 generator for reproducible jitter
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float32 returns a value in [0, 1)
func (r *FastRand) Float32() float32 {
	return float32(r.Next()>>40) / float32(1<<24)
}

// Symmetric returns a value in [-amplitude, amplitude)
func (r *FastRand) Symmetric(amplitude float32) float32 {
	return (r.Float32()*2 - 1) * amplitude
}
