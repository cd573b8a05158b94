package math

import "math"

// Wrap maps i into [0, n) with true modulo semantics, so negative inputs
// wrap from the far edge instead of truncating toward zero.
func Wrap(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// Fract returns v - floor(v), always in [0, 1).
func Fract(v float32) float32 {
	f := v - float32(math.Floor(float64(v)))
	if f >= 1 {
		return 0
	}
	return f
}

// WrapCentered maps v into [-n/2, n/2) modulo n.
func WrapCentered(v, n float32) float32 {
	return v - n*Floor((v+n/2)/n)
}

// Floor returns the largest integer value not greater than v.
func Floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
