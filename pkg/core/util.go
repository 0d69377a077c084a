package core

import "math"

// Epsilon is the magnitude below which a value feeding a geometric decision
// is treated as exactly zero.
const Epsilon = 1e-10

// Delta is the distance a secondary ray's origin is pushed off a surface
// to keep it from re-hitting that surface.
const Delta = 0.1

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// AlignZero returns 0 for values within Epsilon of zero and x otherwise
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}
