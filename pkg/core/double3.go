package core

import "fmt"

// Double3 is a triple of reals used for per-channel coefficients
// (attenuation, reflection, transmission) and as the storage of Color.
type Double3 struct {
	D1, D2, D3 float64
}

var (
	// Zero3 is the all-zero triple
	Zero3 = Double3{}
	// One3 is the all-one triple
	One3 = Double3{1, 1, 1}
)

// NewDouble3 creates a new Double3
func NewDouble3(d1, d2, d3 float64) Double3 {
	return Double3{D1: d1, D2: d2, D3: d3}
}

// Uniform returns a triple with all three components set to v
func Uniform(v float64) Double3 {
	return Double3{v, v, v}
}

// Add returns the component-wise sum
func (d Double3) Add(other Double3) Double3 {
	return Double3{d.D1 + other.D1, d.D2 + other.D2, d.D3 + other.D3}
}

// Scale multiplies every component by a scalar
func (d Double3) Scale(s float64) Double3 {
	return Double3{d.D1 * s, d.D2 * s, d.D3 * s}
}

// Reduce divides every component by a scalar
func (d Double3) Reduce(s float64) Double3 {
	return Double3{d.D1 / s, d.D2 / s, d.D3 / s}
}

// Product returns the component-wise product
func (d Double3) Product(other Double3) Double3 {
	return Double3{d.D1 * other.D1, d.D2 * other.D2, d.D3 * other.D3}
}

// LowerThan reports whether every component is strictly below k
func (d Double3) LowerThan(k float64) bool {
	return d.D1 < k && d.D2 < k && d.D3 < k
}

// Equals compares component-wise within Epsilon
func (d Double3) Equals(other Double3) bool {
	return IsZero(d.D1-other.D1) && IsZero(d.D2-other.D2) && IsZero(d.D3-other.D3)
}

func (d Double3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", d.D1, d.D2, d.D3)
}
