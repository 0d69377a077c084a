package core

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// ErrZeroVector is returned whenever a Vector would have all-zero components
var ErrZeroVector = errors.New("zero vector is not allowed")

// Vector is a non-zero direction or displacement in 3D space
type Vector struct {
	xyz r3.Vector
}

// NewVector creates a vector, rejecting the zero vector
func NewVector(x, y, z float64) (Vector, error) {
	return vectorOf(r3.Vector{X: x, Y: y, Z: z})
}

// MustVector is like NewVector but panics on the zero vector.
// Intended for literal scene data.
func MustVector(x, y, z float64) Vector {
	v, err := NewVector(x, y, z)
	if err != nil {
		panic(err)
	}
	return v
}

func vectorOf(xyz r3.Vector) (Vector, error) {
	if IsZero(xyz.X) && IsZero(xyz.Y) && IsZero(xyz.Z) {
		return Vector{}, ErrZeroVector
	}
	return Vector{xyz: xyz}, nil
}

// X returns the x component
func (v Vector) X() float64 { return v.xyz.X }

// Y returns the y component
func (v Vector) Y() float64 { return v.xyz.Y }

// Z returns the z component
func (v Vector) Z() float64 { return v.xyz.Z }

// XYZ exposes the raw components for calculations whose intermediate
// values may legitimately pass through zero
func (v Vector) XYZ() r3.Vector { return v.xyz }

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) (Vector, error) {
	return vectorOf(v.xyz.Add(other.xyz))
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) (Vector, error) {
	return vectorOf(v.xyz.Sub(other.xyz))
}

// Scale returns the vector multiplied by s. It panics if s is zero;
// use Point.AddScaled when the factor may vanish.
func (v Vector) Scale(s float64) Vector {
	if IsZero(s) {
		panic(fmt.Errorf("scale by %g: %w", s, ErrZeroVector))
	}
	return Vector{xyz: v.xyz.Mul(s)}
}

// Negate returns the vector pointing the opposite way
func (v Vector) Negate() Vector {
	return Vector{xyz: v.xyz.Mul(-1)}
}

// Dot returns the dot product
func (v Vector) Dot(other Vector) float64 {
	return v.xyz.Dot(other.xyz)
}

// Cross returns the cross product; parallel inputs yield ErrZeroVector
func (v Vector) Cross(other Vector) (Vector, error) {
	return vectorOf(v.xyz.Cross(other.xyz))
}

// Length returns the magnitude
func (v Vector) Length() float64 {
	return v.xyz.Norm()
}

// LengthSquared returns the squared magnitude
func (v Vector) LengthSquared() float64 {
	return v.xyz.Norm2()
}

// Normalize returns the unit vector in the same direction
func (v Vector) Normalize() Vector {
	return Vector{xyz: v.xyz.Mul(1 / v.xyz.Norm())}
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n
func (v Vector) Reflect(n Vector) Vector {
	vn := AlignZero(v.Dot(n))
	if vn == 0 {
		return v
	}
	return Vector{xyz: v.xyz.Sub(n.xyz.Mul(2 * vn))}
}

// Equals compares component-wise within Epsilon
func (v Vector) Equals(other Vector) bool {
	return approxEqual(v.xyz, other.xyz)
}

// IsParallel reports whether both vectors lie on the same line
func (v Vector) IsParallel(other Vector) bool {
	c := v.xyz.Cross(other.xyz)
	return IsZero(c.X) && IsZero(c.Y) && IsZero(c.Z)
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%g,%g,%g)", v.xyz.X, v.xyz.Y, v.xyz.Z)
}

func approxEqual(a, b r3.Vector) bool {
	return IsZero(a.X-b.X) && IsZero(a.Y-b.Y) && IsZero(a.Z-b.Z)
}
