package core

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Point is a position in 3D space
type Point struct {
	xyz r3.Vector
}

// Origin is the point (0,0,0)
var Origin = Point{}

// NewPoint creates a new point
func NewPoint(x, y, z float64) Point {
	return Point{xyz: r3.Vector{X: x, Y: y, Z: z}}
}

// PointOf wraps raw coordinates as a point
func PointOf(xyz r3.Vector) Point {
	return Point{xyz: xyz}
}

// X returns the x coordinate
func (p Point) X() float64 { return p.xyz.X }

// Y returns the y coordinate
func (p Point) Y() float64 { return p.xyz.Y }

// Z returns the z coordinate
func (p Point) Z() float64 { return p.xyz.Z }

// XYZ exposes the raw coordinates
func (p Point) XYZ() r3.Vector { return p.xyz }

// Add moves the point by a vector
func (p Point) Add(v Vector) Point {
	return Point{xyz: p.xyz.Add(v.xyz)}
}

// AddScaled moves the point by v*s; a zero s leaves the point unchanged
func (p Point) AddScaled(v Vector, s float64) Point {
	if s == 0 {
		return p
	}
	return Point{xyz: p.xyz.Add(v.xyz.Mul(s))}
}

// Subtract returns the vector from other to p. Coincident points
// yield ErrZeroVector.
func (p Point) Subtract(other Point) (Vector, error) {
	return vectorOf(p.xyz.Sub(other.xyz))
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return p.xyz.Distance(other.xyz)
}

// DistanceSquared returns the squared distance between two points
func (p Point) DistanceSquared(other Point) float64 {
	return p.xyz.Sub(other.xyz).Norm2()
}

// Equals compares coordinates within Epsilon
func (p Point) Equals(other Point) bool {
	return approxEqual(p.xyz, other.xyz)
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g,%g,%g)", p.xyz.X, p.xyz.Y, p.xyz.Z)
}
