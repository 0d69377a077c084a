package core

import (
	"fmt"
	"math"
)

// Ray is an origin plus a normalized direction
type Ray struct {
	origin    Point
	direction Vector
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin Point, direction Vector) Ray {
	return Ray{origin: origin, direction: direction.Normalize()}
}

// NewOffsetRay creates a ray whose origin is head pushed Delta along the
// normal, toward the side the direction points to. Shadow, reflection and
// refraction rays use it so they do not re-hit the surface they leave.
func NewOffsetRay(head Point, direction, normal Vector) Ray {
	nd := AlignZero(normal.Dot(direction))
	if nd == 0 {
		return NewRay(head, direction)
	}
	offset := Delta
	if nd < 0 {
		offset = -Delta
	}
	return NewRay(head.AddScaled(normal, offset), direction)
}

// Origin returns the ray's starting point
func (r Ray) Origin() Point { return r.origin }

// Direction returns the ray's unit direction
func (r Ray) Direction() Vector { return r.direction }

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.origin.AddScaled(r.direction, t)
}

// Equals reports whether two rays share origin and direction
func (r Ray) Equals(other Ray) bool {
	return r.origin.Equals(other.origin) && r.direction.Equals(other.direction)
}

// FindClosestPoint returns the point nearest to the ray origin.
// The second result is false when points is empty.
func (r Ray) FindClosestPoint(points []Point) (Point, bool) {
	idx := ClosestIndex(r.origin, len(points), func(i int) Point { return points[i] })
	if idx < 0 {
		return Point{}, false
	}
	return points[idx], true
}

// ClosestIndex returns the index of the element nearest to origin, or -1 if
// n is zero. Ties resolve to the first element found.
func ClosestIndex(origin Point, n int, at func(i int) Point) int {
	best := -1
	bestDist := math.Inf(1)
	for i := 0; i < n; i++ {
		d := origin.DistanceSquared(at(i))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray{%v -> %v}", r.origin, r.direction)
}
