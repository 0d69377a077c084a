package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and unit normal
type Plane struct {
	Surface
	point  core.Point  // A point on the plane
	normal core.Vector // Unit normal
}

// NewPlane creates a plane through point with the given normal
func NewPlane(point core.Point, normal core.Vector, surface Surface) *Plane {
	return &Plane{
		Surface: surface,
		point:   point,
		normal:  normal.Normalize(),
	}
}

// NewPlaneFromPoints creates the plane through three distinct, non-collinear points
func NewPlaneFromPoints(p1, p2, p3 core.Point, surface Surface) (*Plane, error) {
	if p1.Equals(p2) || p1.Equals(p3) || p2.Equals(p3) {
		return nil, ErrDuplicatePoints
	}

	// Edges can't be zero here since the points are distinct
	v1, _ := p1.Subtract(p2)
	v2, _ := p1.Subtract(p3)

	n, err := v1.Cross(v2)
	if err != nil {
		return nil, fmt.Errorf("plane through %v, %v, %v: %w", p1, p2, p3, ErrCollinearPoints)
	}

	return &Plane{
		Surface: surface,
		point:   p1,
		normal:  n.Normalize(),
	}, nil
}

// Point returns the plane's reference point
func (p *Plane) Point() core.Point {
	return p.point
}

// PlaneNormal returns the plane's unit normal
func (p *Plane) PlaneNormal() core.Vector {
	return p.normal
}

// Normal returns the plane's normal; it is the same everywhere on the plane
func (p *Plane) Normal(core.Point) (core.Vector, error) {
	return p.normal, nil
}

// Intersect finds where the ray crosses the plane
func (p *Plane) Intersect(ray core.Ray, maxDistance float64) []Hit {
	t, ok := p.intersectT(ray, maxDistance)
	if !ok {
		return nil
	}
	return []Hit{{Geometry: p, Point: ray.At(t)}}
}

// intersectT solves t = N·(Q0-P0) / N·D
func (p *Plane) intersectT(ray core.Ray, maxDistance float64) (float64, bool) {
	nv := core.AlignZero(p.normal.Dot(ray.Direction()))
	// Ray parallel to the plane
	if nv == 0 {
		return 0, false
	}

	// Ray starting at the reference point
	q, err := p.point.Subtract(ray.Origin())
	if err != nil {
		return 0, false
	}

	nq := core.AlignZero(p.normal.Dot(q))
	// Ray starting on the plane
	if nq == 0 {
		return 0, false
	}

	t := core.AlignZero(nq / nv)
	if !inRange(t, maxDistance) {
		return 0, false
	}
	return t, true
}
