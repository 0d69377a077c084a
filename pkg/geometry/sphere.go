package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Surface
	center core.Point
	radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, surface Surface) (*Sphere, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius %g: %w", radius, ErrInvalidRadius)
	}
	return &Sphere{
		Surface: surface,
		center:  center,
		radius:  radius,
	}, nil
}

// Center returns the sphere's center
func (s *Sphere) Center() core.Point { return s.center }

// Radius returns the sphere's radius
func (s *Sphere) Radius() float64 { return s.radius }

// Normal points from the center to the surface point
func (s *Sphere) Normal(point core.Point) (core.Vector, error) {
	n, err := point.Subtract(s.center)
	if err != nil {
		return core.Vector{}, fmt.Errorf("sphere normal at center: %w", err)
	}
	return n.Normalize(), nil
}

// Intersect projects the origin-to-center vector onto the ray (tm) and
// uses the half chord (th) instead of a general quadratic solve.
func (s *Sphere) Intersect(ray core.Ray, maxDistance float64) []Hit {
	u, err := s.center.Subtract(ray.Origin())
	if err != nil {
		// Ray starts at the center: the single exit is one radius away
		if !inRange(s.radius, maxDistance) {
			return nil
		}
		return []Hit{{Geometry: s, Point: ray.At(s.radius)}}
	}

	tm := core.AlignZero(ray.Direction().Dot(u))
	d2 := core.AlignZero(u.LengthSquared() - tm*tm)
	th2 := core.AlignZero(s.radius*s.radius - d2)
	// Ray misses the sphere or is tangent to it
	if th2 <= 0 {
		return nil
	}
	th := math.Sqrt(th2)

	var hits []Hit
	for _, t := range [2]float64{core.AlignZero(tm - th), core.AlignZero(tm + th)} {
		if inRange(t, maxDistance) {
			hits = append(hits, Hit{Geometry: s, Point: ray.At(t)})
		}
	}
	return hits
}
