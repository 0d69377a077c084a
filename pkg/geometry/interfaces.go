package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	ErrDuplicatePoints = errors.New("two or more points are the same")
	ErrCollinearPoints = errors.New("points are collinear")
	ErrTooFewVertices  = errors.New("a polygon needs at least 3 vertices")
	ErrNonPlanar       = errors.New("all polygon vertices must lie in the same plane")
	ErrNonConvex       = errors.New("polygon vertices must be ordered and convex")
	ErrPointOnAxis     = errors.New("point lies on the axis, normal is undefined")
	ErrInvalidRadius   = errors.New("radius must be positive")
	ErrInvalidHeight   = errors.New("height must be positive")
)

// Intersectable is anything a ray can be tested against: a single shape or
// a nested collection of shapes.
type Intersectable interface {
	// Intersect returns every hit with 0 < t <= maxDistance, or nil
	Intersect(ray core.Ray, maxDistance float64) []Hit
}

// Geometry is a shape with a surface normal and shading properties
type Geometry interface {
	Intersectable
	Normal(point core.Point) (core.Vector, error)
	Emission() core.Color
	Material() material.Material
}

// Surface holds the shading properties shared by every shape
type Surface struct {
	emission core.Color
	material material.Material
}

// NewSurface creates surface properties from an emission color and material
func NewSurface(emission core.Color, mat material.Material) Surface {
	return Surface{emission: emission, material: mat}
}

// Emission returns the emitted color
func (s Surface) Emission() core.Color { return s.emission }

// Material returns the surface material
func (s Surface) Material() material.Material { return s.material }

// FindIntersections intersects without a distance bound
func FindIntersections(i Intersectable, ray core.Ray) []Hit {
	return i.Intersect(ray, math.Inf(1))
}

// inRange reports whether t is a valid parametric distance: 0 < t <= maxDistance
func inRange(t, maxDistance float64) bool {
	return t > 0 && core.AlignZero(t-maxDistance) <= 0
}
