package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	Surface
	vertices [3]core.Point
	plane    *Plane
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point, surface Surface) (*Triangle, error) {
	plane, err := NewPlaneFromPoints(v0, v1, v2, surface)
	if err != nil {
		return nil, err
	}
	return &Triangle{
		Surface:  surface,
		vertices: [3]core.Point{v0, v1, v2},
		plane:    plane,
	}, nil
}

// Vertices returns the three vertices
func (t *Triangle) Vertices() [3]core.Point {
	return t.vertices
}

// Normal returns the triangle's normal vector
func (t *Triangle) Normal(core.Point) (core.Vector, error) {
	return t.plane.normal, nil
}

// Intersect tests the ray against the triangle
func (t *Triangle) Intersect(ray core.Ray, maxDistance float64) []Hit {
	return intersectConvex(t, t.plane, t.vertices[:], ray, maxDistance)
}
