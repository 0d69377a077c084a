package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Polygon is a convex planar polygon. Vertices are ordered along the edge
// path; the first three define the supporting plane.
type Polygon struct {
	Surface
	vertices []core.Point
	plane    *Plane
}

// NewPolygon validates the vertices and creates a polygon
func NewPolygon(surface Surface, vertices ...core.Point) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, ErrTooFewVertices
	}

	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2], surface)
	if err != nil {
		return nil, err
	}

	if len(vertices) > 3 {
		if err := validateConvex(vertices, plane.normal); err != nil {
			return nil, err
		}
	}

	return &Polygon{
		Surface:  surface,
		vertices: append([]core.Point(nil), vertices...),
		plane:    plane,
	}, nil
}

// validateConvex checks that every vertex lies on the plane and that successive
// edges all turn the same way around the normal
func validateConvex(vertices []core.Point, n core.Vector) error {
	last := len(vertices) - 1
	edge1, err := vertices[last].Subtract(vertices[last-1])
	if err != nil {
		return ErrDuplicatePoints
	}
	edge2, err := vertices[0].Subtract(vertices[last])
	if err != nil {
		return ErrDuplicatePoints
	}

	turn, err := edge1.Cross(edge2)
	if err != nil {
		return ErrNonConvex
	}
	positive := turn.Dot(n) > 0

	for i := 1; i < len(vertices); i++ {
		toVertex, err := vertices[i].Subtract(vertices[0])
		if err != nil {
			return ErrDuplicatePoints
		}
		if !core.IsZero(toVertex.Dot(n)) {
			return ErrNonPlanar
		}

		edge1 = edge2
		edge2, err = vertices[i].Subtract(vertices[i-1])
		if err != nil {
			return ErrDuplicatePoints
		}
		turn, err = edge1.Cross(edge2)
		if err != nil || positive != (turn.Dot(n) > 0) {
			return ErrNonConvex
		}
	}
	return nil
}

// Vertices returns a copy of the polygon's vertices
func (p *Polygon) Vertices() []core.Point {
	return append([]core.Point(nil), p.vertices...)
}

// Normal returns the supporting plane's normal
func (p *Polygon) Normal(core.Point) (core.Vector, error) {
	return p.plane.normal, nil
}

// Intersect tests the supporting plane, then checks the point is strictly
// inside every edge
func (p *Polygon) Intersect(ray core.Ray, maxDistance float64) []Hit {
	return intersectConvex(p, p.plane, p.vertices, ray, maxDistance)
}

// intersectConvex is shared by Polygon and Triangle. The hit counts only when
// direction·(e_i × e_{i+1}) has the same non-zero sign for every edge, where
// e_i runs from the ray origin to vertex i.
func intersectConvex(owner Geometry, plane *Plane, vertices []core.Point, ray core.Ray, maxDistance float64) []Hit {
	t, ok := plane.intersectT(ray, maxDistance)
	if !ok {
		return nil
	}

	origin := ray.Origin()
	dir := ray.Direction()

	v1, err := vertices[1].Subtract(origin)
	if err != nil {
		return nil
	}
	v2, err := vertices[0].Subtract(origin)
	if err != nil {
		return nil
	}

	sign, ok := edgeSign(dir, v1, v2)
	if !ok {
		return nil
	}
	positive := sign > 0

	for i := len(vertices) - 1; i > 0; i-- {
		v1 = v2
		v2, err = vertices[i].Subtract(origin)
		if err != nil {
			return nil
		}
		sign, ok = edgeSign(dir, v1, v2)
		if !ok || positive != (sign > 0) {
			return nil
		}
	}

	return []Hit{{Geometry: owner, Point: ray.At(t)}}
}

// edgeSign returns dir·(v1×v2); false when the point is on the edge or its extension
func edgeSign(dir, v1, v2 core.Vector) (float64, bool) {
	n, err := v1.Cross(v2)
	if err != nil {
		return 0, false
	}
	sign := core.AlignZero(dir.Dot(n))
	return sign, sign != 0
}
