package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Geometries is a flat, insertion-ordered collection of intersectables.
// Members may themselves be Geometries, forming a tree. It is populated
// while building a scene and only read afterwards.
type Geometries struct {
	items []Intersectable
}

// NewGeometries creates a collection holding the given members
func NewGeometries(items ...Intersectable) *Geometries {
	g := &Geometries{}
	g.Add(items...)
	return g
}

// Add appends members to the collection
func (g *Geometries) Add(items ...Intersectable) {
	g.items = append(g.items, items...)
}

// Len returns the number of direct members
func (g *Geometries) Len() int {
	return len(g.items)
}

// Intersect fans the query out to every member and concatenates their hits
// in member order. It returns nil only if no member was hit.
func (g *Geometries) Intersect(ray core.Ray, maxDistance float64) []Hit {
	var result []Hit
	for _, item := range g.items {
		if hits := item.Intersect(ray, maxDistance); len(hits) > 0 {
			result = append(result, hits...)
		}
	}
	return result
}
