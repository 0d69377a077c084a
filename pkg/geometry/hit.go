package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Hit is a point where a ray meets a geometry
type Hit struct {
	Geometry Geometry
	Point    core.Point
}

// FindClosestHit returns the hit nearest to the ray origin; false if hits is empty
func FindClosestHit(ray core.Ray, hits []Hit) (Hit, bool) {
	idx := core.ClosestIndex(ray.Origin(), len(hits), func(i int) core.Point { return hits[i].Point })
	if idx < 0 {
		return Hit{}, false
	}
	return hits[idx], true
}

// Points strips the geometry from a list of hits
func Points(hits []Hit) []core.Point {
	if hits == nil {
		return nil
	}
	points := make([]core.Point, len(hits))
	for i, h := range hits {
		points[i] = h.Point
	}
	return points
}
