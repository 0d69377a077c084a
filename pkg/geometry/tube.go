package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tube is an infinite cylindrical surface around an axis ray
type Tube struct {
	Surface
	axis   core.Ray
	radius float64
}

// NewTube creates a new infinite tube
func NewTube(axis core.Ray, radius float64, surface Surface) (*Tube, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("tube radius %g: %w", radius, ErrInvalidRadius)
	}
	return &Tube{Surface: surface, axis: axis, radius: radius}, nil
}

// Axis returns the tube's axis ray
func (t *Tube) Axis() core.Ray { return t.axis }

// Radius returns the tube's radius
func (t *Tube) Radius() float64 { return t.radius }

// Normal points from the point's projection on the axis to the point
func (t *Tube) Normal(point core.Point) (core.Vector, error) {
	return radialNormal(t.axis, point)
}

// Intersect solves the quadratic in the ray parameter after removing the
// axis-parallel parts of the direction and origin offset
func (t *Tube) Intersect(ray core.Ray, maxDistance float64) []Hit {
	var hits []Hit
	for _, tt := range lateralRoots(t.axis, t.radius, ray) {
		if inRange(tt, maxDistance) {
			hits = append(hits, Hit{Geometry: t, Point: ray.At(tt)})
		}
	}
	return hits
}

func radialNormal(axis core.Ray, point core.Point) (core.Vector, error) {
	o := axis.Origin()
	v := axis.Direction()

	op, err := point.Subtract(o)
	if err != nil {
		return core.Vector{}, ErrPointOnAxis
	}
	s := core.AlignZero(v.Dot(op))
	if s == 0 {
		return op.Normalize(), nil
	}

	n, err := point.Subtract(o.AddScaled(v, s))
	if err != nil {
		return core.Vector{}, ErrPointOnAxis
	}
	return n.Normalize(), nil
}

// perpendicular removes the component of w along the unit axis a
func perpendicular(w, a r3.Vector) r3.Vector {
	return w.Sub(a.Mul(w.Dot(a)))
}

// lateralRoots returns the ray parameters where the ray meets the infinite
// cylinder around axis, in increasing order. Tangent rays yield nothing.
func lateralRoots(axis core.Ray, radius float64, ray core.Ray) []float64 {
	va := axis.Direction().XYZ()
	vPerp := perpendicular(ray.Direction().XYZ(), va)

	a := core.AlignZero(vPerp.Norm2())
	// Ray parallel to the axis never crosses the lateral surface
	if a == 0 {
		return nil
	}

	dPerp := perpendicular(ray.Origin().XYZ().Sub(axis.Origin().XYZ()), va)
	r2 := radius * radius

	// Ray origin on the axis: b = 0 and the only positive root is r/|vPerp|
	if core.IsZero(dPerp.Norm2()) {
		return []float64{core.AlignZero(math.Sqrt(r2 / a))}
	}

	b := 2 * vPerp.Dot(dPerp)
	c := dPerp.Norm2() - r2
	disc := core.AlignZero(b*b - 4*a*c)
	if disc <= 0 {
		return nil
	}

	sq := math.Sqrt(disc)
	return []float64{
		core.AlignZero((-b - sq) / (2 * a)),
		core.AlignZero((-b + sq) / (2 * a)),
	}
}
