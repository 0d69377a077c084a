package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a finite cylinder of the given height along its axis ray.
// When capped is false only the lateral surface is intersected.
type Cylinder struct {
	Surface
	axis   core.Ray
	radius float64
	height float64
	capped bool
}

// NewCylinder creates a new cylinder starting at the axis origin
func NewCylinder(axis core.Ray, radius, height float64, capped bool, surface Surface) (*Cylinder, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("cylinder radius %g: %w", radius, ErrInvalidRadius)
	}
	if height <= 0 {
		return nil, fmt.Errorf("cylinder height %g: %w", height, ErrInvalidHeight)
	}
	return &Cylinder{
		Surface: surface,
		axis:    axis,
		radius:  radius,
		height:  height,
		capped:  capped,
	}, nil
}

// Axis returns the axis ray; its origin is the center of the bottom base
func (c *Cylinder) Axis() core.Ray { return c.axis }

// Radius returns the cylinder's radius
func (c *Cylinder) Radius() float64 { return c.radius }

// Height returns the cylinder's height
func (c *Cylinder) Height() float64 { return c.height }

// Capped reports whether the base discs are intersected
func (c *Cylinder) Capped() bool { return c.capped }

// Normal returns the axis direction on either base plane and the radial
// direction on the lateral surface
func (c *Cylinder) Normal(point core.Point) (core.Vector, error) {
	o := c.axis.Origin()
	v := c.axis.Direction()

	op, err := point.Subtract(o)
	if err != nil {
		return v, nil
	}

	t := core.AlignZero(op.Dot(v))
	if t == 0 || core.IsZero(c.height-t) {
		return v, nil
	}

	n, err := point.Subtract(o.AddScaled(v, t))
	if err != nil {
		return core.Vector{}, ErrPointOnAxis
	}
	return n.Normalize(), nil
}

// Intersect keeps lateral hits strictly between the two bases and, for
// capped cylinders, adds hits on the base discs
func (c *Cylinder) Intersect(ray core.Ray, maxDistance float64) []Hit {
	var ts []float64

	origin := c.axis.Origin().XYZ()
	axis := c.axis.Direction().XYZ()

	for _, t := range lateralRoots(c.axis, c.radius, ray) {
		h := core.AlignZero(ray.At(t).XYZ().Sub(origin).Dot(axis))
		if h > 0 && core.AlignZero(h-c.height) < 0 {
			ts = append(ts, t)
		}
	}

	if c.capped {
		ts = append(ts, c.capRoots(ray)...)
	}

	sort.Float64s(ts)

	var hits []Hit
	for _, t := range ts {
		if inRange(t, maxDistance) {
			hits = append(hits, Hit{Geometry: c, Point: ray.At(t)})
		}
	}
	return hits
}

// capRoots intersects the two base discs
func (c *Cylinder) capRoots(ray core.Ray) []float64 {
	axis := c.axis.Direction().XYZ()
	denom := core.AlignZero(ray.Direction().XYZ().Dot(axis))
	if denom == 0 {
		return nil
	}

	var ts []float64
	r2 := c.radius * c.radius
	for _, h := range [2]float64{0, c.height} {
		center := c.axis.At(h).XYZ()
		t := core.AlignZero(center.Sub(ray.Origin().XYZ()).Dot(axis) / denom)
		if t <= 0 {
			continue
		}
		if core.AlignZero(ray.At(t).XYZ().Sub(center).Norm2()-r2) < 0 {
			ts = append(ts, t)
		}
	}
	return ts
}
