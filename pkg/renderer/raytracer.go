package renderer

import (
	"math"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// MaxCalcColorLevel bounds the shading recursion depth
	MaxCalcColorLevel = 10
	// MinCalcColorK is the attenuation below which a contribution is dropped
	MinCalcColorK = 0.001
)

// BasicRayTracer shades rays with Phong local lighting, transparent
// shadows, and recursive reflection and refraction. It only reads the
// scene, so one instance can serve many goroutines.
type BasicRayTracer struct {
	scene *scene.Scene
	rays  atomic.Int64
}

// NewBasicRayTracer creates a ray tracer for the scene
func NewBasicRayTracer(s *scene.Scene) *BasicRayTracer {
	return &BasicRayTracer{scene: s}
}

// RaysTraced returns how many rays were cast so far, including shadow rays
func (rt *BasicRayTracer) RaysTraced() int64 {
	return rt.rays.Load()
}

// TraceRay returns the background color if nothing is hit, otherwise the
// shaded color of the closest hit plus the ambient light
func (rt *BasicRayTracer) TraceRay(ray core.Ray) core.Color {
	hit, ok := rt.findClosestHit(ray)
	if !ok {
		return rt.scene.Background()
	}
	return rt.calcColor(hit, ray, MaxCalcColorLevel, core.One3).
		Add(rt.scene.AmbientLight().Intensity())
}

func (rt *BasicRayTracer) findClosestHit(ray core.Ray) (geometry.Hit, bool) {
	rt.rays.Add(1)
	hits := rt.scene.Geometries().Intersect(ray, math.Inf(1))
	return geometry.FindClosestHit(ray, hits)
}

// calcColor is local effects plus, below the last level, global effects
func (rt *BasicRayTracer) calcColor(hit geometry.Hit, ray core.Ray, level int, k core.Double3) core.Color {
	color := rt.calcLocalEffects(hit, ray, k)
	if level == 1 {
		return color
	}
	return color.Add(rt.calcGlobalEffects(hit, ray, level, k))
}

func (rt *BasicRayTracer) calcLocalEffects(hit geometry.Hit, ray core.Ray, k core.Double3) core.Color {
	color := hit.Geometry.Emission()

	n, err := hit.Geometry.Normal(hit.Point)
	if err != nil {
		return color
	}
	v := ray.Direction()
	nv := core.AlignZero(n.Dot(v))
	if nv == 0 {
		return color
	}

	mat := hit.Geometry.Material()
	for _, light := range rt.scene.Lights() {
		l, err := light.Direction(hit.Point)
		if err != nil {
			continue
		}
		nl := core.AlignZero(n.Dot(l))
		// Light and viewer must be on the same side of the surface
		if nl*nv <= 0 {
			continue
		}

		ktr := rt.transparency(hit, light, l, n)
		if ktr.Product(k).LowerThan(MinCalcColorK) {
			continue
		}

		iL := light.Intensity(hit.Point).Scale(ktr)
		diffuse := mat.KD.Scale(math.Abs(nl))
		specular := calcSpecular(mat.KS, mat.Shininess, n, l, v)
		color = color.Add(iL.Scale(diffuse.Add(specular)))
	}
	return color
}

// calcSpecular returns kS * max(0, -r·v)^shininess where r is l reflected about n
func calcSpecular(kS core.Double3, shininess int, n, l, v core.Vector) core.Double3 {
	r := l.Reflect(n)
	minusVR := -core.AlignZero(r.Dot(v))
	if minusVR <= 0 {
		return core.Zero3
	}
	return kS.Scale(math.Pow(minusVR, float64(shininess)))
}

// transparency multiplies the transmission coefficients of everything
// between the point and the light
func (rt *BasicRayTracer) transparency(hit geometry.Hit, light lights.Light, l, n core.Vector) core.Double3 {
	shadowRay := core.NewOffsetRay(hit.Point, l.Negate(), n)
	rt.rays.Add(1)

	ktr := core.One3
	for _, h := range rt.scene.Geometries().Intersect(shadowRay, light.Distance(hit.Point)) {
		mat := h.Geometry.Material()
		if mat.IsOpaque() {
			return core.Zero3
		}
		ktr = ktr.Product(mat.KT)
		if ktr.LowerThan(MinCalcColorK) {
			return core.Zero3
		}
	}
	return ktr
}

func (rt *BasicRayTracer) calcGlobalEffects(hit geometry.Hit, ray core.Ray, level int, k core.Double3) core.Color {
	n, err := hit.Geometry.Normal(hit.Point)
	if err != nil {
		return core.Black
	}
	v := ray.Direction()
	mat := hit.Geometry.Material()

	color := core.Black
	if kr := k.Product(mat.KR); !kr.LowerThan(MinCalcColorK) {
		reflected := core.NewOffsetRay(hit.Point, v.Reflect(n), n)
		color = color.Add(rt.calcGlobalEffect(reflected, level, kr, mat.KR))
	}
	if kt := k.Product(mat.KT); !kt.LowerThan(MinCalcColorK) {
		refracted := core.NewOffsetRay(hit.Point, v, n)
		color = color.Add(rt.calcGlobalEffect(refracted, level, kt, mat.KT))
	}
	return color
}

func (rt *BasicRayTracer) calcGlobalEffect(ray core.Ray, level int, kx, kxMaterial core.Double3) core.Color {
	hit, ok := rt.findClosestHit(ray)
	if !ok {
		return rt.scene.Background().Scale(kxMaterial)
	}
	return rt.calcColor(hit, ray, level-1, kx).Scale(kxMaterial)
}
