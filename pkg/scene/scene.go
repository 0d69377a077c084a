package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for shading. It is created by a
// Builder and never modified afterwards.
type Scene struct {
	name       string
	geometries *geometry.Geometries
	background core.Color
	ambient    lights.AmbientLight
	lights     []lights.Light
}

// Name returns the scene name
func (s *Scene) Name() string { return s.name }

// Geometries returns the scene's geometry aggregate
func (s *Scene) Geometries() *geometry.Geometries { return s.geometries }

// Background returns the color seen by rays that hit nothing
func (s *Scene) Background() core.Color { return s.background }

// AmbientLight returns the scene-wide ambient light
func (s *Scene) AmbientLight() lights.AmbientLight { return s.ambient }

// Lights returns the non-ambient light sources in insertion order
func (s *Scene) Lights() []lights.Light { return s.lights }

// Builder accumulates scene content. The zero background is black and the
// zero ambient light is lights.NoAmbient.
type Builder struct {
	name       string
	geometries *geometry.Geometries
	background core.Color
	ambient    lights.AmbientLight
	lights     []lights.Light
}

// NewBuilder creates a new scene builder
func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		geometries: geometry.NewGeometries(),
		ambient:    lights.NoAmbient,
	}
}

// SetBackground sets the background color
func (b *Builder) SetBackground(c core.Color) *Builder {
	b.background = c
	return b
}

// SetAmbientLight sets the ambient light
func (b *Builder) SetAmbientLight(a lights.AmbientLight) *Builder {
	b.ambient = a
	return b
}

// AddGeometry appends shapes or nested aggregates
func (b *Builder) AddGeometry(items ...geometry.Intersectable) *Builder {
	b.geometries.Add(items...)
	return b
}

// AddLight appends light sources
func (b *Builder) AddLight(ls ...lights.Light) *Builder {
	b.lights = append(b.lights, ls...)
	return b
}

// Build returns the finished scene. The builder should not be reused.
func (b *Builder) Build() *Scene {
	sceneLights := make([]lights.Light, len(b.lights))
	copy(sceneLights, b.lights)
	return &Scene{
		name:       b.name,
		geometries: b.geometries,
		background: b.background,
		ambient:    b.ambient,
		lights:     sceneLights,
	}
}

// Preset bundles a scene with the camera and render settings it was designed for
type Preset struct {
	Scene  *Scene
	Camera core.CameraConfig
	Render core.RenderConfig
}
