package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is an infinitely distant light shining along a fixed direction
type DirectionalLight struct {
	intensity core.Color
	direction core.Vector
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(intensity core.Color, direction core.Vector) *DirectionalLight {
	return &DirectionalLight{intensity: intensity, direction: direction.Normalize()}
}

// Type returns the light type
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Intensity is the same everywhere
func (dl *DirectionalLight) Intensity(core.Point) core.Color {
	return dl.intensity
}

// Direction is the same everywhere
func (dl *DirectionalLight) Direction(core.Point) (core.Vector, error) {
	return dl.direction, nil
}

// Distance is always +Inf
func (dl *DirectionalLight) Distance(core.Point) float64 {
	return math.Inf(1)
}
