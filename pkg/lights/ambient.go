package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// AmbientLight is a scene-wide constant illumination
type AmbientLight struct {
	intensity core.Color
}

// NoAmbient contributes nothing
var NoAmbient = AmbientLight{}

// NewAmbientLight creates an ambient light of intensity iA attenuated by kA
func NewAmbientLight(iA core.Color, kA core.Double3) AmbientLight {
	return AmbientLight{intensity: iA.Scale(kA)}
}

// Intensity returns the ambient color
func (a AmbientLight) Intensity() core.Color {
	return a.intensity
}
