package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light whose intensity falls off away from its
// central direction. A larger narrow beam exponent gives a tighter cone.
type SpotLight struct {
	PointLight
	direction  core.Vector
	narrowBeam int
}

// NewSpotLight creates a new spot light aimed along direction
func NewSpotLight(intensity core.Color, position core.Point, direction core.Vector) *SpotLight {
	return &SpotLight{
		PointLight: *NewPointLight(intensity, position),
		direction:  direction.Normalize(),
		narrowBeam: 1,
	}
}

// WithNarrowBeam sets the focus exponent applied to the beam falloff
func (sl *SpotLight) WithNarrowBeam(n int) *SpotLight {
	if n < 1 {
		n = 1
	}
	sl.narrowBeam = n
	return sl
}

// WithAttenuation sets uniform kC, kL and kQ coefficients
func (sl *SpotLight) WithAttenuation(kC, kL, kQ float64) *SpotLight {
	sl.PointLight.WithAttenuation(kC, kL, kQ)
	return sl
}

// WithAttenuationTriples sets per-channel attenuation coefficients
func (sl *SpotLight) WithAttenuationTriples(a Attenuation) *SpotLight {
	sl.PointLight.WithAttenuationTriples(a)
	return sl
}

// Type returns the light type
func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Aim returns the spot light's central direction
func (sl *SpotLight) Aim() core.Vector {
	return sl.direction
}

// Intensity scales the point light intensity by max(0, dir·L)^n.
// Points behind the light receive nothing.
func (sl *SpotLight) Intensity(point core.Point) core.Color {
	l, err := sl.Direction(point)
	if err != nil {
		return core.Black
	}
	cos := core.AlignZero(sl.direction.Dot(l))
	if cos <= 0 {
		return core.Black
	}
	return sl.PointLight.Intensity(point).ScaleBy(math.Pow(cos, float64(sl.narrowBeam)))
}
