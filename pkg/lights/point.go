package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Attenuation holds the constant, linear and quadratic falloff
// coefficients of a positional light
type Attenuation struct {
	Kc core.Double3
	Kl core.Double3
	Kq core.Double3
}

// NoAttenuation keeps the full intensity at every distance
var NoAttenuation = Attenuation{Kc: core.One3}

// Validate requires non-negative coefficients with at least one of kC, kL
// and kQ positive in every channel
func (a Attenuation) Validate() error {
	channels := [3][3]float64{
		{a.Kc.D1, a.Kl.D1, a.Kq.D1},
		{a.Kc.D2, a.Kl.D2, a.Kq.D2},
		{a.Kc.D3, a.Kl.D3, a.Kq.D3},
	}
	for i, ks := range channels {
		if ks[0] < 0 || ks[1] < 0 || ks[2] < 0 {
			return fmt.Errorf("%w: negative coefficient in channel %d", ErrInvalidAttenuation, i)
		}
		if ks[0] == 0 && ks[1] == 0 && ks[2] == 0 {
			return fmt.Errorf("%w: kc, kl and kq are all zero in channel %d", ErrInvalidAttenuation, i)
		}
	}
	return nil
}

// factor returns kC + kL*d + kQ*d^2
func (a Attenuation) factor(d float64) core.Double3 {
	return a.Kc.Add(a.Kl.Scale(d)).Add(a.Kq.Scale(d * d))
}

// PointLight emits in all directions from a position
type PointLight struct {
	intensity   core.Color
	position    core.Point
	attenuation Attenuation
}

// NewPointLight creates a new point light without distance falloff
func NewPointLight(intensity core.Color, position core.Point) *PointLight {
	return &PointLight{
		intensity:   intensity,
		position:    position,
		attenuation: NoAttenuation,
	}
}

// WithAttenuation sets uniform kC, kL and kQ coefficients
func (pl *PointLight) WithAttenuation(kC, kL, kQ float64) *PointLight {
	pl.attenuation = Attenuation{
		Kc: core.Uniform(kC),
		Kl: core.Uniform(kL),
		Kq: core.Uniform(kQ),
	}
	return pl
}

// WithAttenuationTriples sets per-channel attenuation coefficients
func (pl *PointLight) WithAttenuationTriples(a Attenuation) *PointLight {
	pl.attenuation = a
	return pl
}

// Type returns the light type
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Position returns the light's position
func (pl *PointLight) Position() core.Point {
	return pl.position
}

// Intensity divides the emitted color by the attenuation factor at the point's distance
func (pl *PointLight) Intensity(point core.Point) core.Color {
	return pl.intensity.ReduceBy(pl.attenuation.factor(pl.Distance(point)))
}

// Direction returns the normalized vector from the light to the point
func (pl *PointLight) Direction(point core.Point) (core.Vector, error) {
	l, err := point.Subtract(pl.position)
	if err != nil {
		return core.Vector{}, fmt.Errorf("%w: %v", ErrPointAtLight, pl.position)
	}
	return l.Normalize(), nil
}

// Distance returns the distance from the light to the point
func (pl *PointLight) Distance(point core.Point) float64 {
	return point.Distance(pl.position)
}
