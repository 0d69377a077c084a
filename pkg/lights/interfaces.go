package lights

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
)

var (
	// ErrPointAtLight is returned when a direction is requested for the light's own position
	ErrPointAtLight = errors.New("point coincides with the light position")
	// ErrInvalidAttenuation is returned for negative coefficients or a channel whose coefficients are all zero
	ErrInvalidAttenuation = errors.New("invalid attenuation")
)

// Light is a non-ambient light source used for local shading
type Light interface {
	Type() LightType

	// Intensity returns the light's color arriving at the point
	Intensity(point core.Point) core.Color

	// Direction returns the unit vector FROM the light TO the point
	Direction(point core.Point) (core.Vector, error)

	// Distance returns the distance from the light to the point.
	// Lights without a position report +Inf.
	Distance(point core.Point) float64
}
