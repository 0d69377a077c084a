package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds the Phong-style coefficients of a surface. Values are
// immutable once attached to a shape; the With* helpers return copies.
type Material struct {
	KD        core.Double3 // Diffuse attenuation
	KS        core.Double3 // Specular attenuation
	Shininess int          // Specular exponent
	KT        core.Double3 // Transmission (refraction) attenuation
	KR        core.Double3 // Reflection attenuation
}

// NewMaterial creates a material with the given uniform diffuse and specular
// coefficients and shininess, no reflection and no transparency
func NewMaterial(kD, kS float64, shininess int) Material {
	return Material{
		KD:        core.Uniform(kD),
		KS:        core.Uniform(kS),
		Shininess: shininess,
	}
}

// WithDiffuse returns a copy with per-channel diffuse attenuation
func (m Material) WithDiffuse(kD core.Double3) Material {
	m.KD = kD
	return m
}

// WithSpecular returns a copy with per-channel specular attenuation
func (m Material) WithSpecular(kS core.Double3) Material {
	m.KS = kS
	return m
}

// WithShininess returns a copy with a new specular exponent
func (m Material) WithShininess(n int) Material {
	m.Shininess = n
	return m
}

// WithTransparency returns a copy with uniform transmission kT
func (m Material) WithTransparency(kT float64) Material {
	m.KT = core.Uniform(kT)
	return m
}

// WithReflection returns a copy with uniform reflection kR
func (m Material) WithReflection(kR float64) Material {
	m.KR = core.Uniform(kR)
	return m
}

// IsOpaque reports whether the material blocks all light
func (m Material) IsOpaque() bool {
	return m.KT.Equals(core.Zero3)
}
