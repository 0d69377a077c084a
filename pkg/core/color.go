package core

import (
	"image/color"
	"math"
)

// Color is an unclamped RGB triple on a 0-255 scale. Values outside that
// range are legal while shading; clamping happens when converting to RGBA.
type Color struct {
	rgb Double3
}

// Black is the zero color
var Black = Color{}

// NewColor creates a color from red, green and blue intensities
func NewColor(r, g, b float64) Color {
	return Color{rgb: Double3{r, g, b}}
}

// R returns the red component
func (c Color) R() float64 { return c.rgb.D1 }

// G returns the green component
func (c Color) G() float64 { return c.rgb.D2 }

// B returns the blue component
func (c Color) B() float64 { return c.rgb.D3 }

// Add returns the sum of this color and all others
func (c Color) Add(others ...Color) Color {
	sum := c.rgb
	for _, o := range others {
		sum = sum.Add(o.rgb)
	}
	return Color{rgb: sum}
}

// Scale multiplies each channel by the matching attenuation component
func (c Color) Scale(k Double3) Color {
	return Color{rgb: c.rgb.Product(k)}
}

// ScaleBy multiplies every channel by k
func (c Color) ScaleBy(k float64) Color {
	return Color{rgb: c.rgb.Scale(k)}
}

// Reduce divides every channel by k
func (c Color) Reduce(k float64) Color {
	return Color{rgb: c.rgb.Reduce(k)}
}

// ReduceBy divides each channel by the matching component of k
func (c Color) ReduceBy(k Double3) Color {
	return Color{rgb: Double3{c.rgb.D1 / k.D1, c.rgb.D2 / k.D2, c.rgb.D3 / k.D3}}
}

// Equals compares two colors channel-wise within Epsilon
func (c Color) Equals(other Color) bool {
	return c.rgb.Equals(other.rgb)
}

// RGBA clamps the color to [0,255] and converts it to an opaque color.RGBA
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: clampChannel(c.rgb.D1),
		G: clampChannel(c.rgb.D2),
		B: clampChannel(c.rgb.D3),
		A: 255,
	}
}

// clampChannel maps NaN to 0
func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

func (c Color) String() string {
	return "rgb" + c.rgb.String()
}
