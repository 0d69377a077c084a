package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	ErrCameraNotOrthogonal = errors.New("camera to and up vectors are not orthogonal")
	ErrInvalidViewPlane    = errors.New("view plane size and distance must be positive")
	ErrMissingImageWriter  = errors.New("camera has no image writer")
	ErrMissingRayTracer    = errors.New("camera has no ray tracer")
)

// RayTracer computes the color seen along a ray
type RayTracer interface {
	TraceRay(ray core.Ray) core.Color
}

// ImageWriter receives rendered pixels. WritePixel may be called
// concurrently for pixels in different rows.
type ImageWriter interface {
	Width() int
	Height() int
	WritePixel(col, row int, color core.Color)
	PrintGrid(interval int, color core.Color)
	WriteToImage() error
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// discardLogger drops all messages
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
