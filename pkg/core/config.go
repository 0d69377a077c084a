package core

// CameraConfig describes the camera's placement and view plane
type CameraConfig struct {
	Position Point  // Camera location
	To       Vector // Viewing direction
	Up       Vector // Up direction, must be orthogonal to To

	ViewPlaneWidth    float64 // View plane size in world units
	ViewPlaneHeight   float64
	ViewPlaneDistance float64 // Distance from the camera to the view plane
}

// RenderConfig contains image and sampling settings for a render
type RenderConfig struct {
	Width          int   // Image width in pixels
	Height         int   // Image height in pixels
	RaysPerPixel   int   // Rays per pixel; 1 disables supersampling
	AdaptiveSample bool  // Use adaptive supersampling when RaysPerPixel > 1
	Workers        int   // Parallel row workers (0 or 1 = sequential)
	Seed           int64 // Seed for jittered sampling
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:          500,
		Height:         500,
		RaysPerPixel:   1,
		AdaptiveSample: false,
		Workers:        1,
		Seed:           42,
	}
}
