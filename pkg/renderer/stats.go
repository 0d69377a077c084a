package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	PrimaryRays  int           // Camera rays traced
	Subdivisions int           // Adaptive supersampling regions that were split
	Duration     time.Duration // Wall time of the whole render
}

// Add accumulates another set of statistics, keeping the longer duration
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryRays += other.PrimaryRays
	s.Subdivisions += other.Subdivisions
	if other.Duration > s.Duration {
		s.Duration = other.Duration
	}
}

// AverageRaysPerPixel returns primary rays divided by pixels
func (s RenderStats) AverageRaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PrimaryRays) / float64(s.TotalPixels)
}
