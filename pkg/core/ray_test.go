package core

import (
	"math"
	"testing"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(NewPoint(1, 1, 1), MustVector(0, 0, 5))

	if math.Abs(ray.Direction().Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", ray.Direction().Length())
	}

	same := NewRay(NewPoint(1, 1, 1), MustVector(0, 0, 1))
	if !ray.Equals(same) {
		t.Errorf("Rays with the same normalized direction should be equal: %v vs %v", ray, same)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewPoint(1, 0, 0), MustVector(0, 2, 0))

	if p := ray.At(3); !p.Equals(NewPoint(1, 3, 0)) {
		t.Errorf("Expected (1,3,0), got %v", p)
	}
	if p := ray.At(0); !p.Equals(ray.Origin()) {
		t.Errorf("Expected origin at t=0, got %v", p)
	}
}

func TestRay_FindClosestPoint(t *testing.T) {
	ray := NewRay(NewPoint(0, 0, 10), MustVector(0, 0, -1))
	near := NewPoint(0, 0, 9)
	mid := NewPoint(0, 0, 5)
	far := NewPoint(0, 0, 1)

	tests := []struct {
		name   string
		points []Point
		want   Point
		found  bool
	}{
		{"closest in the middle", []Point{far, near, mid}, near, true},
		{"closest first", []Point{near, mid, far}, near, true},
		{"closest last", []Point{mid, far, near}, near, true},
		{"empty list", nil, Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ray.FindClosestPoint(tt.points)
			if ok != tt.found {
				t.Fatalf("Expected found=%t, got %t", tt.found, ok)
			}
			if ok && !got.Equals(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewOffsetRay(t *testing.T) {
	head := NewPoint(0, 0, 0)
	normal := MustVector(0, 0, 1)

	tests := []struct {
		name      string
		direction Vector
		wantZ     float64
	}{
		{"leaving along the normal", MustVector(1, 0, 1), Delta},
		{"entering against the normal", MustVector(1, 0, -1), -Delta},
		{"tangent direction", MustVector(1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewOffsetRay(head, tt.direction, normal)
			if math.Abs(ray.Origin().Z()-tt.wantZ) > 1e-12 {
				t.Errorf("Expected origin z=%f, got %f", tt.wantZ, ray.Origin().Z())
			}
		})
	}
}

func TestColor_Operations(t *testing.T) {
	c := NewColor(100, 50, 300)

	if got := c.Add(NewColor(1, 2, 3), NewColor(1, 1, 1)); !got.Equals(NewColor(102, 53, 304)) {
		t.Errorf("Unexpected sum %v", got)
	}
	if got := c.Scale(NewDouble3(0.5, 2, 0)); !got.Equals(NewColor(50, 100, 0)) {
		t.Errorf("Unexpected scale %v", got)
	}
	if got := c.Reduce(2); !got.Equals(NewColor(50, 25, 150)) {
		t.Errorf("Unexpected reduce %v", got)
	}

	rgba := c.RGBA()
	if rgba.R != 100 || rgba.G != 50 || rgba.B != 255 || rgba.A != 255 {
		t.Errorf("Expected clamped (100,50,255,255), got %v", rgba)
	}
}

func TestColor_RGBAClamp(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		expected [3]uint8
	}{
		{"in range", NewColor(10.4, 10.6, 200), [3]uint8{10, 11, 200}},
		{"negative", NewColor(-5, 0, 1), [3]uint8{0, 0, 1}},
		{"above range", NewColor(300, 255.4, math.Inf(1)), [3]uint8{255, 255, 255}},
		{"not a number", NewColor(math.NaN(), math.Inf(1), math.NaN()), [3]uint8{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgba := tt.color.RGBA()
			if got := [3]uint8{rgba.R, rgba.G, rgba.B}; got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDouble3_LowerThan(t *testing.T) {
	if !NewDouble3(0.1, 0.2, 0.3).LowerThan(0.5) {
		t.Error("Expected all components lower than 0.5")
	}
	if NewDouble3(0.1, 0.6, 0.3).LowerThan(0.5) {
		t.Error("One component above the threshold should fail LowerThan")
	}
}
