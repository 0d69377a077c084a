package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewSphere_InvalidRadius(t *testing.T) {
	_, err := NewSphere(core.Origin, 0, Surface{})
	if !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", err)
	}
}

func TestSphere_Normal(t *testing.T) {
	sphere, _ := NewSphere(core.NewPoint(0, 0, 1), 5, Surface{})

	n, err := sphere.Normal(core.NewPoint(0, 0, 6))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Sphere's normal is not a unit vector: %f", n.Length())
	}
	if !n.Equals(core.MustVector(0, 0, 1)) {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}
}

func TestSphere_Intersect(t *testing.T) {
	sphere, _ := NewSphere(core.NewPoint(1, 0, 0), 1, Surface{})
	p1 := core.NewPoint(0.0651530771650466, 0.355051025721682, 0)
	p2 := core.NewPoint(1.53484692283495, 0.844948974278318, 0)

	tests := []struct {
		name     string
		origin   core.Point
		dir      core.Vector
		expected []core.Point
	}{
		// Equivalence partitions
		{"line outside sphere", core.NewPoint(-1, 0, 0), core.MustVector(1, 1, 0), nil},
		{"ray crosses sphere", core.NewPoint(-1, 0, 0), core.MustVector(3, 1, 0), []core.Point{p1, p2}},
		{"ray starts inside", core.NewPoint(0.5, 0.5, 0), core.MustVector(3, 1, 0), []core.Point{p2}},
		{"ray starts after sphere", core.NewPoint(2, 1, 0), core.MustVector(3, 1, 0), nil},

		// Line crosses the sphere but not the center
		{"starts on sphere going inside", core.NewPoint(1, -1, 0), core.MustVector(1, 1, 0), []core.Point{core.NewPoint(2, 0, 0)}},
		{"starts on sphere going outside", core.NewPoint(2, 0, 0), core.MustVector(1, 1, 0), nil},

		// Line through the center
		{"through center from outside", core.NewPoint(1, -2, 0), core.MustVector(0, 1, 0), []core.Point{core.NewPoint(1, -1, 0), core.NewPoint(1, 1, 0)}},
		{"through center from surface", core.NewPoint(1, -1, 0), core.MustVector(0, 1, 0), []core.Point{core.NewPoint(1, 1, 0)}},
		{"through center from inside", core.NewPoint(1, 0.5, 0), core.MustVector(0, 1, 0), []core.Point{core.NewPoint(1, 1, 0)}},
		{"starts at center", core.NewPoint(1, 0, 0), core.MustVector(0, 1, 0), []core.Point{core.NewPoint(1, 1, 0)}},
		{"through center leaving surface", core.NewPoint(1, 1, 0), core.MustVector(0, 1, 0), nil},
		{"through center after sphere", core.NewPoint(1, 2, 0), core.MustVector(0, 1, 0), nil},

		// Tangent lines
		{"tangent before point", core.NewPoint(0, 1, 0), core.MustVector(1, 0, 0), nil},
		{"tangent at point", core.NewPoint(1, 1, 0), core.MustVector(1, 0, 0), nil},
		{"tangent after point", core.NewPoint(2, 1, 0), core.MustVector(1, 0, 0), nil},

		// Special cases
		{"orthogonal to center line", core.NewPoint(-1, 0, 0), core.MustVector(0, 0, 1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := FindIntersections(sphere, core.NewRay(tt.origin, tt.dir))
			assertPoints(t, Points(hits), tt.expected)
			for _, h := range hits {
				if h.Geometry != sphere {
					t.Errorf("Hit references %v, expected the sphere", h.Geometry)
				}
			}
		})
	}
}

func TestSphere_Intersect_MaxDistance(t *testing.T) {
	sphere, _ := NewSphere(core.NewPoint(1, 0, 0), 1, Surface{})
	ray := core.NewRay(core.NewPoint(1, -2, 0), core.MustVector(0, 1, 0))

	tests := []struct {
		name        string
		maxDistance float64
		expected    int
	}{
		{"both points in range", 10, 2},
		{"far point exactly at bound", 3, 2},
		{"only near point in range", 2, 1},
		{"no point in range", 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := sphere.Intersect(ray, tt.maxDistance)
			if len(hits) != tt.expected {
				t.Errorf("Expected %d hits, got %d", tt.expected, len(hits))
			}
		})
	}
}

// assertPoints compares hit points in order
func assertPoints(t *testing.T, got, expected []core.Point) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d points, got %d: %v", len(expected), len(got), got)
	}
	for i := range got {
		if got[i].Distance(expected[i]) > 1e-9 {
			t.Errorf("Point %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}
