package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewPlaneFromPoints_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 core.Point
		wantErr    error
	}{
		{"collinear points", core.NewPoint(0, 0, 1), core.NewPoint(0, 0, 2), core.NewPoint(0, 0, 3), ErrCollinearPoints},
		{"two equal points", core.NewPoint(0, 0, 1), core.NewPoint(0, 0, 1), core.NewPoint(1, 0, 0), ErrDuplicatePoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlaneFromPoints(tt.p1, tt.p2, tt.p3, Surface{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPlane_Normal(t *testing.T) {
	pts := []core.Point{core.NewPoint(0, 0, 1), core.NewPoint(1, 0, 0), core.NewPoint(0, 1, 0)}
	plane, err := NewPlaneFromPoints(pts[0], pts[1], pts[2], Surface{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	n, _ := plane.Normal(pts[0])
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("Plane's normal is not a unit vector: %f", n.Length())
	}
	assertOrthogonalToEdges(t, n, pts)
}

func TestPlane_Intersect(t *testing.T) {
	plane := NewPlane(core.NewPoint(0, 0, 1), core.MustVector(0, 0, 1), Surface{})

	tests := []struct {
		name     string
		origin   core.Point
		dir      core.Vector
		expected []core.Point
	}{
		{"ray crosses plane", core.NewPoint(1, 1, 0), core.MustVector(0, 0, 1), []core.Point{core.NewPoint(1, 1, 1)}},
		{"oblique crossing", core.NewPoint(0, 0, 0), core.MustVector(1, 0, 1), []core.Point{core.NewPoint(1, 0, 1)}},
		{"ray points away", core.NewPoint(1, 1, 0), core.MustVector(0, 0, -1), nil},
		{"ray parallel above plane", core.NewPoint(0, 0, 2), core.MustVector(1, 0, 0), nil},
		{"ray inside plane", core.NewPoint(0, 5, 1), core.MustVector(1, 0, 0), nil},
		{"ray starts on plane", core.NewPoint(3, 3, 1), core.MustVector(0, 1, 1), nil},
		{"ray starts at reference point", core.NewPoint(0, 0, 1), core.MustVector(0, 1, 1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := FindIntersections(plane, core.NewRay(tt.origin, tt.dir))
			assertPoints(t, Points(hits), tt.expected)
		})
	}
}

func TestPlane_Intersect_BeyondMaxDistance(t *testing.T) {
	plane := NewPlane(core.NewPoint(0, 0, 10), core.MustVector(0, 0, 1), Surface{})
	ray := core.NewRay(core.Origin, core.MustVector(0, 0, 1))

	if hits := plane.Intersect(ray, 5); hits != nil {
		t.Errorf("Expected no hits beyond max distance, got %v", Points(hits))
	}
	if hits := plane.Intersect(ray, 10); len(hits) != 1 {
		t.Errorf("Expected a hit exactly at max distance, got %d", len(hits))
	}
}

// assertOrthogonalToEdges checks n against the edge vectors of a vertex loop
func assertOrthogonalToEdges(t *testing.T, n core.Vector, pts []core.Point) {
	t.Helper()
	for i := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		edge, err := pts[i].Subtract(prev)
		if err != nil {
			t.Fatalf("Degenerate edge: %v", err)
		}
		if !core.IsZero(n.Dot(edge)) {
			t.Errorf("Normal %v is not orthogonal to edge %v", n, edge)
		}
	}
}
