package renderer

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// mockImageWriter records pixels in memory
type mockImageWriter struct {
	width, height int
	pixels        [][]core.Color
	written       [][]int
	gridInterval  int
	flushed       bool
}

func newMockImageWriter(width, height int) *mockImageWriter {
	w := &mockImageWriter{width: width, height: height}
	w.pixels = make([][]core.Color, height)
	w.written = make([][]int, height)
	for row := range w.pixels {
		w.pixels[row] = make([]core.Color, width)
		w.written[row] = make([]int, width)
	}
	return w
}

func (w *mockImageWriter) Width() int  { return w.width }
func (w *mockImageWriter) Height() int { return w.height }

func (w *mockImageWriter) WritePixel(col, row int, color core.Color) {
	w.pixels[row][col] = color
	w.written[row][col]++
}

func (w *mockImageWriter) PrintGrid(interval int, color core.Color) { w.gridInterval = interval }

func (w *mockImageWriter) WriteToImage() error {
	w.flushed = true
	return nil
}

// directionTracer colors a ray by its direction; it is safe for concurrent use
type directionTracer struct{}

func (directionTracer) TraceRay(ray core.Ray) core.Color {
	d := ray.Direction()
	return core.NewColor(d.X()*1000, d.Y()*1000, d.Z()*1000)
}

// edgeTracer returns white for rays pointing toward +x and black elsewhere
type edgeTracer struct{}

func (edgeTracer) TraceRay(ray core.Ray) core.Color {
	if ray.Direction().X() > 0.001 {
		return core.NewColor(255, 255, 255)
	}
	return core.Black
}

// constantTracer returns the same color for every ray
type constantTracer struct{ color core.Color }

func (c constantTracer) TraceRay(core.Ray) core.Color { return c.color }

func testCameraConfig() core.CameraConfig {
	return core.CameraConfig{
		Position:          core.Origin,
		To:                core.MustVector(0, 0, -1),
		Up:                core.MustVector(0, -1, 0),
		ViewPlaneWidth:    3,
		ViewPlaneHeight:   3,
		ViewPlaneDistance: 10,
	}
}

func TestNewCamera_Invalid(t *testing.T) {
	render := core.DefaultRenderConfig()

	tests := []struct {
		name    string
		modify  func(cfg *core.CameraConfig)
		wantErr error
	}{
		{"not orthogonal", func(cfg *core.CameraConfig) { cfg.Up = core.MustVector(0, 1, 1) }, ErrCameraNotOrthogonal},
		{"zero width", func(cfg *core.CameraConfig) { cfg.ViewPlaneWidth = 0 }, ErrInvalidViewPlane},
		{"negative distance", func(cfg *core.CameraConfig) { cfg.ViewPlaneDistance = -1 }, ErrInvalidViewPlane},
		{"missing direction", func(cfg *core.CameraConfig) { cfg.To = core.Vector{} }, core.ErrZeroVector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testCameraConfig()
			tt.modify(&cfg)
			if _, err := NewCamera(cfg, render); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewCamera_Basis(t *testing.T) {
	cfg := testCameraConfig()
	cfg.To = core.MustVector(0, 0, -5)
	cfg.Up = core.MustVector(0, -2, 0)

	camera, err := NewCamera(cfg, core.DefaultRenderConfig())
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	if !camera.To().Equals(core.MustVector(0, 0, -1)) {
		t.Errorf("Expected normalized to, got %v", camera.To())
	}
	if !camera.Up().Equals(core.MustVector(0, -1, 0)) {
		t.Errorf("Expected normalized up, got %v", camera.Up())
	}
	// right = to x up
	if !camera.Right().Equals(core.MustVector(-1, 0, 0)) {
		t.Errorf("Expected right (-1,0,0), got %v", camera.Right())
	}
}

func TestCamera_ConstructRay(t *testing.T) {
	camera, err := NewCamera(testCameraConfig(), core.DefaultRenderConfig())
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	tests := []struct {
		name     string
		nX, nY   int
		col, row int
		expected core.Vector
	}{
		{"3x3 center", 3, 3, 1, 1, core.MustVector(0, 0, -10)},
		{"3x3 side", 3, 3, 0, 1, core.MustVector(1, 0, -10)},
		{"3x3 top", 3, 3, 1, 0, core.MustVector(0, -1, -10)},
		{"3x3 corner", 3, 3, 0, 0, core.MustVector(1, -1, -10)},
		{"3x3 opposite corner", 3, 3, 2, 2, core.MustVector(-1, 1, -10)},
		{"6x6 inner pixel", 6, 6, 2, 3, core.MustVector(0.25, 0.25, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.ConstructRay(tt.nX, tt.nY, tt.col, tt.row)
			expected := core.NewRay(core.Origin, tt.expected)
			if !ray.Equals(expected) {
				t.Errorf("Expected %v, got %v", expected, ray)
			}
		})
	}
}

func TestCamera_ConstructRays_Jitter(t *testing.T) {
	render := core.DefaultRenderConfig()
	render.RaysPerPixel = 50
	camera, err := NewCamera(testCameraConfig(), render)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	rays := camera.ConstructRays(3, 3, 0, 0, rand.New(rand.NewSource(1)))
	if len(rays) != 50 {
		t.Fatalf("Expected 50 rays, got %d", len(rays))
	}

	// Pixel (0,0) covers x in [0.5,1.5] and y in [-1.5,-0.5] on the plane z=-10
	for i, ray := range rays {
		if !ray.Origin().Equals(core.Origin) {
			t.Errorf("Ray %d does not start at the camera", i)
		}
		d := ray.Direction()
		tPlane := -10 / d.Z()
		x, y := d.X()*tPlane, d.Y()*tPlane
		if x < 0.5-1e-9 || x > 1.5+1e-9 || y < -1.5-1e-9 || y > -0.5+1e-9 {
			t.Errorf("Ray %d lands outside the pixel at (%f,%f)", i, x, y)
		}
	}
}

func TestCamera_RenderImage_MissingResources(t *testing.T) {
	camera, _ := NewCamera(testCameraConfig(), core.DefaultRenderConfig())

	if err := camera.RenderImage(); !errors.Is(err, ErrMissingImageWriter) {
		t.Errorf("Expected ErrMissingImageWriter, got %v", err)
	}
	camera.SetImageWriter(newMockImageWriter(2, 2))
	if err := camera.RenderImage(); !errors.Is(err, ErrMissingRayTracer) {
		t.Errorf("Expected ErrMissingRayTracer, got %v", err)
	}

	empty, _ := NewCamera(testCameraConfig(), core.DefaultRenderConfig())
	if err := empty.PrintGrid(10, core.Black); !errors.Is(err, ErrMissingImageWriter) {
		t.Errorf("Expected ErrMissingImageWriter from PrintGrid, got %v", err)
	}
	if err := empty.WriteToImage(); !errors.Is(err, ErrMissingImageWriter) {
		t.Errorf("Expected ErrMissingImageWriter from WriteToImage, got %v", err)
	}
}

func TestCamera_RenderImage_WritesEveryPixel(t *testing.T) {
	writer := newMockImageWriter(8, 5)
	camera, _ := NewCamera(testCameraConfig(), core.DefaultRenderConfig())
	camera.SetImageWriter(writer).SetRayTracer(constantTracer{core.NewColor(1, 2, 3)})

	if err := camera.RenderImage(); err != nil {
		t.Fatalf("RenderImage failed: %v", err)
	}

	for row := 0; row < 5; row++ {
		for col := 0; col < 8; col++ {
			if writer.written[row][col] != 1 {
				t.Errorf("Pixel (%d,%d) written %d times", col, row, writer.written[row][col])
			}
			if !writer.pixels[row][col].Equals(core.NewColor(1, 2, 3)) {
				t.Errorf("Pixel (%d,%d): expected (1,2,3), got %v", col, row, writer.pixels[row][col])
			}
		}
	}

	stats := camera.Stats()
	if stats.TotalPixels != 40 || stats.PrimaryRays != 40 {
		t.Errorf("Expected 40 pixels and rays, got %+v", stats)
	}

	if err := camera.PrintGrid(2, core.Black); err != nil || writer.gridInterval != 2 {
		t.Errorf("PrintGrid not delegated: err=%v interval=%d", err, writer.gridInterval)
	}
	if err := camera.WriteToImage(); err != nil || !writer.flushed {
		t.Errorf("WriteToImage not delegated: err=%v", err)
	}
}

func TestCamera_Supersampling_Average(t *testing.T) {
	render := core.DefaultRenderConfig()
	render.RaysPerPixel = 9

	writer := newMockImageWriter(3, 3)
	camera, _ := NewCamera(testCameraConfig(), render)
	camera.SetImageWriter(writer).SetRayTracer(constantTracer{core.NewColor(90, 90, 90)})

	if err := camera.RenderImage(); err != nil {
		t.Fatalf("RenderImage failed: %v", err)
	}
	if !writer.pixels[1][1].Equals(core.NewColor(90, 90, 90)) {
		t.Errorf("Average of identical samples should be unchanged, got %v", writer.pixels[1][1])
	}
	if camera.Stats().PrimaryRays != 81 {
		t.Errorf("Expected 81 primary rays, got %d", camera.Stats().PrimaryRays)
	}
}

func TestCamera_AdaptiveSupersampling(t *testing.T) {
	render := core.DefaultRenderConfig()
	render.RaysPerPixel = 16
	render.AdaptiveSample = true

	t.Run("uniform region is not subdivided", func(t *testing.T) {
		writer := newMockImageWriter(3, 3)
		camera, _ := NewCamera(testCameraConfig(), render)
		camera.SetImageWriter(writer).SetRayTracer(constantTracer{core.NewColor(10, 20, 30)})

		if err := camera.RenderImage(); err != nil {
			t.Fatalf("RenderImage failed: %v", err)
		}
		stats := camera.Stats()
		if stats.PrimaryRays != 9*4 || stats.Subdivisions != 0 {
			t.Errorf("Expected 4 corner rays per pixel and no subdivisions, got %+v", stats)
		}
		if !writer.pixels[0][0].Equals(core.NewColor(10, 20, 30)) {
			t.Errorf("Expected (10,20,30), got %v", writer.pixels[0][0])
		}
	})

	t.Run("edge is subdivided within budget", func(t *testing.T) {
		// The single pixel spans x in [-1.5,1.5] with the edge at its center
		writer := newMockImageWriter(1, 1)
		camera, _ := NewCamera(testCameraConfig(), render)
		camera.SetImageWriter(writer).SetRayTracer(edgeTracer{})

		if err := camera.RenderImage(); err != nil {
			t.Fatalf("RenderImage failed: %v", err)
		}
		stats := camera.Stats()
		if stats.Subdivisions != 1 {
			t.Errorf("Expected 1 subdivision, got %d", stats.Subdivisions)
		}
		if stats.PrimaryRays != 4+16 {
			t.Errorf("Expected 20 primary rays, got %d", stats.PrimaryRays)
		}
		// The two quadrants with x >= 0 have one black corner column at x = 0
		// and reach the budget; the other two are uniformly black
		if !writer.pixels[0][0].Equals(core.NewColor(63.75, 63.75, 63.75)) {
			t.Errorf("Expected (63.75,63.75,63.75), got %v", writer.pixels[0][0])
		}
	})
}

func TestCamera_ParallelMatchesSequential(t *testing.T) {
	render := core.DefaultRenderConfig()
	render.RaysPerPixel = 4

	renderWith := func(workers int) *mockImageWriter {
		r := render
		r.Workers = workers
		writer := newMockImageWriter(12, 9)
		camera, err := NewCamera(testCameraConfig(), r)
		if err != nil {
			t.Fatalf("NewCamera failed: %v", err)
		}
		camera.SetImageWriter(writer).SetRayTracer(directionTracer{})
		if err := camera.RenderImage(); err != nil {
			t.Fatalf("RenderImage failed: %v", err)
		}
		return writer
	}

	sequential := renderWith(1)
	parallel := renderWith(4)

	for row := range sequential.pixels {
		for col := range sequential.pixels[row] {
			if sequential.pixels[row][col] != parallel.pixels[row][col] {
				t.Fatalf("Pixel (%d,%d) differs: %v vs %v", col, row,
					sequential.pixels[row][col], parallel.pixels[row][col])
			}
			if parallel.written[row][col] != 1 {
				t.Errorf("Pixel (%d,%d) written %d times", col, row, parallel.written[row][col])
			}
		}
	}
}

func TestCamera_RenderImageContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	camera, _ := NewCamera(testCameraConfig(), core.DefaultRenderConfig())
	camera.SetImageWriter(newMockImageWriter(4, 4)).SetRayTracer(constantTracer{})

	if err := camera.RenderImageContext(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderStats_Add(t *testing.T) {
	var total RenderStats
	total.Add(RenderStats{TotalPixels: 2, PrimaryRays: 8, Subdivisions: 1})
	total.Add(RenderStats{TotalPixels: 2, PrimaryRays: 4})

	if total.TotalPixels != 4 || total.PrimaryRays != 12 || total.Subdivisions != 1 {
		t.Errorf("Unexpected totals: %+v", total)
	}
	if math.Abs(total.AverageRaysPerPixel()-3) > 1e-9 {
		t.Errorf("Expected 3 rays per pixel, got %f", total.AverageRaysPerPixel())
	}
	if (RenderStats{}).AverageRaysPerPixel() != 0 {
		t.Error("Expected 0 rays per pixel for empty stats")
	}
}
