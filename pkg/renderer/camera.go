package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera turns pixels into rays through a view plane placed in front of it
// and hands the traced colors to an image writer
type Camera struct {
	position core.Point
	to       core.Vector
	up       core.Vector
	right    core.Vector

	width    float64 // View plane size
	height   float64
	distance float64 // Distance from the camera to the view plane

	numRays  int  // Rays per pixel
	adaptive bool // Adaptive supersampling instead of jittered averaging
	workers  int
	seed     int64

	imageWriter ImageWriter
	rayTracer   RayTracer
	logger      core.Logger
	stats       RenderStats
}

// NewCamera creates a camera from placement and render settings. The to
// and up vectors must be orthogonal; both are normalized.
func NewCamera(cfg core.CameraConfig, render core.RenderConfig) (*Camera, error) {
	if core.IsZero(cfg.To.LengthSquared()) || core.IsZero(cfg.Up.LengthSquared()) {
		return nil, fmt.Errorf("camera direction: %w", core.ErrZeroVector)
	}
	if !core.IsZero(cfg.To.Dot(cfg.Up)) {
		return nil, fmt.Errorf("%w: to=%v up=%v", ErrCameraNotOrthogonal, cfg.To, cfg.Up)
	}
	if cfg.ViewPlaneWidth <= 0 || cfg.ViewPlaneHeight <= 0 || cfg.ViewPlaneDistance <= 0 {
		return nil, fmt.Errorf("%w: %gx%g at %g", ErrInvalidViewPlane,
			cfg.ViewPlaneWidth, cfg.ViewPlaneHeight, cfg.ViewPlaneDistance)
	}

	to := cfg.To.Normalize()
	up := cfg.Up.Normalize()
	right, err := to.Cross(up)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraNotOrthogonal, err)
	}

	numRays := render.RaysPerPixel
	if numRays < 1 {
		numRays = 1
	}

	return &Camera{
		position: cfg.Position,
		to:       to,
		up:       up,
		right:    right.Normalize(),
		width:    cfg.ViewPlaneWidth,
		height:   cfg.ViewPlaneHeight,
		distance: cfg.ViewPlaneDistance,
		numRays:  numRays,
		adaptive: render.AdaptiveSample,
		workers:  render.Workers,
		seed:     render.Seed,
		logger:   discardLogger{},
	}, nil
}

// SetImageWriter sets the pixel sink
func (c *Camera) SetImageWriter(w ImageWriter) *Camera {
	c.imageWriter = w
	return c
}

// SetRayTracer sets the shader
func (c *Camera) SetRayTracer(rt RayTracer) *Camera {
	c.rayTracer = rt
	return c
}

// SetLogger sets the progress logger
func (c *Camera) SetLogger(logger core.Logger) *Camera {
	c.logger = logger
	return c
}

// Position returns the camera location
func (c *Camera) Position() core.Point { return c.position }

// To returns the unit viewing direction
func (c *Camera) To() core.Vector { return c.to }

// Up returns the unit up direction
func (c *Camera) Up() core.Vector { return c.up }

// Right returns to × up
func (c *Camera) Right() core.Vector { return c.right }

// Stats returns statistics of the last render
func (c *Camera) Stats() RenderStats { return c.stats }

// pixelCenter returns the view plane point at the center of pixel (col,row).
// Row 0 is the top of the image.
func (c *Camera) pixelCenter(nX, nY, col, row int) core.Point {
	pC := c.position.AddScaled(c.to, c.distance)

	rX := c.width / float64(nX)
	rY := c.height / float64(nY)

	xJ := core.AlignZero((float64(col) - float64(nX-1)/2) * rX)
	yI := core.AlignZero(-(float64(row) - float64(nY-1)/2) * rY)

	return pC.AddScaled(c.right, xJ).AddScaled(c.up, yI)
}

// rayThrough builds the camera ray through a view plane point
func (c *Camera) rayThrough(p core.Point) core.Ray {
	// The view plane is at a positive distance, so p never equals the position
	dir, _ := p.Subtract(c.position)
	return core.NewRay(c.position, dir)
}

// ConstructRay returns the ray through the center of pixel (col,row) of an
// nX by nY image
func (c *Camera) ConstructRay(nX, nY, col, row int) core.Ray {
	return c.rayThrough(c.pixelCenter(nX, nY, col, row))
}

// ConstructRays returns numRays rays whose targets are jittered uniformly
// within the pixel footprint
func (c *Camera) ConstructRays(nX, nY, col, row int, rng *rand.Rand) []core.Ray {
	center := c.pixelCenter(nX, nY, col, row)
	rX := c.width / float64(nX)
	rY := c.height / float64(nY)

	rays := make([]core.Ray, c.numRays)
	for k := range rays {
		p := center.
			AddScaled(c.right, (rng.Float64()-0.5)*rX).
			AddScaled(c.up, (rng.Float64()-0.5)*rY)
		rays[k] = c.rayThrough(p)
	}
	return rays
}

// pixelColor returns the color of one pixel using the configured sampling
func (c *Camera) pixelColor(nX, nY, col, row int, rng *rand.Rand, stats *RenderStats) core.Color {
	stats.TotalPixels++

	if c.numRays <= 1 {
		stats.PrimaryRays++
		return c.rayTracer.TraceRay(c.ConstructRay(nX, nY, col, row))
	}

	if c.adaptive {
		rX := c.width / float64(nX)
		rY := c.height / float64(nY)
		return c.adaptiveSample(c.pixelCenter(nX, nY, col, row), rX, rY, c.numRays, stats)
	}

	rays := c.ConstructRays(nX, nY, col, row, rng)
	color := core.Black
	for _, ray := range rays {
		color = color.Add(c.rayTracer.TraceRay(ray))
	}
	stats.PrimaryRays += len(rays)
	return color.Reduce(float64(len(rays)))
}

// adaptiveSample traces the four corners of a region centered at center.
// Matching corners return their shared color. When the budget is too small
// to split further the result is the average of the four corners rather
// than any single corner. Otherwise each quadrant is sampled with a quarter
// of the budget.
func (c *Camera) adaptiveSample(center core.Point, rX, rY float64, budget int, stats *RenderStats) core.Color {
	var corners [4]core.Color
	i := 0
	for _, dx := range [2]float64{-0.5, 0.5} {
		for _, dy := range [2]float64{0.5, -0.5} {
			p := center.AddScaled(c.right, dx*rX).AddScaled(c.up, dy*rY)
			corners[i] = c.rayTracer.TraceRay(c.rayThrough(p))
			i++
		}
	}
	stats.PrimaryRays += 4

	if corners[0].Equals(corners[1]) && corners[0].Equals(corners[2]) && corners[0].Equals(corners[3]) {
		return corners[0]
	}
	if budget <= 4 {
		return corners[0].Add(corners[1], corners[2], corners[3]).Reduce(4)
	}

	stats.Subdivisions++
	color := core.Black
	for _, dx := range [2]float64{-0.25, 0.25} {
		for _, dy := range [2]float64{0.25, -0.25} {
			sub := center.AddScaled(c.right, dx*rX).AddScaled(c.up, dy*rY)
			color = color.Add(c.adaptiveSample(sub, rX/2, rY/2, budget/4, stats))
		}
	}
	return color.Reduce(4)
}

// renderRow renders a single row. Its random source depends only on the
// seed and the row, so results do not depend on the number of workers.
func (c *Camera) renderRow(row int) RenderStats {
	nX, nY := c.imageWriter.Width(), c.imageWriter.Height()
	rng := rand.New(rand.NewSource(c.seed + int64(row)))

	var stats RenderStats
	for col := 0; col < nX; col++ {
		c.imageWriter.WritePixel(col, row, c.pixelColor(nX, nY, col, row, rng, &stats))
	}
	return stats
}

// RenderImage traces every pixel and writes it to the image writer
func (c *Camera) RenderImage() error {
	return c.RenderImageContext(context.Background())
}

// RenderImageContext is RenderImage with cancellation between rows
func (c *Camera) RenderImageContext(ctx context.Context) error {
	if c.imageWriter == nil {
		return ErrMissingImageWriter
	}
	if c.rayTracer == nil {
		return ErrMissingRayTracer
	}

	nX, nY := c.imageWriter.Width(), c.imageWriter.Height()
	startTime := time.Now()
	c.stats = RenderStats{}

	if c.workers > 1 {
		c.logger.Printf("Rendering %dx%d with %d rays per pixel (using %d workers)...\n", nX, nY, c.numRays, c.workers)
		if err := c.renderParallel(ctx, nY); err != nil {
			return err
		}
	} else {
		c.logger.Printf("Rendering %dx%d with %d rays per pixel...\n", nX, nY, c.numRays)
		for row := 0; row < nY; row++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.stats.Add(c.renderRow(row))
		}
	}

	c.stats.Duration = time.Since(startTime)
	c.logger.Printf("Render completed in %v (%d pixels, %.1f rays/pixel, %d subdivisions)\n",
		c.stats.Duration, c.stats.TotalPixels, c.stats.AverageRaysPerPixel(), c.stats.Subdivisions)
	return nil
}

// renderParallel distributes rows across a worker pool. Each row is
// written by exactly one worker; statistics are merged here.
func (c *Camera) renderParallel(ctx context.Context, nY int) error {
	pool := NewWorkerPool(func(row int) RenderStats {
		if ctx.Err() != nil {
			return RenderStats{}
		}
		return c.renderRow(row)
	}, nY, c.workers)
	pool.Start()

	for row := 0; row < nY; row++ {
		pool.SubmitTask(RowTask{Row: row})
	}
	for i := 0; i < nY; i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		c.stats.Add(result.Stats)
	}
	pool.Stop()

	return ctx.Err()
}

// PrintGrid draws grid lines every interval pixels
func (c *Camera) PrintGrid(interval int, color core.Color) error {
	if c.imageWriter == nil {
		return ErrMissingImageWriter
	}
	c.imageWriter.PrintGrid(interval, color)
	return nil
}

// WriteToImage flushes the image writer
func (c *Camera) WriteToImage() error {
	if c.imageWriter == nil {
		return ErrMissingImageWriter
	}
	return c.imageWriter.WriteToImage()
}
