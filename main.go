package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options are the command line settings; zero values keep the scene's defaults
type options struct {
	scene     string
	width     int
	height    int
	samples   int
	adaptive  bool
	workers   int // -1 uses the configured value
	grid      int
	thumbnail uint
	upload    bool
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.scene, "scene", "concentric-spheres", "Built-in scene name, json:<name>, or a path to a .json scene file")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 uses the scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 uses the scene default)")
	flag.IntVar(&opts.samples, "samples", 0, "Rays per pixel (0 uses the scene default)")
	flag.BoolVar(&opts.adaptive, "adaptive", false, "Use adaptive supersampling")
	flag.IntVar(&opts.workers, "workers", -1, "Render workers (0 means one per CPU, -1 uses WORKERS)")
	flag.IntVar(&opts.grid, "grid", 0, "Draw grid lines every N pixels (0 disables)")
	flag.UintVar(&opts.thumbnail, "thumbnail", 0, "Also save a thumbnail no larger than N pixels (0 disables)")
	flag.BoolVar(&opts.upload, "upload", false, "Upload the render to the configured S3 bucket")
	envFile := flag.String("env", ".env", "Environment file with deployment settings")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), opts, cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	if scenes, err := scene.ListAllScenes(); err == nil {
		for _, group := range scenes.Groups {
			for _, info := range group.Scenes {
				fmt.Printf("  %-22s %s\n", info.ID, info.Description)
			}
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders one scene and saves it, optionally with a grid, a thumbnail
// and an upload
func run(ctx context.Context, opts options, cfg *config.Config) error {
	fmt.Println("Starting Whitted Raytracer...")

	preset, err := createScene(opts.scene)
	if err != nil {
		return err
	}
	fmt.Printf("Using %s scene...\n", preset.Scene.Name())

	render := renderConfig(preset.Render, opts, cfg)
	camera, err := renderer.NewCamera(preset.Camera, render)
	if err != nil {
		return fmt.Errorf("creating camera: %w", err)
	}

	outputDir := createOutputDir(cfg.OutputDir, opts.scene)
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	writer := output.NewImageWriter(filename, render.Width, render.Height)
	tracer := renderer.NewBasicRayTracer(preset.Scene)
	camera.SetImageWriter(writer).SetRayTracer(tracer).SetLogger(renderer.NewDefaultLogger())

	if err := camera.RenderImageContext(ctx); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	fmt.Printf("Rays traced: %d (%.1f camera rays per pixel)\n",
		tracer.RaysTraced(), camera.Stats().AverageRaysPerPixel())

	if opts.grid > 0 {
		if err := camera.PrintGrid(opts.grid, core.NewColor(255, 255, 0)); err != nil {
			return err
		}
	}
	if err := camera.WriteToImage(); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.thumbnail > 0 {
		thumbPath := output.ThumbnailPath(filename)
		if err := writer.SaveThumbnail(thumbPath, opts.thumbnail); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if opts.upload {
		if !cfg.S3.Enabled() {
			return errors.New("upload requested but S3_BUCKET is not set")
		}
		client, err := output.NewS3Client(cfg.S3)
		if err != nil {
			return err
		}
		publisher := output.NewS3Publisher(client, cfg.S3.Bucket, cfg.S3.Prefix).
			SetLogger(renderer.NewDefaultLogger())
		if _, err := publisher.PublishImage(ctx, preset.Scene.Name(), writer); err != nil {
			return err
		}
	}
	return nil
}

// createScene resolves a scene name, JSON scene reference or file path
func createScene(sceneType string) (*scene.Preset, error) {
	if sceneType == "" {
		return nil, errors.New("no scene given")
	}
	return scene.Create(sceneType)
}

// renderConfig applies command line overrides to a scene's render settings
func renderConfig(base core.RenderConfig, opts options, cfg *config.Config) core.RenderConfig {
	render := base
	if opts.width > 0 {
		render.Width = opts.width
	}
	if opts.height > 0 {
		render.Height = opts.height
	}
	if opts.samples > 0 {
		render.RaysPerPixel = opts.samples
	}
	if opts.adaptive {
		render.AdaptiveSample = true
	}

	render.Workers = opts.workers
	if render.Workers < 0 {
		render.Workers = cfg.Workers
	}
	if render.Workers == 0 {
		render.Workers = runtime.NumCPU()
	}
	return render
}

// createOutputDir returns the directory for a scene's renders: the scene
// name, or the file name without extension for scene files
func createOutputDir(baseDir, sceneType string) string {
	name := strings.TrimPrefix(sceneType, "json:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return filepath.Join(baseDir, name)
}
