package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"ambient-sphere scene", "ambient-sphere", false},
		{"concentric-spheres scene", "concentric-spheres", false},
		{"basic-render scene", "basic-render", false},
		{"shadows scene", "shadows", false},
		{"reflections scene", "reflections", false},
		{"shapes scene", "shapes", false},

		// Scene files
		{"scene file by path", "scenes/golf-course.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid scene path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if preset != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if preset.Render.Width <= 0 || preset.Render.Height <= 0 {
				t.Errorf("Scene image size should be positive, got %dx%d", preset.Render.Width, preset.Render.Height)
			}
			if preset.Camera.ViewPlaneDistance <= 0 {
				t.Errorf("Scene view plane distance should be positive, got %f", preset.Camera.ViewPlaneDistance)
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "shadows", filepath.Join("output", "shadows")},
		{"scene reference", "json:golf-course", filepath.Join("output", "golf-course")},
		{"scene file path", "scenes/golf-course.json", filepath.Join("output", "golf-course")},
		{"nested scene file", "scenes/subdir/my-scene.json", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir("output", tt.sceneType); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderConfig(t *testing.T) {
	base := core.DefaultRenderConfig()
	cfg := &config.Config{Workers: 3}

	tests := []struct {
		name     string
		opts     options
		expected func(r core.RenderConfig) bool
	}{
		{"keeps defaults", options{workers: -1}, func(r core.RenderConfig) bool {
			return r.Width == base.Width && r.Height == base.Height && r.RaysPerPixel == base.RaysPerPixel && r.Workers == 3
		}},
		{"overrides size and samples", options{width: 40, height: 30, samples: 9, adaptive: true, workers: 2}, func(r core.RenderConfig) bool {
			return r.Width == 40 && r.Height == 30 && r.RaysPerPixel == 9 && r.AdaptiveSample && r.Workers == 2
		}},
		{"zero workers means all CPUs", options{workers: 0}, func(r core.RenderConfig) bool {
			return r.Workers == runtime.NumCPU()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderConfig(base, tt.opts, cfg); !tt.expected(got) {
				t.Errorf("Unexpected render config %+v", got)
			}
		})
	}
}

func TestRun(t *testing.T) {
	outputDir := t.TempDir()
	cfg := &config.Config{OutputDir: outputDir, Workers: 2}
	opts := options{scene: "shadows", width: 24, height: 18, workers: -1, grid: 6, thumbnail: 8}

	if err := run(context.Background(), opts, cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(outputDir, "shadows", "render_*.png"))
	if err != nil || len(files) != 2 {
		t.Fatalf("Expected a render and a thumbnail, got %v (err %v)", files, err)
	}

	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			t.Fatalf("Failed to open %s: %v", file, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a PNG: %v", file, err)
		}

		if strings.HasSuffix(file, "_thumb.png") {
			if img.Bounds().Dx() > 8 || img.Bounds().Dy() > 8 {
				t.Errorf("Thumbnail too large: %v", img.Bounds())
			}
		} else if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 18 {
			t.Errorf("Expected 24x18, got %v", img.Bounds())
		}
	}
}

func TestRun_UploadWithoutBucket(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir()}
	opts := options{scene: "ambient-sphere", width: 10, height: 10, workers: 1, upload: true}

	if err := run(context.Background(), opts, cfg); err == nil {
		t.Error("Expected an error when uploading without a bucket")
	}
}

func TestRun_UnknownScene(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir()}
	if err := run(context.Background(), options{scene: "nope", workers: 1}, cfg); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}
