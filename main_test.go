package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"demo scene", "demo", false},
		{"simple scene", "simple", false},
		{"metal scene", "metal", false},
		{"classic scene", "classic", false},
		{"ground scene", "ground", false},

		// JSON scenes (by name and by path)
		{"glass-trio by name", "glass-trio", false},
		{"direct JSON path", "scenes/glass-trio.json", false},
		{"mirror-row by path", "scenes/mirror-row.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene should contain shapes")
			}
		})
	}
}

func TestApplyOptions(t *testing.T) {
	s := scene.NewDemoScene()
	applyOptions(s, options{width: 200, samples: 8, depth: 0, workers: 3, tileSize: 16, seed: 77, useBVH: true})

	cfg := s.SamplingConfig
	if cfg.Width != 200 || cfg.Height != 112 {
		t.Errorf("Expected 200x112, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel != 8 || cfg.MaxDepth != 0 || cfg.NumWorkers != 3 || cfg.TileSize != 16 || cfg.Seed != 77 {
		t.Errorf("Unexpected sampling config: %+v", cfg)
	}
	if !s.UseBVH {
		t.Error("Expected BVH enabled")
	}

	// Unset flags keep the scene's values
	s = scene.NewDemoScene()
	before := s.SamplingConfig
	applyOptions(s, options{depth: -1})
	if s.SamplingConfig != before {
		t.Errorf("Expected unchanged config, got %+v", s.SamplingConfig)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name      string
		opts      options
		expected  string
		expectErr bool
	}{
		{"default png", options{format: "png"}, filepath.Join("output", "demo", "render_20240305_140709.png"), false},
		{"ppm", options{format: "PPM"}, filepath.Join("output", "demo", "render_20240305_140709.ppm"), false},
		{"explicit output", options{output: "out.ppm", format: "png"}, "out.ppm", false},
		{"bad format", options{format: "gif"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPath(tt.opts, "demo", now)
			if tt.expectErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRun_WritesImage(t *testing.T) {
	for _, ext := range []string{".png", ".ppm"} {
		t.Run(ext, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "render"+ext)
			opts := options{sceneName: "simple", width: 8, height: 4, samples: 2, depth: 3, tileSize: 4, seed: 1, output: output}

			if err := run(opts, time.Now()); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if _, err := os.Stat(output); err != nil {
				t.Fatalf("Expected output file: %v", err)
			}

			data, err := loaders.LoadImage(output)
			if err != nil {
				t.Fatalf("Failed to read render back: %v", err)
			}
			if data.Width != 8 || data.Height != 4 {
				t.Errorf("Expected 8x4 image, got %dx%d", data.Width, data.Height)
			}
			// Top row looks at the sky
			if sky := data.At(4, 0); sky.Z < 0.5 {
				t.Errorf("Expected a bright sky pixel at the top, got %v", sky)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	if err := run(options{sceneName: "nonexistent", depth: -1}, time.Now()); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if err := run(options{sceneName: "ground", width: 2, height: 2, samples: 1, depth: -1, format: "gif"}, time.Now()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
