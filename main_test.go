package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, opts options)
	}{
		{"defaults", nil, false, func(t *testing.T, opts options) {
			if opts.Scene != "cornell" || opts.Width != 1024 || opts.Height != 768 || opts.Output != "image.ppm" {
				t.Errorf("Unexpected defaults: %+v", opts)
			}
			if opts.Config.Mode != renderer.ModePathTrace || opts.Config.Sampling != core.CosineHemisphere {
				t.Errorf("Expected cosine path tracing, got %v %v", opts.Config.Mode, opts.Config.Sampling)
			}
		}},
		{"display mode", []string{"-mode", "depth", "-scene", "cornell-gray"}, false, func(t *testing.T, opts options) {
			if opts.Config.Mode != renderer.ModeDepth || opts.Scene != "cornell-gray" {
				t.Errorf("Expected depth mode on cornell-gray, got %v %s", opts.Config.Mode, opts.Scene)
			}
		}},
		{"sampler and samples", []string{"-sampler", "uniform-sphere", "-spp", "8", "-depth", "3"}, false, func(t *testing.T, opts options) {
			if opts.Config.Sampling != core.UniformSphere || opts.Config.SamplesPerPixel != 8 || opts.Config.MaxDepth != 3 {
				t.Errorf("Unexpected config: %+v", opts.Config)
			}
		}},
		{"unknown mode", []string{"-mode", "sketch"}, true, nil},
		{"unknown sampler", []string{"-sampler", "stratified"}, true, nil},
		{"zero spp", []string{"-spp", "0"}, true, nil},
		{"zero depth", []string{"-depth", "0"}, true, nil},
		{"bad size", []string{"-width", "0"}, true, nil},
		{"bad passes", []string{"-passes", "0"}, true, nil},
		{"unknown flag", []string{"-bogus"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, io.Discard)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %v, but got none", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestLoadScene(t *testing.T) {
	s, err := loadScene("cornell", true)
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	if !s.Accelerated() || len(s.Spheres) != 8 || s.LightIndex != 7 {
		t.Errorf("Expected accelerated cornell scene with light 7, got %d spheres light %d", len(s.Spheres), s.LightIndex)
	}

	if _, err := loadScene("nonexistent", false); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		args   []string
		output string
	}{
		{"single pass ppm", []string{"-spp", "2", "-passes", "1"}, "single.ppm"},
		{"progressive png", []string{"-spp", "4", "-passes", "2"}, "progressive.png"},
		{"normal mode", []string{"-mode", "normal", "-scene", "cornell-gray"}, "normal.ppm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.output)
			args := append([]string{"-width", "16", "-height", "12", "-workers", "2", "-out", out}, tt.args...)
			opts, err := parseFlags(args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags failed: %v", err)
			}

			if err := run(context.Background(), opts, core.NopLogger{}); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			img, err := loaders.LoadImage(out)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if img.Width != 16 || img.Height != 12 {
				t.Errorf("Expected 16x12 image, got %dx%d", img.Width, img.Height)
			}
		})
	}
}

func TestRun_CompareWithItself(t *testing.T) {
	dir := t.TempDir()
	reference := filepath.Join(dir, "reference.ppm")

	args := []string{"-width", "8", "-height", "6", "-mode", "flat", "-out", reference}
	opts, err := parseFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if err := run(context.Background(), opts, core.NopLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	opts.Output = filepath.Join(dir, "again.ppm")
	opts.Compare = reference
	if err := run(context.Background(), opts, core.NopLogger{}); err != nil {
		t.Fatalf("run with compare failed: %v", err)
	}

	a, _ := os.ReadFile(reference)
	b, _ := os.ReadFile(opts.Output)
	if string(a) != string(b) {
		t.Error("Expected identical output for the deterministic flat mode")
	}
}

func TestRun_BadOutput(t *testing.T) {
	opts, err := parseFlags([]string{"-width", "4", "-height", "4", "-mode", "flat", "-out", filepath.Join(t.TempDir(), "image.tiff")}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if err := run(context.Background(), opts, core.NopLogger{}); err == nil {
		t.Error("Expected error for unsupported output format")
	}
}
