package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().IsZero() {
		t.Errorf("Expected black before any samples, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 2))
	ps.AddSample(core.NewVec3(0, 1, 0))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); got != core.NewVec3(0.5, 0.5, 1) {
		t.Errorf("Expected average (0.5, 0.5, 1), got %v", got)
	}
}

func TestCollectStats(t *testing.T) {
	pixelStats := []PixelStats{{SampleCount: 2}, {SampleCount: 4}, {SampleCount: 3}}
	frame := NewFrame(3, 1)
	frame.Set(1, 0, core.NewVec3(1, 1, 1))

	stats := collectStats(pixelStats, frame)

	if stats.TotalPixels != 3 || stats.TotalSamples != 9 {
		t.Errorf("Expected 3 pixels and 9 samples, got %d and %d", stats.TotalPixels, stats.TotalSamples)
	}
	if stats.MinSamples != 2 || stats.MaxSamplesUsed != 4 {
		t.Errorf("Expected min 2 max 4, got min %d max %d", stats.MinSamples, stats.MaxSamplesUsed)
	}
	if math.Abs(stats.AverageSamples-3) > 1e-12 {
		t.Errorf("Expected average 3, got %f", stats.AverageSamples)
	}
	if math.Abs(stats.AverageLuminance-1.0/3) > 1e-9 {
		t.Errorf("Expected average luminance 1/3, got %f", stats.AverageLuminance)
	}
}

func TestFrame_ToImage(t *testing.T) {
	frame := NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 0, core.NewVec3(0, 0.5, 0))
	frame.Set(0, 1, core.NewVec3(0, 0, 2))

	img := frame.ToImage(DisplayGamma)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 186, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}
