package renderer

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int     // Total number of pixels rendered
	TotalSamples     int     // Total number of samples taken
	AverageSamples   float64 // Average samples per pixel
	MinSamples       int     // Minimum samples taken per pixel
	MaxSamplesUsed   int     // Maximum samples actually used by any pixel
	AverageLuminance float64 // Mean luminance of the clamped frame
}

// PixelStats accumulates radiance estimates for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // sum of all estimates
	SampleCount int
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// collectStats summarizes per-pixel sample counts and the frame's brightness
func collectStats(pixelStats []PixelStats, frame *Frame) RenderStats {
	stats := RenderStats{TotalPixels: len(pixelStats)}
	if len(pixelStats) == 0 {
		return stats
	}

	stats.MinSamples = pixelStats[0].SampleCount
	for i := range pixelStats {
		count := pixelStats[i].SampleCount
		stats.TotalSamples += count
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.AverageLuminance = frame.AverageLuminance()

	return stats
}
