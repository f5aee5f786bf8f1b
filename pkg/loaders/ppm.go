package loaders

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// MaxPPMDimension bounds the width and height ReadPPM accepts
const MaxPPMDimension = 4096

// ToDisplayValue converts a linear channel value to its 8-bit display level
func ToDisplayValue(v float64) int {
	return core.QuantizeChannel(v, renderer.DisplayGamma)
}

// WritePPM writes the frame as a plain-text P3 image, top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", frame.Width, frame.Height, 255); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, p := range frame.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d ", ToDisplayValue(p.X), ToDisplayValue(p.Y), ToDisplayValue(p.Z)); err != nil {
			return fmt.Errorf("failed to write PPM pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// ReadPPM parses a plain-text P3 image. Levels are scaled to [0,1] by
// the header's maximum value.
func ReadPPM(r io.Reader) (*ImageData, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height, maxValue int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxValue); err != nil {
		return nil, fmt.Errorf("failed to read PPM header: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("unsupported PPM format %q", magic)
	}
	if width <= 0 || height <= 0 || maxValue <= 0 {
		return nil, fmt.Errorf("invalid PPM header %dx%d max %d", width, height, maxValue)
	}
	if width > MaxPPMDimension || height > MaxPPMDimension {
		return nil, fmt.Errorf("PPM size %dx%d exceeds %d", width, height, MaxPPMDimension)
	}

	pixels := make([]core.Vec3, width*height)
	scale := float64(maxValue)
	for i := range pixels {
		var r, g, b int
		if _, err := fmt.Fscan(br, &r, &g, &b); err != nil {
			return nil, fmt.Errorf("failed to read PPM pixel %d: %w", i, err)
		}
		pixels[i] = core.NewVec3(float64(r)/scale, float64(g)/scale, float64(b)/scale)
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}
