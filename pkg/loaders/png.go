package loaders

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePNG encodes the frame as PNG with the display gamma
func WritePNG(w io.Writer, frame *renderer.Frame) error {
	if err := png.Encode(w, frame.ToImage(renderer.DisplayGamma)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveImage writes the frame to path, choosing PPM or PNG by extension
func SaveImage(path string, frame *renderer.Frame) error {
	var write func(io.Writer, *renderer.Frame) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		write = WritePPM
	case ".png":
		write = WritePNG
	default:
		return fmt.Errorf("unsupported image format %q (use .ppm or .png)", filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := write(file, frame); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}
