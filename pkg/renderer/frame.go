package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// DisplayGamma is the gamma applied when quantizing a frame for display
const DisplayGamma = 2.2

// Frame is a finished image of linear radiance values, each channel in
// [0,1]. Pixels are row-major with row 0 at the top of the image.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the pixel in column x of row y (row 0 on top)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores a pixel in column x of row y (row 0 on top)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// AverageLuminance returns the mean luminance over all pixels
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range f.Pixels {
		total += p.Luminance()
	}
	return total / float64(len(f.Pixels))
}

// ToImage quantizes the frame with the given gamma
func (f *Frame) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.At(x, y), gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma correction
func vec3ToColor(c core.Vec3, gamma float64) color.RGBA {
	return color.RGBA{
		R: uint8(core.QuantizeChannel(c.X, gamma)),
		G: uint8(core.QuantizeChannel(c.Y, gamma)),
		B: uint8(core.QuantizeChannel(c.Z, gamma)),
		A: 255,
	}
}
