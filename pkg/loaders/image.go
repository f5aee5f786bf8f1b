package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ImageData contains a loaded image as display values in [0,1], row-major
// with row 0 on top
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PPM, PNG or JPEG image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(filename), ".ppm") {
		data, err := ReadPPM(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
		}
		return data, nil
	}

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// MeanAbsDifference compares two images of equal size channel by channel
func MeanAbsDifference(a, b *ImageData) (float64, error) {
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	if len(a.Pixels) == 0 {
		return 0, nil
	}

	total := 0.0
	for i := range a.Pixels {
		d := a.Pixels[i].Subtract(b.Pixels[i])
		total += math.Abs(d.X) + math.Abs(d.Y) + math.Abs(d.Z)
	}
	return total / float64(3*len(a.Pixels)), nil
}
