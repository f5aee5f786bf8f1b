package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

const (
	gridColumns = 7
	gridRows    = 5
	gridRadius  = 5.0
)

// oklchToLinear converts an OKLCH color to clamped linear RGB albedo
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToLinear(l, c, h float64) core.Vec3 {
	r, g, b := colorful.OkLch(l, c, h).Clamped().LinearRgb()
	return core.NewVec3(r, g, b).Clamp(0, 1)
}

// NewSphereGridScene creates a gray box with a 7x5 grid of rainbow spheres
// resting on the floor, lit by the Cornell ceiling light. With 41 spheres
// it is the scene that benefits from the BVH, so it is always accelerated.
func NewSphereGridScene() *Scene {
	gray := core.NewVec3(.75, .75, .75)
	b := NewBuilder("sphere-grid").
		AddSphere(wallRadius, core.NewVec3(-wallRadius-49, 0, 0), gray).
		AddSphere(wallRadius, core.NewVec3(wallRadius+49, 0, 0), gray).
		AddSphere(wallRadius, core.NewVec3(0, 0, -wallRadius-81.6), gray).
		AddSphere(wallRadius, core.NewVec3(0, -wallRadius-40.8, 0), gray).
		AddSphere(wallRadius, core.NewVec3(0, wallRadius+40.8, 0), gray)

	floorY := -40.8 + gridRadius
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridColumns; col++ {
			center := core.NewVec3(
				-36+float64(col)*12,
				floorY,
				-70+float64(row)*15,
			)
			hue := 360 * float64(row*gridColumns+col) / float64(gridRows*gridColumns)
			b.AddSphere(gridRadius, center, oklchToLinear(0.7, 0.15, hue))
		}
	}

	s, err := b.
		AddLight(geometry.NewSphere(10.5, core.NewVec3(0, 24.3, 0), core.NewVec3(1, 1, 1)), CornellLightEmission).
		Accelerate(true).
		Build()
	if err != nil {
		panic(err)
	}
	return s
}
