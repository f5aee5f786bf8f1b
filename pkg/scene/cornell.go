package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Cornell box built from huge spheres: each wall is a sphere of radius 1e5
// whose surface passes through the box boundary.
const wallRadius = 1e5

// CornellLightEmission is the radiance of the ceiling light sphere
var CornellLightEmission = core.NewVec3(10, 10, 10)

// NewCornellScene creates the colored-wall Cornell box lit by a single
// sphere light near the ceiling (light index 7)
func NewCornellScene() *Scene {
	return cornellBox("cornell",
		core.NewVec3(.75, .25, .25), // left (red)
		core.NewVec3(.25, .25, .75), // right (blue)
		core.NewVec3(.25, .75, .25), // back (green)
		core.NewVec3(.25, .75, .75), // floor (cyan)
		core.NewVec3(.75, .75, .25), // ceiling (yellow)
		core.NewVec3(.2, .3, .4),
		core.NewVec3(.4, .3, .2),
	)
}

// NewCornellGrayScene creates the gray Cornell box with two near-white
// spheres, used for the flat/normal/depth visualization modes
func NewCornellGrayScene() *Scene {
	gray := core.NewVec3(.75, .75, .75)
	white := core.NewVec3(.999, .999, .999)
	return cornellBox("cornell-gray",
		core.NewVec3(.75, .25, .25),
		core.NewVec3(.25, .25, .75),
		gray, gray, gray,
		white, white,
	)
}

func cornellBox(name string, left, right, back, floor, ceiling, sphereA, sphereB core.Vec3) *Scene {
	s, err := NewBuilder(name).
		AddSphere(wallRadius, core.NewVec3(-wallRadius-49, 0, 0), left).
		AddSphere(wallRadius, core.NewVec3(wallRadius+49, 0, 0), right).
		AddSphere(wallRadius, core.NewVec3(0, 0, -wallRadius-81.6), back).
		AddSphere(wallRadius, core.NewVec3(0, -wallRadius-40.8, 0), floor).
		AddSphere(wallRadius, core.NewVec3(0, wallRadius+40.8, 0), ceiling).
		AddSphere(16.5, core.NewVec3(-23, -24.3, -34.6), sphereA).
		AddSphere(16.5, core.NewVec3(23, -24.3, -3.6), sphereB).
		AddLight(geometry.NewSphere(10.5, core.NewVec3(0, 24.3, 0), core.NewVec3(1, 1, 1)), CornellLightEmission).
		Build()
	if err != nil {
		// literal scene, cannot fail
		panic(err)
	}
	return s
}

// NewLightOnlyScene creates a scene containing just the light sphere, in the
// same place as the Cornell box light. Every camera ray either sees the
// light or the black background.
func NewLightOnlyScene() *Scene {
	s, err := NewBuilder("light-only").
		AddLight(geometry.NewSphere(10.5, core.NewVec3(0, 24.3, 0), core.NewVec3(1, 0.9, 0.8)), CornellLightEmission).
		Build()
	if err != nil {
		panic(err)
	}
	return s
}
