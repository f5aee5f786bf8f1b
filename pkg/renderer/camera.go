package renderer

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// DefaultFieldOfView scales the image plane spanned by CX and CY
const DefaultFieldOfView = 0.5095

// Camera generates one primary ray per pixel. Pixel (0,0) is the
// bottom-left corner of the image plane.
type Camera struct {
	Origin    core.Vec3
	Direction core.Vec3 // unit view direction
	CX        core.Vec3 // horizontal image plane extent
	CY        core.Vec3 // vertical image plane extent
}

// NewCamera creates a camera looking along direction. The horizontal
// extent is stretched by the aspect ratio so pixels stay square.
func NewCamera(origin, direction core.Vec3, width, height int, fov float64) *Camera {
	direction = direction.Normalize()
	cx := core.NewVec3(float64(width)*fov/float64(height), 0, 0)
	cy := cx.Cross(direction).Normalize().Multiply(fov)

	return &Camera{
		Origin:    origin,
		Direction: direction,
		CX:        cx,
		CY:        cy,
	}
}

// DefaultCamera looks into the Cornell box through its open front
func DefaultCamera(width, height int) *Camera {
	return NewCamera(
		core.NewVec3(0, 11.2, 214),
		core.NewVec3(0, -0.042612, -1),
		width, height,
		DefaultFieldOfView,
	)
}

// GetRay returns the primary ray through pixel (x, y), with y counted
// upward from the bottom row
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	u := float64(x)/float64(width) - 0.5
	v := float64(y)/float64(height) - 0.5

	direction := c.CX.Multiply(u).
		Add(c.CY.Multiply(v)).
		Add(c.Direction)

	return core.NewRay(c.Origin, direction.Normalize())
}
