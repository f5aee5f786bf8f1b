package integrator

import (
	"fmt"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DisplayMode selects what the non-recursive display shader visualizes
type DisplayMode int

const (
	DisplayFlat   DisplayMode = iota // sphere albedo
	DisplayNormal                    // outward normal scaled by 0.5
	DisplayDepth                     // hit distance remapped to gray
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayFlat:
		return "flat"
	case DisplayNormal:
		return "normal"
	case DisplayDepth:
		return "depth"
	}
	return fmt.Sprintf("DisplayMode(%d)", int(m))
}

// ParseDisplayMode converts "flat", "normal" or "depth" to a DisplayMode
func ParseDisplayMode(name string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "flat", "color", "albedo":
		return DisplayFlat, nil
	case "normal", "normals":
		return DisplayNormal, nil
	case "depth":
		return DisplayDepth, nil
	}
	return 0, fmt.Errorf("unknown display mode %q", name)
}

// DepthRange is the distance interval mapped to black..white in depth mode
type DepthRange struct {
	Near, Far float64
}

// DefaultDepthRange matches the Cornell box camera distances
func DefaultDepthRange() DepthRange {
	return DepthRange{Near: 10, Far: 300}
}

// DisplayIntegrator classifies the nearest hit without any light transport.
// It is deterministic and ignores the sampler.
type DisplayIntegrator struct {
	scene      *scene.Scene
	mode       DisplayMode
	depthRange DepthRange
}

// NewDisplayIntegrator creates a display shader. A degenerate depth range
// (Far <= Near) selects DefaultDepthRange.
func NewDisplayIntegrator(s *scene.Scene, mode DisplayMode, depthRange DepthRange) *DisplayIntegrator {
	if depthRange.Far <= depthRange.Near {
		depthRange = DefaultDepthRange()
	}
	return &DisplayIntegrator{scene: s, mode: mode, depthRange: depthRange}
}

// RayColor returns the visualization color for the nearest hit, or black on a miss
func (d *DisplayIntegrator) RayColor(ray core.Ray, _ core.Sampler) core.Vec3 {
	hit, isHit := d.scene.Intersect(ray)
	if !isHit {
		return core.Vec3{}
	}

	sphere := d.scene.Spheres[hit.Index]

	switch d.mode {
	case DisplayNormal:
		// Negative components clamp to black on output
		return sphere.Normal(ray.At(hit.T)).Multiply(0.5)
	case DisplayDepth:
		v := (hit.T - d.depthRange.Near) / (d.depthRange.Far - d.depthRange.Near)
		v = max(0, min(1, v))
		return core.NewVec3(v, v, v)
	default:
		return sphere.Albedo
	}
}
