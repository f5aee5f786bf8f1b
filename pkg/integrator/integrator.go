package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use; all per-task state
// (the random sampler) is passed in.
type Integrator interface {
	// RayColor estimates the radiance arriving along a primary ray
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}
