package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DefaultMaxDepth is the recursion cap used when none is configured
const DefaultMaxDepth = 5

// PathTracingConfig selects the estimator's sampling strategy and depth cap
type PathTracingConfig struct {
	Sampling core.SamplingMethod
	MaxDepth int // paths deeper than this return black
}

// PathTracingIntegrator estimates radiance with one Monte Carlo sample of
// indirect diffuse light per bounce
type PathTracingIntegrator struct {
	scene    *scene.Scene
	strategy core.DirectionSampler
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer for a scene.
// A non-positive MaxDepth selects DefaultMaxDepth.
func NewPathTracingIntegrator(s *scene.Scene, config PathTracingConfig) *PathTracingIntegrator {
	maxDepth := config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathTracingIntegrator{
		scene:    s,
		strategy: config.Sampling.Strategy(),
		maxDepth: maxDepth,
	}
}

// MaxDepth returns the recursion cap
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor estimates radiance along a primary ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pt.Estimate(ray, 0, sampler)
}

// Estimate returns the radiance along ray at the given path depth (0 for
// primary rays)
func (pt *PathTracingIntegrator) Estimate(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// Past the bounce limit no more light is gathered
	if depth > pt.maxDepth {
		return core.Vec3{}
	}

	hit, isHit := pt.scene.Intersect(ray)
	if !isHit {
		return core.Vec3{} // unlit background
	}

	sphere := pt.scene.Spheres[hit.Index]
	point := ray.At(hit.T)
	normal := geometry.FaceNormal(ray, sphere.Normal(point))

	// Lights emit but do not reflect
	if pt.scene.IsLight(hit.Index) {
		return pt.scene.Emission.MultiplyVec(sphere.Albedo)
	}

	if depth >= pt.maxDepth {
		return core.Vec3{}
	}
	return pt.indirect(sphere, point, normal, depth, sampler)
}

// indirect draws one direction from the configured strategy and weights the
// recursive estimate by the Lambertian BRDF, cosθ and 1/pdf
func (pt *PathTracingIntegrator) indirect(sphere *geometry.Sphere, point, normal core.Vec3, depth int, sampler core.Sampler) core.Vec3 {
	direction := pt.strategy.Sample(normal, sampler.Get2D())
	pdf := pt.strategy.PDF(direction, normal)

	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 || pdf <= 0 {
		// degenerate sample, discarded
		return core.Vec3{}
	}

	secondary := core.NewRay(point.Add(normal.Multiply(geometry.Epsilon)), direction)
	incoming := pt.Estimate(secondary, depth+1, sampler)

	// Lambertian BRDF: albedo/π
	brdf := sphere.Albedo.Multiply(1.0 / math.Pi)
	return incoming.MultiplyVec(brdf).Multiply(cosTheta / pdf)
}
