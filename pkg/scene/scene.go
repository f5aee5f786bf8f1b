package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// NoLight marks a scene without an emitting sphere
const NoLight = -1

// Scene is an ordered, read-only collection of spheres with at most one
// designated light. It is safe for concurrent use once built.
type Scene struct {
	Name       string
	Spheres    []*geometry.Sphere
	LightIndex int       // index into Spheres, or NoLight
	Emission   core.Vec3 // emitted radiance of the light sphere
	bvh        *geometry.BVH
}

// Hit is the nearest intersection of a ray with the scene
type Hit struct {
	T     float64 // distance along the ray
	Index int     // index of the sphere hit
}

// Intersect finds the nearest sphere hit by the ray. On exactly equal
// distances the sphere declared first wins.
func (s *Scene) Intersect(ray core.Ray) (Hit, bool) {
	if s.bvh != nil {
		t, idx, ok := s.bvh.Hit(ray)
		return Hit{T: t, Index: idx}, ok
	}

	closest := Hit{T: math.Inf(1), Index: -1}
	for i, sphere := range s.Spheres {
		if t, ok := sphere.Intersect(ray); ok && t < closest.T {
			closest = Hit{T: t, Index: i}
		}
	}
	return closest, closest.Index >= 0
}

// IsLight reports whether the sphere at index is the scene's light
func (s *Scene) IsLight(index int) bool {
	return s.LightIndex != NoLight && index == s.LightIndex
}

// Light returns the light sphere, if any
func (s *Scene) Light() (*geometry.Sphere, bool) {
	if s.LightIndex == NoLight {
		return nil, false
	}
	return s.Spheres[s.LightIndex], true
}

// Accelerated reports whether intersection queries go through a BVH
func (s *Scene) Accelerated() bool {
	return s.bvh != nil
}

// Builder assembles a Scene. Sphere order is preserved and becomes the
// tie-break order for intersection.
type Builder struct {
	name       string
	spheres    []*geometry.Sphere
	lightIndex int
	emission   core.Vec3
	lights     int
	accelerate bool
}

// NewBuilder creates an empty scene builder
func NewBuilder(name string) *Builder {
	return &Builder{name: name, lightIndex: NoLight}
}

// Add appends a diffuse sphere
func (b *Builder) Add(sphere *geometry.Sphere) *Builder {
	b.spheres = append(b.spheres, sphere)
	return b
}

// AddSphere appends a diffuse sphere built from its parameters
func (b *Builder) AddSphere(radius float64, center, albedo core.Vec3) *Builder {
	return b.Add(geometry.NewSphere(radius, center, albedo))
}

// AddLight appends the emitting sphere
func (b *Builder) AddLight(sphere *geometry.Sphere, emission core.Vec3) *Builder {
	b.lightIndex = len(b.spheres)
	b.emission = emission
	b.lights++
	return b.Add(sphere)
}

// Accelerate requests a BVH for intersection queries. Results are
// identical to the linear scan.
func (b *Builder) Accelerate(enabled bool) *Builder {
	b.accelerate = enabled
	return b
}

// Build validates the spheres and returns the finished scene
func (b *Builder) Build() (*Scene, error) {
	if len(b.spheres) == 0 {
		return nil, fmt.Errorf("scene %q has no spheres", b.name)
	}
	if b.lights > 1 {
		return nil, fmt.Errorf("scene %q has %d lights, at most one is supported", b.name, b.lights)
	}
	for i, sphere := range b.spheres {
		if sphere == nil {
			return nil, fmt.Errorf("scene %q: sphere %d is nil", b.name, i)
		}
		if !(sphere.Radius > 0) || math.IsInf(sphere.Radius, 0) {
			return nil, fmt.Errorf("scene %q: sphere %d has invalid radius %v", b.name, i, sphere.Radius)
		}
	}

	spheres := make([]*geometry.Sphere, len(b.spheres))
	copy(spheres, b.spheres)

	s := &Scene{
		Name:       b.name,
		Spheres:    spheres,
		LightIndex: b.lightIndex,
		Emission:   b.emission,
	}
	if b.accelerate {
		s.bvh = geometry.NewBVH(spheres)
	}
	return s, nil
}
