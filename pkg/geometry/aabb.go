package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min core.Vec3
	Max core.Vec3
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max core.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// axis returns component i (0=X, 1=Y, 2=Z) of v
func axis(v core.Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Hit tests if a ray intersects this box within [tMin, tMax] using the slab method
func (b AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	for i := 0; i < 3; i++ {
		lo, hi := axis(b.Min, i), axis(b.Max, i)
		origin, direction := axis(ray.Origin, i), axis(ray.Direction, i)

		// Parallel to this slab
		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		inv := 1.0 / direction
		t0 := (lo - origin) * inv
		t1 := (hi - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns a box bounding both boxes
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: core.NewVec3(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)),
		Max: core.NewVec3(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)),
	}
}

// Center returns the center point of the box
func (b AABB) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b AABB) LongestAxis() int {
	size := b.Max.Subtract(b.Min)
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}
