package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Epsilon is the minimum accepted hit distance. Roots closer than this are
// treated as the ray re-hitting the surface it left from.
const Epsilon = 1e-4

// Sphere is an immutable sphere primitive with a diffuse albedo
type Sphere struct {
	Radius float64
	Center core.Vec3
	Albedo core.Vec3 // reflectance in [0,1] per channel
}

// NewSphere creates a new sphere
func NewSphere(radius float64, center, albedo core.Vec3) *Sphere {
	return &Sphere{
		Radius: radius,
		Center: center,
		Albedo: albedo,
	}
}

// Intersect returns the distance along the ray to the nearest intersection
// beyond Epsilon
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// t1 <= t2 always; prefer the nearer root
	t1 := (-b - sqrtD) / (2.0 * a)
	if t1 > Epsilon {
		return t1, true
	}
	t2 := (-b + sqrtD) / (2.0 * a)
	if t2 > Epsilon {
		return t2, true
	}

	return 0, false
}

// Normal returns the outward unit normal at a point on the surface
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// FaceNormal orients the outward normal against the incoming ray so that it
// points into the hemisphere the ray arrived from
func FaceNormal(ray core.Ray, outwardNormal core.Vec3) core.Vec3 {
	if outwardNormal.Dot(ray.Direction) < 0 {
		return outwardNormal
	}
	return outwardNormal.Negate()
}
