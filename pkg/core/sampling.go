package core

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Sampler provides random sampling for rendering algorithms.
// Each render task owns its own Sampler; implementations are not safe for concurrent use.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two independent random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleUniformSphere maps two uniform values to a direction distributed
// uniformly over the unit sphere
func SampleUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleUniformHemisphere returns a uniform sphere sample flipped into the
// hemisphere around normal
func SampleUniformHemisphere(normal Vec3, sample Vec2) Vec3 {
	direction := SampleUniformSphere(sample)
	if direction.Dot(normal) < 0 {
		return direction.Negate()
	}
	return direction
}

// SampleCosineHemisphere generates a cosine-weighted direction in the hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	cosTheta := math.Sqrt(sample.X)
	sinTheta := math.Sqrt(1.0 - sample.X)
	phi := 2.0 * math.Pi * sample.Y

	tangent, bitangent := OrthonormalBasis(normal)

	// Transform from the local frame (pole = normal) to world space
	return tangent.Multiply(sinTheta * math.Cos(phi)).
		Add(bitangent.Multiply(sinTheta * math.Sin(phi))).
		Add(normal.Multiply(cosTheta))
}

// OrthonormalBasis builds a tangent and bitangent perpendicular to the unit vector n
func OrthonormalBasis(n Vec3) (tangent, bitangent Vec3) {
	// Helper axis must not be parallel to n
	helper := NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	}
	tangent = helper.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

// SamplingMethod selects the Monte Carlo direction sampling strategy for diffuse bounces
type SamplingMethod int

const (
	UniformSphere SamplingMethod = iota
	UniformHemisphere
	CosineHemisphere
)

var samplingMethodNames = map[SamplingMethod]string{
	UniformSphere:     "uniform-sphere",
	UniformHemisphere: "uniform-hemisphere",
	CosineHemisphere:  "cosine-hemisphere",
}

func (m SamplingMethod) String() string {
	if name, ok := samplingMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SamplingMethod(%d)", int(m))
}

// ParseSamplingMethod converts a name such as "cosine-hemisphere" (or "cosine") to a SamplingMethod
func ParseSamplingMethod(name string) (SamplingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform-sphere", "sphere":
		return UniformSphere, nil
	case "uniform-hemisphere", "hemisphere":
		return UniformHemisphere, nil
	case "cosine-hemisphere", "cosine":
		return CosineHemisphere, nil
	}
	return 0, fmt.Errorf("unknown sampling method %q", name)
}

// DirectionSampler pairs a direction sampling scheme with its probability
// density with respect to solid angle
type DirectionSampler interface {
	Sample(normal Vec3, sample Vec2) Vec3
	PDF(direction, normal Vec3) float64
}

// Strategy resolves the method to its sampler/density pair.
// Unknown values fall back to uniform hemisphere sampling.
func (m SamplingMethod) Strategy() DirectionSampler {
	switch m {
	case UniformSphere:
		return uniformSphereStrategy{}
	case CosineHemisphere:
		return cosineHemisphereStrategy{}
	default:
		return uniformHemisphereStrategy{}
	}
}

type uniformSphereStrategy struct{}

func (uniformSphereStrategy) Sample(_ Vec3, sample Vec2) Vec3 {
	return SampleUniformSphere(sample)
}

func (uniformSphereStrategy) PDF(_, _ Vec3) float64 {
	return 1.0 / (4.0 * math.Pi)
}

type uniformHemisphereStrategy struct{}

func (uniformHemisphereStrategy) Sample(normal Vec3, sample Vec2) Vec3 {
	return SampleUniformHemisphere(normal, sample)
}

func (uniformHemisphereStrategy) PDF(direction, normal Vec3) float64 {
	if direction.Dot(normal) > 0 {
		return 1.0 / (2.0 * math.Pi)
	}
	return 0
}

type cosineHemisphereStrategy struct{}

func (cosineHemisphereStrategy) Sample(normal Vec3, sample Vec2) Vec3 {
	return SampleCosineHemisphere(normal, sample)
}

func (cosineHemisphereStrategy) PDF(direction, normal Vec3) float64 {
	if cosTheta := direction.Dot(normal); cosTheta > 0 {
		return cosTheta / math.Pi
	}
	return 0
}
