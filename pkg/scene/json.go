package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// SphereCfg describes one sphere in a JSON scene file
type SphereCfg struct {
	Radius   float64    `json:"radius"`
	Center   [3]float64 `json:"center"`
	Albedo   [3]float64 `json:"albedo"`
	Emission [3]float64 `json:"emission,omitempty"` // nonzero marks the light
}

// Config is the JSON scene description
type Config struct {
	Name       string      `json:"name,omitempty"`
	Accelerate bool        `json:"accelerate,omitempty"`
	Spheres    []SphereCfg `json:"spheres"`
}

// LoadJSON reads a JSON scene description from a file
func LoadJSON(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := DecodeJSON(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// DecodeJSON reads a JSON scene description. defaultName is used when the
// document has no name.
func DecodeJSON(r io.Reader, defaultName string) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return cfg.Build(defaultName)
}

// Build converts the description into a Scene
func (c Config) Build(defaultName string) (*Scene, error) {
	name := c.Name
	if name == "" {
		name = defaultName
	}

	builder := NewBuilder(name).Accelerate(c.Accelerate)
	for _, sc := range c.Spheres {
		sphere := geometry.NewSphere(sc.Radius, vec(sc.Center), vec(sc.Albedo))
		if emission := vec(sc.Emission); !emission.IsZero() {
			builder.AddLight(sphere, emission)
		} else {
			builder.Add(sphere)
		}
	}
	return builder.Build()
}

// ToConfig converts a scene back into its JSON description
func ToConfig(s *Scene) Config {
	cfg := Config{Name: s.Name, Accelerate: s.Accelerated()}
	for i, sphere := range s.Spheres {
		sc := SphereCfg{
			Radius: sphere.Radius,
			Center: arr(sphere.Center),
			Albedo: arr(sphere.Albedo),
		}
		if s.IsLight(i) {
			sc.Emission = arr(s.Emission)
		}
		cfg.Spheres = append(cfg.Spheres, sc)
	}
	return cfg
}

func vec(a [3]float64) core.Vec3 { return core.NewVec3(a[0], a[1], a[2]) }

func arr(v core.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
