package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Mode selects the shader used for every pixel
type Mode int

const (
	ModeFlat      Mode = iota // albedo of the nearest sphere
	ModeNormal                // surface normal
	ModeDepth                 // hit distance as gray
	ModePathTrace             // Monte Carlo global illumination
)

var modeNames = map[Mode]string{
	ModeFlat:      "flat",
	ModeNormal:    "normal",
	ModeDepth:     "depth",
	ModePathTrace: "pathtrace",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Stochastic reports whether the mode draws random samples
func (m Mode) Stochastic() bool {
	return m == ModePathTrace
}

// ParseMode converts a mode name to a Mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pathtrace", "path-trace", "pt":
		return ModePathTrace, nil
	}
	displayMode, err := integrator.ParseDisplayMode(name)
	if err != nil {
		return 0, fmt.Errorf("unknown render mode %q", name)
	}
	switch displayMode {
	case integrator.DisplayNormal:
		return ModeNormal, nil
	case integrator.DisplayDepth:
		return ModeDepth, nil
	default:
		return ModeFlat, nil
	}
}

// Config carries all render policy
type Config struct {
	Mode            Mode
	Sampling        core.SamplingMethod // direction sampler for diffuse bounces
	MaxDepth        int                 // path depth cap, at least 1 when path tracing
	SamplesPerPixel int                 // estimates averaged per pixel in path-trace mode
	NumWorkers      int                 // parallel workers (0 = use CPU count)
	DepthRange      integrator.DepthRange
	Seed            int64 // base seed for per-row generators (0 = time-seeded)
}

// DefaultConfig returns the classic settings: cosine-weighted path tracing,
// depth cap 5, 32 samples per pixel
func DefaultConfig() Config {
	return Config{
		Mode:            ModePathTrace,
		Sampling:        core.CosineHemisphere,
		MaxDepth:        integrator.DefaultMaxDepth,
		SamplesPerPixel: 32,
		NumWorkers:      0,
		DepthRange:      integrator.DefaultDepthRange(),
		Seed:            1,
	}
}

// Validate checks the config for values no render can use
func (c Config) Validate() error {
	if _, ok := modeNames[c.Mode]; !ok {
		return fmt.Errorf("invalid render mode %d", int(c.Mode))
	}
	if c.Mode.Stochastic() && c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Mode.Stochastic() && c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1 in %s mode, got %d", c.Mode, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// samplesPerPixel is 1 for the deterministic display modes
func (c Config) samplesPerPixel() int {
	if c.Mode.Stochastic() {
		return c.SamplesPerPixel
	}
	return 1
}

// newIntegrator builds the shader selected by the mode
func (c Config) newIntegrator(s *scene.Scene) integrator.Integrator {
	switch c.Mode {
	case ModeFlat:
		return integrator.NewDisplayIntegrator(s, integrator.DisplayFlat, c.DepthRange)
	case ModeNormal:
		return integrator.NewDisplayIntegrator(s, integrator.DisplayNormal, c.DepthRange)
	case ModeDepth:
		return integrator.NewDisplayIntegrator(s, integrator.DisplayDepth, c.DepthRange)
	default:
		return integrator.NewPathTracingIntegrator(s, integrator.PathTracingConfig{
			Sampling: c.Sampling,
			MaxDepth: c.MaxDepth,
		})
	}
}
