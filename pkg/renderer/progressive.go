package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	InitialSamples     int // Samples for first pass (1 recommended)
	MaxSamplesPerPixel int // Maximum total samples per pixel
	MaxPasses          int // Maximum number of passes
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		InitialSamples:     1,
		MaxSamplesPerPixel: 32,
		MaxPasses:          6,
	}
}

// ProgressiveRaytracer renders in passes of increasing sample count,
// producing a usable preview after the first pass
type ProgressiveRaytracer struct {
	width, height int
	config        ProgressiveConfig
	currentPass   int
	pixelStats    []PixelStats // accumulated estimates, image row order
	randoms       []*rand.Rand // one generator per camera row, kept across passes
	raytracer     *Raytracer
	logger        core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer. The
// deterministic display modes are rendered in a single one-sample pass.
func NewProgressiveRaytracer(s *scene.Scene, camera *Camera, width, height int, config Config, progressive ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if !config.Mode.Stochastic() {
		progressive = ProgressiveConfig{InitialSamples: 1, MaxSamplesPerPixel: 1, MaxPasses: 1}
	}
	if progressive.MaxPasses <= 0 || progressive.MaxSamplesPerPixel <= 0 || progressive.InitialSamples <= 0 {
		return nil, fmt.Errorf("progressive passes and samples must be positive, got %+v", progressive)
	}
	if progressive.InitialSamples > progressive.MaxSamplesPerPixel {
		return nil, fmt.Errorf("initial samples %d exceed maximum %d", progressive.InitialSamples, progressive.MaxSamplesPerPixel)
	}

	// The pass schedule decides the sample count
	config.SamplesPerPixel = progressive.MaxSamplesPerPixel
	raytracer, err := NewRaytracer(s, camera, width, height, config)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &ProgressiveRaytracer{
		width:      width,
		height:     height,
		config:     progressive,
		pixelStats: make([]PixelStats, width*height),
		randoms:    raytracer.rowRandoms(),
		raytracer:  raytracer,
		logger:     logger,
	}, nil
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// For the final pass, use all remaining samples
	if passNumber >= pr.config.MaxPasses {
		targetSamples = pr.config.MaxSamplesPerPixel
	}

	return targetSamples
}

// RenderPass brings every pixel up to the target sample count of the pass
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int) (*Frame, RenderStats, error) {
	pr.currentPass = passNumber

	targetSamples := pr.getSamplesForPass(passNumber)
	// All pixels advance together, so any one tells how many samples are done
	newSamples := targetSamples - pr.pixelStats[0].SampleCount

	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.raytracer.workerPool.GetNumWorkers())

	if newSamples > 0 {
		if err := pr.raytracer.renderRows(ctx, pr.pixelStats, pr.randoms, newSamples); err != nil {
			return nil, RenderStats{}, err
		}
	}

	frame := pr.raytracer.assembleFrame(pr.pixelStats)
	return frame, collectStats(pr.pixelStats, frame), nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Frame      *Frame
	Stats      RenderStats
	IsLast     bool
}

// RenderProgressive renders all passes in the background. Pass results are
// delivered in order; the error channel receives at most one error,
// including ctx.Err() when rendering is cancelled between passes. Both
// channels are closed when rendering stops.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			// Check if the caller gave up before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			frame, stats, err := pr.RenderPass(ctx, pass)
			if err != nil {
				errChan <- err
				return
			}

			actualSamples := stats.MinSamples
			pr.logger.Printf("Pass %d completed in %v (actual: %d samples/pixel)\n",
				pass, time.Since(startTime), actualSamples)

			isLast := pass == pr.config.MaxPasses || actualSamples >= pr.config.MaxSamplesPerPixel
			result := PassResult{
				PassNumber: pass,
				Frame:      frame,
				Stats:      stats,
				IsLast:     isLast,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				if actualSamples >= pr.config.MaxSamplesPerPixel {
					pr.logger.Printf("Reached maximum samples per pixel (%d), stopping.\n", pr.config.MaxSamplesPerPixel)
				}
				return
			}
		}
	}()

	return passChan, errChan
}
