package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Raytracer renders a scene through a camera into a Frame
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	width      int
	height     int
	config     Config
	integrator integrator.Integrator
	workerPool *WorkerPool
}

// NewRaytracer validates the configuration and prepares a raytracer.
// A nil camera selects DefaultCamera.
func NewRaytracer(s *scene.Scene, camera *Camera, width, height int, config Config) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if camera == nil {
		camera = DefaultCamera(width, height)
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	return &Raytracer{
		scene:      s,
		camera:     camera,
		width:      width,
		height:     height,
		config:     config,
		integrator: config.newIntegrator(s),
		workerPool: NewWorkerPool(config.NumWorkers),
	}, nil
}

// Render is the single-call entry point: it renders the whole image and
// returns it once every pixel is computed
func Render(s *scene.Scene, camera *Camera, width, height int, config Config) (*Frame, error) {
	rt, err := NewRaytracer(s, camera, width, height, config)
	if err != nil {
		return nil, err
	}
	frame, _, err := rt.RenderPass(context.Background())
	return frame, err
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RenderPass renders every pixel with the configured sample count
func (rt *Raytracer) RenderPass(ctx context.Context) (*Frame, RenderStats, error) {
	pixelStats := make([]PixelStats, rt.width*rt.height)
	randoms := rt.rowRandoms()

	if err := rt.renderRows(ctx, pixelStats, randoms, rt.config.samplesPerPixel()); err != nil {
		return nil, RenderStats{}, err
	}

	frame := rt.assembleFrame(pixelStats)
	return frame, collectStats(pixelStats, frame), nil
}

// rowRandoms creates one generator per camera row. Seeds depend only on
// the base seed and the row so output does not depend on worker scheduling.
func (rt *Raytracer) rowRandoms() []*rand.Rand {
	randoms := make([]*rand.Rand, rt.height)
	for y := range randoms {
		randoms[y] = rand.New(rand.NewSource(rt.config.Seed + int64(y)))
	}
	return randoms
}

// renderRows adds samples estimates to every pixel in parallel, one task per row
func (rt *Raytracer) renderRows(ctx context.Context, pixelStats []PixelStats, randoms []*rand.Rand, samples int) error {
	tasks := make([]RowTask, rt.height)
	for y := range tasks {
		tasks[y] = RowTask{Row: y, Samples: samples, Random: randoms[y]}
	}

	return rt.workerPool.Run(ctx, tasks, func(task RowTask) error {
		rt.renderRow(task, pixelStats)
		return nil
	})
}

// renderRow accumulates estimates for one camera row. Rows write disjoint
// slices of pixelStats; camera row y is stored upside down at image row
// height-1-y.
func (rt *Raytracer) renderRow(task RowTask, pixelStats []PixelStats) {
	sampler := core.NewRandomSampler(task.Random)
	offset := (rt.height - 1 - task.Row) * rt.width

	for x := 0; x < rt.width; x++ {
		ray := rt.camera.GetRay(x, task.Row, rt.width, rt.height)
		stats := &pixelStats[offset+x]
		for s := 0; s < task.Samples; s++ {
			stats.AddSample(rt.integrator.RayColor(ray, sampler))
		}
	}
}

// assembleFrame averages the accumulated estimates and clamps each channel to [0,1]
func (rt *Raytracer) assembleFrame(pixelStats []PixelStats) *Frame {
	frame := NewFrame(rt.width, rt.height)
	for i := range pixelStats {
		frame.Pixels[i] = pixelStats[i].GetColor().Clamp(0, 1)
	}
	return frame
}
