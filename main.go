package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/preview"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene      string
	Width      int
	Height     int
	Passes     int
	Output     string
	Compare    string
	Preview    bool
	Accelerate bool
	Config     renderer.Config
}

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	defaults := renderer.DefaultConfig()
	sceneName := fs.String("scene", "cornell", "Scene: "+strings.Join(scene.BuiltinNames(), ", ")+", or a .json/.gltf/.glb file")
	mode := fs.String("mode", defaults.Mode.String(), "Render mode: flat, normal, depth or pathtrace")
	sampler := fs.String("sampler", defaults.Sampling.String(), "Direction sampler: uniform-sphere, uniform-hemisphere or cosine-hemisphere")
	spp := fs.Int("spp", defaults.SamplesPerPixel, "Samples per pixel in pathtrace mode")
	depth := fs.Int("depth", defaults.MaxDepth, "Maximum path depth")
	width := fs.Int("width", 1024, "Image width")
	height := fs.Int("height", 768, "Image height")
	workers := fs.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed (0 = time-seeded)")
	passes := fs.Int("passes", 1, "Progressive passes; the image is written after the last one")
	out := fs.String("out", "image.ppm", "Output file (.ppm or .png)")
	compare := fs.String("compare", "", "Reference image to compare the output against")
	showPreview := fs.Bool("preview", false, "Show the finished image in the terminal")
	accelerate := fs.Bool("bvh", false, "Build a BVH for built-in scenes")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	config := defaults
	var err error
	if config.Mode, err = renderer.ParseMode(*mode); err != nil {
		return options{}, err
	}
	if config.Sampling, err = core.ParseSamplingMethod(*sampler); err != nil {
		return options{}, err
	}
	config.SamplesPerPixel = *spp
	config.MaxDepth = *depth
	config.NumWorkers = *workers
	config.Seed = *seed
	if err := config.Validate(); err != nil {
		return options{}, err
	}

	if *width <= 0 || *height <= 0 {
		return options{}, fmt.Errorf("image size must be positive, got %dx%d", *width, *height)
	}
	if *passes <= 0 {
		return options{}, fmt.Errorf("passes must be positive, got %d", *passes)
	}

	return options{
		Scene:      *sceneName,
		Width:      *width,
		Height:     *height,
		Passes:     *passes,
		Output:     *out,
		Compare:    *compare,
		Preview:    *showPreview,
		Accelerate: *accelerate,
		Config:     config,
	}, nil
}

// loadScene resolves the scene flag, rebuilding built-ins with a BVH on request
func loadScene(name string, accelerate bool) (*scene.Scene, error) {
	s, err := scene.Load(name)
	if err != nil {
		return nil, err
	}
	if accelerate && !s.Accelerated() {
		cfg := scene.ToConfig(s)
		cfg.Accelerate = true
		return cfg.Build(s.Name)
	}
	return s, nil
}

// renderFrame renders in one pass, or progressively when more passes are requested
func renderFrame(ctx context.Context, s *scene.Scene, opts options, logger core.Logger) (*renderer.Frame, error) {
	if opts.Passes == 1 {
		rt, err := renderer.NewRaytracer(s, nil, opts.Width, opts.Height, opts.Config)
		if err != nil {
			return nil, err
		}
		frame, stats, err := rt.RenderPass(ctx)
		if err != nil {
			return nil, err
		}
		logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
			stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)
		return frame, nil
	}

	progressive := renderer.DefaultProgressiveConfig()
	progressive.MaxPasses = opts.Passes
	progressive.MaxSamplesPerPixel = opts.Config.SamplesPerPixel
	progressive.InitialSamples = min(progressive.InitialSamples, progressive.MaxSamplesPerPixel)

	pr, err := renderer.NewProgressiveRaytracer(s, nil, opts.Width, opts.Height, opts.Config, progressive, logger)
	if err != nil {
		return nil, err
	}

	passChan, errChan := pr.RenderProgressive(ctx)
	var last *renderer.Frame
	for result := range passChan {
		last = result.Frame
		logger.Printf("Pass %d: average luminance %.4f\n", result.PassNumber, result.Stats.AverageLuminance)
	}
	if err := <-errChan; err != nil {
		return nil, err
	}
	if last == nil {
		return nil, errors.New("no passes rendered")
	}
	return last, nil
}

func run(ctx context.Context, opts options, logger core.Logger) error {
	s, err := loadScene(opts.Scene, opts.Accelerate)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	logger.Printf("Using %s scene (%d spheres), %s mode, %s sampling, %d spp\n",
		s.Name, len(s.Spheres), opts.Config.Mode, opts.Config.Sampling, opts.Config.SamplesPerPixel)

	startTime := time.Now()
	frame, err := renderFrame(ctx, s, opts, logger)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))

	if err := loaders.SaveImage(opts.Output, frame); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", opts.Output)

	if opts.Compare != "" {
		if err := compareImages(opts.Output, opts.Compare, logger); err != nil {
			return err
		}
	}

	if opts.Preview {
		if err := preview.Show(ctx, frame); err != nil {
			return fmt.Errorf("preview failed: %w", err)
		}
	}
	return nil
}

func compareImages(output, reference string, logger core.Logger) error {
	got, err := loaders.LoadImage(output)
	if err != nil {
		return err
	}
	want, err := loaders.LoadImage(reference)
	if err != nil {
		return err
	}
	diff, err := loaders.MeanAbsDifference(got, want)
	if err != nil {
		return fmt.Errorf("compare with %s: %w", reference, err)
	}
	logger.Printf("Mean absolute difference from %s: %.4f\n", reference, diff)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting Sphere Path Tracer...")
	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
