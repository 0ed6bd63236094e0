package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/output"
	"github.com/df07/rt-one/pkg/renderer"
	"github.com/df07/rt-one/pkg/scene"
)

// firstPPMScene renders the colour ramp instead of a path traced scene
const firstPPMScene = "first-ppm"

// firstPPMSize is the edge length of the colour ramp image
const firstPPMSize = 256

// options holds the parsed command line
type options struct {
	Scene     string
	Width     int
	Samples   int // 0 keeps the scene's own setting
	Depth     int // 0 keeps the scene's own setting
	Passes    int
	Workers   int
	Seed      int64
	Out       string
	Thumbnail uint
	Upload    bool
	EnvFile   string
	Help      bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rt-one", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.Scene, "scene", "final", "Scene to render (see -help for the list)")
	fs.IntVar(&opts.Width, "width", scene.DefaultWidth, "Image width in pixels")
	fs.IntVar(&opts.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.Passes, "passes", 1, "Progressive passes; more than 1 renders in tiles")
	fs.IntVar(&opts.Workers, "workers", 0, "Parallel workers for tiled rendering (0 = CPU count)")
	fs.Int64Var(&opts.Seed, "seed", 42, "Random seed")
	fs.StringVar(&opts.Out, "out", "", "Output file; the extension picks the format (default output/<scene>.ppm)")
	fs.UintVar(&opts.Thumbnail, "thumbnail", 0, "Also write a PNG thumbnail no larger than this size")
	fs.BoolVar(&opts.Upload, "upload", false, "Upload the image to S3 (configured by RT_S3_* variables)")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Env file with upload settings")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.Out == "" {
		opts.Out = defaultOutputPath(opts.Scene)
	}
	if opts.Passes <= 0 {
		return options{}, fmt.Errorf("passes must be positive, got %d", opts.Passes)
	}
	return opts, nil
}

func defaultOutputPath(sceneName string) string {
	return filepath.Join("output", sceneName+".ppm")
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Progressive Raytracer")
	fmt.Fprintln(w, "Usage: rt-one [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	fmt.Fprintf(w, "  %-13s %s\n", firstPPMScene, "Red/green colour ramp, no ray tracing")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-13s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run with -h for the option list.")
}

// render produces the image for the selected scene
func render(ctx context.Context, opts options, logger core.Logger) (*image.RGBA, error) {
	if opts.Scene == firstPPMScene {
		return output.TestPattern(firstPPMSize, firstPPMSize), nil
	}

	sc, err := scene.New(opts.Scene, scene.Options{Width: opts.Width, Seed: opts.Seed})
	if err != nil {
		return nil, err
	}
	if opts.Samples > 0 {
		sc.SamplingConfig.SamplesPerPixel = opts.Samples
	}
	if opts.Depth > 0 {
		sc.SamplingConfig.MaxDepth = opts.Depth
	}

	raytracer, err := sc.NewRaytracer()
	if err != nil {
		return nil, err
	}
	raytracer.SetSampler(core.NewSeededSampler(opts.Seed))

	logger.Printf("Rendering %s at %dx%d (%d objects, %d samples, depth %d)\n",
		sc.Name, sc.Width, sc.Height, sc.ObjectCount(),
		sc.SamplingConfig.SamplesPerPixel, sc.SamplingConfig.MaxDepth)

	if opts.Passes == 1 && opts.Workers == 0 {
		return raytracer.RenderPass(), nil
	}

	config := renderer.DefaultProgressiveConfig()
	config.MaxSamplesPerPixel = sc.SamplingConfig.SamplesPerPixel
	config.MaxPasses = opts.Passes
	config.NumWorkers = opts.Workers
	config.Seed = opts.Seed

	progressive, err := renderer.NewProgressiveRaytracer(raytracer, config, logger)
	if err != nil {
		return nil, err
	}

	passes, errs := progressive.RenderProgressive(ctx)
	var last *image.RGBA
	for pass := range passes {
		last = pass.Image
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	if last == nil {
		return nil, errors.New("progressive render produced no passes")
	}
	return last, nil
}

func run(ctx context.Context, opts options, logger core.Logger) error {
	startTime := time.Now()
	img, err := render(ctx, opts, logger)
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.Scene, err)
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))

	if err := output.Save(opts.Out, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", opts.Out)

	if opts.Thumbnail > 0 {
		thumbPath := output.ThumbnailPath(opts.Out)
		if err := output.Save(thumbPath, output.Thumbnail(img, opts.Thumbnail)); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if opts.Upload {
		config, err := output.LoadUploadConfig(opts.EnvFile)
		if err != nil {
			return err
		}
		uploader, err := output.NewUploader(config)
		if err != nil {
			return err
		}
		location, err := uploader.UploadImage(ctx, opts.Out, img)
		if err != nil {
			return err
		}
		logger.Printf("Uploaded to %s\n", location)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Error: %v", err)
	}
	if opts.Help {
		printHelp(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		stop()
		log.Fatalf("Error: %v", err)
	}
}
