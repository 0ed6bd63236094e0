package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/geometry"
	"github.com/df07/rt-one/pkg/integrator"
)

// ErrInvalidSampling is returned for non-positive sample or depth limits
var ErrInvalidSampling = errors.New("invalid sampling config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate reports whether the configuration can drive a render
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidSampling, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidSampling, c.MaxDepth)
	}
	return nil
}

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
	config     SamplingConfig
	sampler    core.Sampler
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hittable, camera *Camera, integratorInst integrator.Integrator, width, height int, config SamplingConfig) (*Raytracer, error) {
	if world == nil || camera == nil || integratorInst == nil {
		return nil, errors.New("raytracer requires a world, camera and integrator")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
		config:     config,
		sampler:    core.NewSeededSampler(42), // Deterministic for testing
	}, nil
}

// SetSampler replaces the sampler used by RenderPass
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig { return rt.config }

// RenderPass renders the full image single-threaded with SamplesPerPixel samples
func (rt *Raytracer) RenderPass() *image.RGBA {
	pixelStats := NewPixelStatsGrid(rt.width, rt.height)
	bounds := image.Rect(0, 0, rt.width, rt.height)
	rt.RenderBounds(bounds, pixelStats, rt.sampler, rt.config.SamplesPerPixel)
	return rt.assemble(pixelStats)
}

// RenderBounds raises every pixel within bounds to targetSamples samples.
// pixelStats is indexed [y][x] in image coordinates with row 0 at the top.
// Only pixels inside bounds are touched, so disjoint bounds can render concurrently.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Camera t runs bottom to top
		j := rt.height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[y][i]
			for ps.SampleCount < targetSamples {
				jitter := sampler.Get2D()
				s := (float64(i) + jitter.X) / float64(rt.width)
				t := (float64(j) + jitter.Y) / float64(rt.height)

				ray := rt.camera.SampleRay(s, t, sampler)
				ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler, rt.config.MaxDepth))
			}
			stats.update(ps.SampleCount)
		}
	}

	stats.finalize()
	return stats
}

// assemble converts accumulated pixel stats into an image
func (rt *Raytracer) assemble(pixelStats [][]PixelStats) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			img.SetRGBA(x, y, ToRGBA(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// ToRGBA converts a linear color to an opaque 8-bit pixel with gamma 2 correction
func ToRGBA(colorVec core.Color) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}
