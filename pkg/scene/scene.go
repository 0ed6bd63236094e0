package scene

import (
	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/geometry"
	"github.com/df07/rt-one/pkg/integrator"
	"github.com/df07/rt-one/pkg/material"
	"github.com/df07/rt-one/pkg/renderer"
)

// DefaultWidth is the image width used when Options leaves it unset
const DefaultWidth = 400

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.HittableList // Objects in the scene
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	Integrator     integrator.Integrator
	Width          int // Image width
	Height         int // Image height, derived from the camera aspect ratio
	SamplingConfig renderer.SamplingConfig
}

// Options carries the caller's choices that shape a scene
type Options struct {
	Width int   // Image width, 0 uses DefaultWidth
	Seed  int64 // Seed for scenes with randomized content
}

// NewRaytracer creates a single-threaded raytracer for this scene
func (s *Scene) NewRaytracer() (*renderer.Raytracer, error) {
	return renderer.NewRaytracer(s.World, s.Camera, s.Integrator, s.Width, s.Height, s.SamplingConfig)
}

// ObjectCount returns the number of top-level objects in the world
func (s *Scene) ObjectCount() int {
	return s.World.Len()
}

// builder assembles a scene, keeping the first construction error
type builder struct {
	name           string
	world          *geometry.HittableList
	cameraConfig   renderer.CameraConfig
	integrator     integrator.Integrator
	samplingConfig renderer.SamplingConfig
	err            error
}

func newBuilder(name string) *builder {
	return &builder{
		name:           name,
		world:          &geometry.HittableList{},
		cameraConfig:   renderer.DefaultCameraConfig(),
		integrator:     integrator.NewPathTracingIntegrator(integrator.DefaultBackground()),
		samplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// camera merges overrides onto the default camera
func (b *builder) camera(overrides renderer.CameraConfig) {
	b.cameraConfig = renderer.MergeCameraConfig(b.cameraConfig, overrides)
}

// sampling sets the samples per pixel and bounce limit
func (b *builder) sampling(samplesPerPixel, maxDepth int) {
	b.samplingConfig = renderer.SamplingConfig{SamplesPerPixel: samplesPerPixel, MaxDepth: maxDepth}
}

func (b *builder) sphere(center core.Point3, radius float64, mat material.Material) {
	if b.err != nil {
		return
	}
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.world.Add(sphere)
}

func (b *builder) dielectric(refractiveIndex float64) material.Material {
	glass, err := material.NewDielectric(refractiveIndex)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return nil
	}
	return glass
}

func (b *builder) build(opts Options) (*Scene, error) {
	if b.err != nil {
		return nil, b.wrap(b.err)
	}
	if err := b.samplingConfig.Validate(); err != nil {
		return nil, b.wrap(err)
	}

	camera, err := renderer.NewCamera(b.cameraConfig)
	if err != nil {
		return nil, b.wrap(err)
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	return &Scene{
		Name:           b.name,
		World:          b.world,
		Camera:         camera,
		CameraConfig:   b.cameraConfig,
		Integrator:     b.integrator,
		Width:          width,
		Height:         camera.ImageHeight(width),
		SamplingConfig: b.samplingConfig,
	}, nil
}

func (b *builder) wrap(err error) error {
	return &BuildError{Scene: b.name, Err: err}
}

// BuildError reports the first construction failure of a scene
type BuildError struct {
	Scene string
	Err   error
}

func (e *BuildError) Error() string {
	return "scene " + e.Scene + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
