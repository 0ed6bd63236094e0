package scene

import (
	"math"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/integrator"
	"github.com/df07/rt-one/pkg/material"
	"github.com/df07/rt-one/pkg/renderer"
)

// Amber is the flat color used to mask sphere hits
var Amber = core.NewColor(0.996, 0.953, 0.780)

// NewGradientScene renders only the sky gradient
func NewGradientScene(opts Options) (*Scene, error) {
	b := newBuilder("gradient")
	b.integrator = &integrator.BackgroundIntegrator{Background: integrator.DefaultBackground()}
	b.sampling(1, 1)
	return b.build(opts)
}

// NewRaySphereScene masks a single sphere in front of the camera
func NewRaySphereScene(opts Options) (*Scene, error) {
	b := newBuilder("ray-sphere")
	b.integrator = integrator.NewHitMaskIntegrator(Amber)
	b.sampling(1, 1)
	b.sphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	return b.build(opts)
}

// NewNormalsScene shades a single sphere by its surface normals
func NewNormalsScene(opts Options) (*Scene, error) {
	b := newBuilder("normals")
	b.integrator = integrator.NewNormalIntegrator()
	b.sampling(1, 1)
	b.sphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))
	return b.build(opts)
}

// NewWorldScene shades a sphere resting on a huge ground sphere by normals
func NewWorldScene(opts Options) (*Scene, error) {
	b := newBuilder("world")
	b.integrator = integrator.NewNormalIntegrator()
	b.sampling(1, 1)
	addSphereOnGround(b)
	return b.build(opts)
}

// NewAntialiasingScene is the normals world with many jittered samples per pixel
func NewAntialiasingScene(opts Options) (*Scene, error) {
	b := newBuilder("antialiasing")
	b.integrator = integrator.NewNormalIntegrator()
	b.sampling(100, 1)
	addSphereOnGround(b)
	return b.build(opts)
}

// NewDiffuseScene path traces grey lambertian spheres
func NewDiffuseScene(opts Options) (*Scene, error) {
	b := newBuilder("diffuse")
	addSphereOnGround(b)
	return b.build(opts)
}

func addSphereOnGround(b *builder) {
	grey := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	b.sphere(core.NewVec3(0, 0, -1), 0.5, grey)
	b.sphere(core.NewVec3(0, -100.5, -1), 100, grey)
}

// NewMetalScene places polished metal spheres either side of a diffuse one
func NewMetalScene(opts Options) (*Scene, error) {
	b := newBuilder("metal")
	addThreeSpheres(b,
		material.NewLambertian(core.NewColor(0.7, 0.3, 0.3)),
		material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0),
		material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0),
	)
	return b.build(opts)
}

// NewFuzzScene is the metal scene with brushed metal
func NewFuzzScene(opts Options) (*Scene, error) {
	b := newBuilder("fuzz")
	addThreeSpheres(b,
		material.NewLambertian(core.NewColor(0.7, 0.3, 0.3)),
		material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.3),
		material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0),
	)
	return b.build(opts)
}

// NewGlassScene swaps the left metal sphere for solid glass
func NewGlassScene(opts Options) (*Scene, error) {
	b := newBuilder("glass")
	addThreeSpheres(b,
		material.NewLambertian(core.NewColor(0.1, 0.2, 0.5)),
		b.dielectric(1.5),
		material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0),
	)
	return b.build(opts)
}

// NewHollowGlassScene adds an inverted inner sphere making the glass a thin shell
func NewHollowGlassScene(opts Options) (*Scene, error) {
	b := newBuilder("hollow-glass")
	addHollowGlassWorld(b)
	return b.build(opts)
}

func addHollowGlassWorld(b *builder) {
	glass := b.dielectric(1.5)
	addThreeSpheres(b,
		material.NewLambertian(core.NewColor(0.1, 0.2, 0.5)),
		glass,
		material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0),
	)
	b.sphere(core.NewVec3(-1, 0, -1), -0.4, glass)
}

// addThreeSpheres lays out the ground and a row of three spheres
func addThreeSpheres(b *builder, center, left, right material.Material) {
	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	b.sphere(core.NewVec3(0, -100.5, -1), 100, ground)
	b.sphere(core.NewVec3(0, 0, -1), 0.5, center)
	b.sphere(core.NewVec3(-1, 0, -1), 0.5, left)
	b.sphere(core.NewVec3(1, 0, -1), 0.5, right)
}

// NewCameraScene shows two touching spheres through a wide field of view
func NewCameraScene(opts Options) (*Scene, error) {
	b := newBuilder("camera")
	b.camera(renderer.CameraConfig{VFov: 90})

	r := math.Cos(math.Pi / 4)
	b.sphere(core.NewVec3(-r, 0, -1), r, material.NewLambertian(core.NewColor(0, 0, 1)))
	b.sphere(core.NewVec3(r, 0, -1), r, material.NewLambertian(core.NewColor(1, 0, 0)))
	return b.build(opts)
}

// NewDefocusScene views the hollow glass world from afar through a wide aperture
func NewDefocusScene(opts Options) (*Scene, error) {
	b := newBuilder("defocus")

	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	b.camera(renderer.CameraConfig{
		Center:        lookFrom,
		LookAt:        lookAt,
		VFov:          20,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	})

	addHollowGlassWorld(b)
	return b.build(opts)
}

// NewFinalScene builds the random sphere field; opts.Seed fixes its layout
func NewFinalScene(opts Options) (*Scene, error) {
	b := newBuilder("final")
	b.camera(renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		AspectRatio:   3.0 / 2.0,
		VFov:          20,
		Aperture:      0.1,
		FocusDistance: 10.0,
	})
	b.sampling(500, 50)

	sampler := core.NewSeededSampler(opts.Seed)

	b.sphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	glass := b.dielectric(1.5)
	landmark := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for bb := -11; bb < 11; bb++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(bb)+0.9*sampler.Get1D(),
			)
			if center.Subtract(landmark).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomColor(sampler, 0.5, 1)
				mat = material.NewMetal(albedo, core.RandomRange(sampler, 0, 0.5))
			default:
				mat = glass
			}
			b.sphere(center, 0.2, mat)
		}
	}

	b.sphere(core.NewVec3(0, 1, 0), 1.0, glass)
	b.sphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1)))
	b.sphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0))

	return b.build(opts)
}
