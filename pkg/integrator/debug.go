package integrator

import (
	"math"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/geometry"
)

// BackgroundIntegrator ignores geometry and returns the sky for every ray
type BackgroundIntegrator struct {
	Background Background
}

// RayColor implements Integrator
func (b *BackgroundIntegrator) RayColor(ray core.Ray, _ geometry.Hittable, _ core.Sampler, _ int) core.Color {
	return b.Background.Color(ray)
}

// HitMaskIntegrator paints every hit with a flat color over the sky
type HitMaskIntegrator struct {
	Background Background
	HitColor   core.Color
}

// NewHitMaskIntegrator creates a mask integrator with the default sky
func NewHitMaskIntegrator(hitColor core.Color) *HitMaskIntegrator {
	return &HitMaskIntegrator{Background: DefaultBackground(), HitColor: hitColor}
}

// RayColor implements Integrator
func (h *HitMaskIntegrator) RayColor(ray core.Ray, world geometry.Hittable, _ core.Sampler, _ int) core.Color {
	if _, isHit := world.Hit(ray, 0, math.Inf(1)); isHit {
		return h.HitColor
	}
	return h.Background.Color(ray)
}

// NormalIntegrator visualizes surface normals mapped from [-1,1] to [0,1]
type NormalIntegrator struct {
	Background Background
}

// NewNormalIntegrator creates a normal integrator with the default sky
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{Background: DefaultBackground()}
}

// RayColor implements Integrator
func (n *NormalIntegrator) RayColor(ray core.Ray, world geometry.Hittable, _ core.Sampler, _ int) core.Color {
	hit, isHit := world.Hit(ray, 0, math.Inf(1))
	if !isHit {
		return n.Background.Color(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
