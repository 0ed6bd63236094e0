package geometry

import (
	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/material"
)

// Hittable is anything a ray can be tested against.
// The set is closed: *Sphere and *HittableList.
type Hittable interface {
	// Hit returns the nearest intersection with parameter strictly inside (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	sealed()
}
