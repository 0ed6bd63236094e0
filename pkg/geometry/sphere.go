package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/material"
)

var (
	// ErrInvalidRadius is returned for zero or non-finite sphere radii
	ErrInvalidRadius = errors.New("invalid sphere radius")
	// ErrInvalidCenter is returned for non-finite sphere centers
	ErrInvalidCenter = errors.New("invalid sphere center")
	// ErrNilMaterial is returned when a surface is built without a material
	ErrNilMaterial = errors.New("nil material")
)

// Sphere represents a sphere shape.
// A negative radius keeps the geometry but flips the outward normal inwards,
// which is how hollow glass shells are modelled.
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64, mat material.Material) (*Sphere, error) {
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere at %v: %w: %v", center, ErrInvalidRadius, radius)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("sphere: %w: %v", ErrInvalidCenter, center)
	}
	if mat == nil {
		return nil, fmt.Errorf("sphere at %v: %w", center, ErrNilMaterial)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius turns the normal inwards for negative radii
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

func (s *Sphere) sealed() {}
