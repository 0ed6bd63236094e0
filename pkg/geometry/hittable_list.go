package geometry

import (
	"errors"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/material"
)

// ErrNilHittable is returned when adding a nil object to a list
var ErrNilHittable = errors.New("nil hittable")

// HittableList is an ordered collection of hittables resolved as one.
// Intersection is a linear closest-so-far sweep; scenes are small.
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...Hittable) (*HittableList, error) {
	list := &HittableList{}
	for _, obj := range objects {
		if err := list.Add(obj); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Add appends an object to the list
func (l *HittableList) Add(obj Hittable) error {
	if obj == nil {
		return ErrNilHittable
	}
	// typed nil pointers sneak past the interface check
	switch v := obj.(type) {
	case *Sphere:
		if v == nil {
			return ErrNilHittable
		}
	case *HittableList:
		if v == nil {
			return ErrNilHittable
		}
	}
	l.Objects = append(l.Objects, obj)
	return nil
}

// Len returns the number of direct members
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest intersection among all members
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, obj := range l.Objects {
		if hit, isHit := obj.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

func (l *HittableList) sealed() {}
