package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/rt-one/pkg/core"
	"github.com/df07/rt-one/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))

func mustSphere(t *testing.T, center core.Point3, radius float64) *Sphere {
	t.Helper()
	s, err := NewSphere(center, radius, testMaterial)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func TestNewSphere_Validation(t *testing.T) {
	tests := []struct {
		name    string
		center  core.Point3
		radius  float64
		mat     material.Material
		wantErr error
	}{
		{"valid", core.NewVec3(0, 0, -1), 0.5, testMaterial, nil},
		{"negative radius shell", core.NewVec3(0, 0, -1), -0.4, testMaterial, nil},
		{"zero radius", core.NewVec3(0, 0, -1), 0, testMaterial, ErrInvalidRadius},
		{"NaN radius", core.NewVec3(0, 0, -1), math.NaN(), testMaterial, ErrInvalidRadius},
		{"infinite radius", core.NewVec3(0, 0, -1), math.Inf(1), testMaterial, ErrInvalidRadius},
		{"infinite center", core.NewVec3(math.Inf(-1), 0, 0), 1, testMaterial, ErrInvalidCenter},
		{"nil material", core.NewVec3(0, 0, -1), 0.5, nil, ErrNilMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSphere(tt.center, tt.radius, tt.mat)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if s == nil {
					t.Fatal("Expected sphere, got nil")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if s != nil {
				t.Errorf("Expected nil sphere on error")
			}
		})
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != testMaterial {
				t.Errorf("Hit record should carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_NegativeRadiusFlipsOrientation(t *testing.T) {
	shell := mustSphere(t, core.NewVec3(0, 0, 0), -1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := shell.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on inverted sphere")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got %f", hit.T)
	}
	// The geometric normal points inwards, so an outside ray counts as a back face hit
	if hit.FrontFace {
		t.Error("Expected back face for inverted sphere hit from outside")
	}
	if !hit.Normal.ApproxEquals(core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Normal should still face the ray, got %v", hit.Normal)
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if !hit.Point.ApproxEquals(expectedPoint, 1e-9) {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit {
		t.Fatal("Expected far root hit")
	}
	if math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got %f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Far root of a ray entering from outside is a back face hit")
	}
}

func TestSphere_Hit_RootsSatisfySphereEquation(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	center := core.NewVec3(0.3, -0.2, -2)
	radius := 0.75
	sphere := mustSphere(t, center, radius)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.RandomUnitVector(sampler).Multiply(3).Add(center)
		// aim roughly at the sphere with some spread
		target := center.Add(core.RandomUnitVector(sampler).Multiply(radius * 1.2))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			continue
		}
		hits++

		distance := ray.At(hit.T).Subtract(center).Length()
		if math.Abs(distance-radius) > 1e-9 {
			t.Fatalf("Hit point off the surface: |P-C|=%f, radius=%f", distance, radius)
		}
		if ray.Direction.Dot(hit.Normal) > 1e-12 {
			t.Fatalf("Normal %v does not face ray direction %v", hit.Normal, ray.Direction)
		}
		if math.Abs(hit.Normal.Length()-1.0) > 1e-9 {
			t.Fatalf("Normal not unit length: %f", hit.Normal.Length())
		}
	}

	if hits == 0 {
		t.Fatal("Expected some rays to hit the sphere")
	}
}
