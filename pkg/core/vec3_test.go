package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", a.Cross(b), NewVec3(27, 6, -13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot product 12, got %f", got)
	}
}

func TestVec3_Length(t *testing.T) {
	v := NewVec3(2, 3, 6)
	if v.LengthSquared() != 49 {
		t.Errorf("Expected squared length 49, got %f", v.LengthSquared())
	}
	if v.Length() != 7 {
		t.Errorf("Expected length 7, got %f", v.Length())
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !v.ApproxEquals(NewVec3(0.6, 0, 0.8), 1e-12) {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", v)
	}
}

func TestVec3_NormalizeZeroPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when normalizing the zero vector")
		}
	}()
	NewVec3(0, 0, 0).Normalize()
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-3, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestVec3_GammaCorrectIsSqrtForGammaTwo(t *testing.T) {
	c := NewColor(0.25, 0.64, 1.0)
	got := c.GammaCorrect(2.0)
	expected := NewColor(0.5, 0.8, 1.0)
	if !got.ApproxEquals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// Negative channels must not produce NaN
	neg := NewColor(-0.1, 0, 0).GammaCorrect(2.0)
	if !neg.IsFinite() {
		t.Errorf("Gamma correction of negative channel produced %v", neg)
	}
}

func TestVec3_Clamp(t *testing.T) {
	got := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if !got.Equals(NewVec3(0, 0.5, 1)) {
		t.Errorf("Expected (0, 0.5, 1), got %v", got)
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewColor(1, 1, 1)
	blue := NewColor(0.5, 0.7, 1.0)

	if got := white.Lerp(blue, 0); !got.Equals(white) {
		t.Errorf("Lerp at 0 should be start, got %v", got)
	}
	if got := white.Lerp(blue, 1); !got.ApproxEquals(blue, 1e-12) {
		t.Errorf("Lerp at 1 should be end, got %v", got)
	}
	if got := white.Lerp(blue, 0.5); !got.ApproxEquals(NewColor(0.75, 0.85, 1.0), 1e-12) {
		t.Errorf("Lerp at 0.5 incorrect, got %v", got)
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	got := Reflect(v, n)
	if !got.ApproxEquals(NewVec3(1, 1, 0), 1e-12) {
		t.Errorf("Expected (1, 1, 0), got %v", got)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	// 45 degree incidence from air into glass
	uv := NewVec3(1, -1, 0).Normalize()
	n := NewVec3(0, 1, 0)
	eta := 1.0 / 1.5

	out := Refract(uv, n, eta)

	if math.Abs(out.Length()-1.0) > 1e-9 {
		t.Errorf("Refracted unit vector should stay unit length, got %f", out.Length())
	}

	sinIn := math.Sqrt(1 - math.Pow(uv.Negate().Dot(n), 2))
	sinOut := math.Sqrt(1 - math.Pow(out.Negate().Dot(n), 2))
	if math.Abs(sinIn*eta-sinOut) > 1e-9 {
		t.Errorf("Snell's law violated: eta*sin(in)=%f, sin(out)=%f", sinIn*eta, sinOut)
	}
	if out.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", out)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	got := ray.At(1.5)
	if !got.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1, 2, 0), got %v", got)
	}
	if !ray.At(0).Equals(ray.Origin) {
		t.Errorf("At(0) should return the origin")
	}
}
