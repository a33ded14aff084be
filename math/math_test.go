package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	// Component-wise product (attenuation)
	result = v1.MulVec(v2)
	expected = NewVec3(4, 10, 18)
	if result != expected {
		t.Errorf("MulVec: expected %v, got %v", expected, result)
	}

	// Dot product
	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Cross product (Right x Up = Front in right-handed system)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	// Check length is 1
	length := normalized.Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestVec3NearZero(t *testing.T) {
	if !Vec3Zero.NearZero() {
		t.Error("NearZero: expected the zero vector to be near-zero")
	}
	if NewVec3(1e-7, 0, 0).NearZero() {
		t.Error("NearZero: 1e-7 has length² 1e-14, well above the 1e-16 threshold")
	}
	if !NewVec3(1e-9, 1e-9, 1e-9).NearZero() {
		t.Error("NearZero: three 1e-9 components combine under the 1e-16 threshold")
	}
}

func TestVec3Reflect(t *testing.T) {
	// Reflect(reflect(d, n), n) == d for any unit d, unit n with dot(d,n) < 0.
	d := NewVec3(1, -1, 0).Unit()
	n := Vec3Up
	if d.Dot(n) >= 0 {
		t.Fatalf("test setup: want dot(d,n) < 0, got %v", d.Dot(n))
	}
	r := d.Reflect(n)
	back := r.Reflect(n)
	tolerance := float32(1e-5)
	if math.Abs(float64(back.X-d.X)) > float64(tolerance) ||
		math.Abs(float64(back.Y-d.Y)) > float64(tolerance) ||
		math.Abs(float64(back.Z-d.Z)) > float64(tolerance) {
		t.Errorf("Reflect: double reflection should return the original vector, got %v want %v", back, d)
	}
}

func TestVec3RefractPreservesDirectionOnNormalIncidence(t *testing.T) {
	// A ray travelling straight into a surface along -n should refract
	// straight through, unchanged in direction (only scaled by eta ratio
	// along the tangent plane, which is zero here).
	d := Vec3Down // travelling straight down into a surface with normal Up
	n := Vec3Up
	refracted := d.Refract(n, 1.0/1.5)
	tolerance := float32(1e-4)
	if math.Abs(float64(refracted.X)) > float64(tolerance) || math.Abs(float64(refracted.Z)) > float64(tolerance) {
		t.Errorf("Refract: normal-incidence ray should stay axis-aligned, got %v", refracted)
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}
