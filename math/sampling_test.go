package math

import (
	"testing"

	"github.com/ThadeuFerreira/rt-core/rng"
)

func TestRandomUnitVectorIsUnit(t *testing.T) {
	s := rng.New(1)
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(s)
		l := v.Length()
		if l < 0.999 || l > 1.001 {
			t.Fatalf("RandomUnitVector: expected unit length, got %v", l)
		}
	}
}

func TestRandomUnitVectorMeanIsZero(t *testing.T) {
	s := rng.New(2)
	const n = 100000
	sum := Vec3Zero
	for i := 0; i < n; i++ {
		sum = sum.Add(RandomUnitVector(s))
	}
	mean := sum.Mul(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("RandomUnitVector: mean direction over %d samples should be near zero, got %v (len %v)", n, mean, mean.Length())
	}
}

func TestRandomInUnitDiskBounds(t *testing.T) {
	s := rng.New(3)
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(s)
		if p.Z != 0 {
			t.Fatalf("RandomInUnitDisk: expected Z==0, got %v", p.Z)
		}
		if p.LengthSqr() >= 1 {
			t.Fatalf("RandomInUnitDisk: point outside unit disk: %v", p)
		}
	}
}

func TestSampleSquareRange(t *testing.T) {
	s := rng.New(4)
	for i := 0; i < 1000; i++ {
		j := SampleSquare(s)
		if j.X < -0.5 || j.X >= 0.5 || j.Y < -0.5 || j.Y >= 0.5 {
			t.Fatalf("SampleSquare: expected jitter in [-0.5,0.5), got %v", j)
		}
	}
}

func TestLambertianScatterMeanDirection(t *testing.T) {
	// Mirrors the material scatter reversal property: the mean of many
	// Lambertian scatter directions (normal + random_unit_vector) should
	// be parallel to the normal, up to Monte-Carlo noise.
	s := rng.New(5)
	n := Vec3Up
	const samples = 100000
	sum := Vec3Zero
	for i := 0; i < samples; i++ {
		dir := n.Add(RandomUnitVector(s))
		if dir.NearZero() {
			dir = n
		}
		sum = sum.Add(dir.Unit())
	}
	mean := sum.Mul(1.0 / samples)
	// perpendicular (X,Z) component should be small; parallel (Y) should be positive.
	perp := NewVec3(mean.X, 0, mean.Z).Length()
	if perp > 1e-2 {
		t.Errorf("Lambertian scatter mean: perpendicular component too large: %v", perp)
	}
	if mean.Y <= 0 {
		t.Errorf("Lambertian scatter mean: expected positive component along normal, got %v", mean.Y)
	}
}
