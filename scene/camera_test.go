package scene

import (
	"testing"

	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/rng"
)

func testCamera() *Camera {
	return NewCamera(200, 100, 10, 10,
		rmath.NewVec3(0, 0, 0), rmath.NewVec3(0, 0, -1), rmath.Vec3Up,
		90, 0, 1)
}

func TestCameraCenterRayPointsForward(t *testing.T) {
	c := testCamera()
	s := rng.New(1)
	r := c.GenerateRay(c.ImageWidth/2, c.ImageHeight/2, s)
	if r.Direction.Z >= 0 {
		t.Errorf("expected center ray to point toward -Z, got direction %v", r.Direction)
	}
}

func TestCameraPinholeOriginIsLookFrom(t *testing.T) {
	c := testCamera() // DefocusAngleDegrees == 0
	s := rng.New(2)
	for i := 0; i < 50; i++ {
		r := c.GenerateRay(10, 10, s)
		if r.Origin != c.LookFrom {
			t.Fatalf("pinhole camera: expected ray origin %v, got %v", c.LookFrom, r.Origin)
		}
	}
}

func TestCameraDefocusJitterStaysNearLookFrom(t *testing.T) {
	c := NewCamera(200, 100, 10, 10,
		rmath.NewVec3(0, 0, 0), rmath.NewVec3(0, 0, -1), rmath.Vec3Up,
		90, 10, 1)
	s := rng.New(3)
	for i := 0; i < 200; i++ {
		r := c.GenerateRay(10, 10, s)
		if r.Origin.Distance(c.LookFrom) > c.FocusDistance {
			t.Fatalf("defocus jitter should stay within roughly a focus-distance radius, got %v", r.Origin)
		}
	}
}
