package scene

import (
	"testing"

	rmath "github.com/ThadeuFerreira/rt-core/math"
)

func TestSphereHitFromOutside(t *testing.T) {
	sphere := NewSphere(rmath.NewVec3(0, 0, -1), 0.5, NewLambertian(rmath.NewVec3(0.5, 0.5, 0.5)))
	r := rmath.NewRay(rmath.Vec3Zero, rmath.Vec3Back)
	rec, ok := sphere.Hit(r, rmath.NewInterval(0.001, 1e9))
	if !ok {
		t.Fatal("expected a hit on sphere directly ahead")
	}
	if !rec.FrontFace {
		t.Error("expected FrontFace true for a ray from outside the sphere")
	}
	if rec.Normal.Dot(r.Direction) >= 0 {
		t.Errorf("normal should oppose ray direction, got %v vs %v", rec.Normal, r.Direction)
	}
}

func TestSphereMissesOutsideInterval(t *testing.T) {
	sphere := NewSphere(rmath.NewVec3(0, 0, -1), 0.5, NewLambertian(rmath.Vec3One))
	r := rmath.NewRay(rmath.Vec3Zero, rmath.Vec3Back)
	if _, ok := sphere.Hit(r, rmath.NewInterval(0.001, 0.3)); ok {
		t.Error("expected no hit when the valid interval ends before the sphere")
	}
}

func TestSphereBbox(t *testing.T) {
	sphere := NewSphere(rmath.NewVec3(1, 2, 3), 2, NewLambertian(rmath.Vec3One))
	box := sphere.Bbox()
	want := rmath.Aabb{Min: rmath.NewVec3(-1, 0, 1), Max: rmath.NewVec3(3, 4, 5)}
	if box != want {
		t.Errorf("expected bbox %v, got %v", want, box)
	}
}

func TestCubeHitFrontFace(t *testing.T) {
	cube := NewCube(rmath.NewVec3(0, 0, -2), rmath.NewVec3(2, 2, 2), NewLambertian(rmath.Vec3One))
	r := rmath.NewRay(rmath.Vec3Zero, rmath.Vec3Back)
	rec, ok := cube.Hit(r, rmath.NewInterval(0.001, 1e9))
	if !ok {
		t.Fatal("expected a hit on the cube directly ahead")
	}
	want := rmath.NewVec3(0, 0, 1)
	if rec.Normal != want {
		t.Errorf("expected normal %v on the near face, got %v", want, rec.Normal)
	}
	if rec.T != 1 {
		t.Errorf("expected t=1 for a unit-distance face, got %v", rec.T)
	}
}

func TestCubeMiss(t *testing.T) {
	cube := NewCube(rmath.NewVec3(5, 5, 5), rmath.NewVec3(1, 1, 1), NewLambertian(rmath.Vec3One))
	r := rmath.NewRay(rmath.Vec3Zero, rmath.Vec3Back)
	if _, ok := cube.Hit(r, rmath.NewInterval(0.001, 1e9)); ok {
		t.Error("expected no hit on a cube well outside the ray's path")
	}
}
