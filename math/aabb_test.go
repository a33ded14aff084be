package math

import "testing"

func TestRayAt(t *testing.T) {
	r := NewRay(Vec3Zero, Vec3Right)
	p := r.At(3)
	if p != NewVec3(3, 0, 0) {
		t.Errorf("At: expected (3,0,0), got %v", p)
	}
}

func TestIntervalSurrounds(t *testing.T) {
	i := NewInterval(0.001, 1e9)
	if i.Surrounds(0.001) {
		t.Error("Surrounds: boundary value should not be surrounded (open interval)")
	}
	if !i.Surrounds(1.0) {
		t.Error("Surrounds: 1.0 should be inside (0.001, 1e9)")
	}
}

func TestAabbUnionContainsBoth(t *testing.T) {
	a := Aabb{Min: NewVec3(-1, -1, -1), Max: NewVec3(1, 1, 1)}
	b := Aabb{Min: NewVec3(0, 0, 0), Max: NewVec3(5, 5, 5)}
	u := a.Union(b)
	if !u.Contains(a) || !u.Contains(b) {
		t.Errorf("Union: %v should contain both %v and %v", u, a, b)
	}
}

func TestAabbHitSlabTest(t *testing.T) {
	box := Aabb{Min: NewVec3(-1, -1, -1), Max: NewVec3(1, 1, 1)}
	hitRay := NewRay(NewVec3(0, 0, -5), Vec3Front)
	if !box.Hit(hitRay, NewInterval(0.001, 1e9)) {
		t.Error("Hit: ray aimed at the box center should hit")
	}

	missRay := NewRay(NewVec3(5, 5, -5), Vec3Front)
	if box.Hit(missRay, NewInterval(0.001, 1e9)) {
		t.Error("Hit: ray aimed well outside the box should miss")
	}
}

func TestAabbCentroid(t *testing.T) {
	box := Aabb{Min: NewVec3(0, 2, -4), Max: NewVec3(4, 4, 0)}
	if box.Centroid(0) != 2 || box.Centroid(1) != 3 || box.Centroid(2) != -2 {
		t.Errorf("Centroid: unexpected centroid for %v", box)
	}
}
