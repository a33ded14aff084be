package bvh

import (
	"math/rand"
	"testing"

	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/scene"
)

func scatteredSpheres(n int) []scene.Primitive {
	src := rand.New(rand.NewSource(1))
	prims := make([]scene.Primitive, n)
	for i := range prims {
		center := rmath.NewVec3(
			float32(src.Float64()*20-10),
			float32(src.Float64()*20-10),
			float32(src.Float64()*20-10),
		)
		prims[i] = scene.NewSphere(center, 0.3, scene.NewLambertian(rmath.Vec3One))
	}
	return prims
}

func TestFlattenEveryPrimitiveReachableOnce(t *testing.T) {
	prims := scatteredSpheres(37)
	tree := BuildTree(prims)

	seen := make(map[int]int)
	for _, n := range tree.Nodes {
		if n.PrimitiveCount == 0 {
			continue
		}
		for i := n.PrimitiveOffset; i < n.PrimitiveOffset+n.PrimitiveCount; i++ {
			seen[i]++
		}
	}
	if len(seen) != len(prims) {
		t.Fatalf("expected %d primitives reachable from leaves, got %d", len(prims), len(seen))
	}
	for i, count := range seen {
		if count != 1 {
			t.Errorf("primitive %d visited %d times, expected exactly once", i, count)
		}
	}
}

func TestFlattenIndicesInBounds(t *testing.T) {
	prims := scatteredSpheres(50)
	tree := BuildTree(prims)
	n := len(tree.Nodes)
	for i, node := range tree.Nodes {
		if node.PrimitiveCount > 0 {
			if node.PrimitiveOffset < 0 || node.PrimitiveOffset+node.PrimitiveCount > len(tree.Primitives) {
				t.Errorf("node %d: leaf primitive range out of bounds", i)
			}
		} else if node.SecondChildOffset <= i || node.SecondChildOffset >= n {
			t.Errorf("node %d: second child offset %d out of bounds [%d,%d)", i, node.SecondChildOffset, i+1, n)
		}
	}
}

func TestParentBboxContainsChildren(t *testing.T) {
	prims := scatteredSpheres(40)
	tree := BuildTree(prims)

	for i, node := range tree.Nodes {
		parentBox := rmath.Aabb{Min: node.Min, Max: node.Max}
		if node.PrimitiveCount > 0 {
			for p := node.PrimitiveOffset; p < node.PrimitiveOffset+node.PrimitiveCount; p++ {
				if !parentBox.Contains(tree.Primitives[p].Bbox()) {
					t.Errorf("leaf %d bbox does not contain primitive %d's bbox", i, p)
				}
			}
			continue
		}
		leftBox := rmath.Aabb{Min: tree.Nodes[i+1].Min, Max: tree.Nodes[i+1].Max}
		rightBox := rmath.Aabb{Min: tree.Nodes[node.SecondChildOffset].Min, Max: tree.Nodes[node.SecondChildOffset].Max}
		if !parentBox.Contains(leftBox) || !parentBox.Contains(rightBox) {
			t.Errorf("node %d bbox does not contain one of its children", i)
		}
	}
}

func TestTraverseMatchesLinearScan(t *testing.T) {
	prims := scatteredSpheres(80)
	tree := BuildTree(prims)
	s := scene.NewScene(nil)
	for _, p := range prims {
		s.Add(p)
	}

	src := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		origin := rmath.NewVec3(0, 0, 15)
		dir := rmath.NewVec3(
			float32(src.Float64()*2-1),
			float32(src.Float64()*2-1),
			float32(src.Float64()*2-1),
		).Unit()
		r := rmath.NewRay(origin, dir)
		rayT := rmath.NewInterval(0.001, 1e9)

		bvhRec, bvhOK := tree.Hit(r, rayT)
		linearRec, linearOK := s.HitLinear(r, rayT)

		if bvhOK != linearOK {
			t.Fatalf("sample %d: BVH hit=%v, linear hit=%v", i, bvhOK, linearOK)
		}
		if bvhOK && (bvhRec.T < linearRec.T-1e-4 || bvhRec.T > linearRec.T+1e-4) {
			t.Errorf("sample %d: BVH t=%v, linear t=%v", i, bvhRec.T, linearRec.T)
		}
	}
}

func TestEmptyTreeMisses(t *testing.T) {
	tree := BuildTree(nil)
	_, ok := tree.Hit(rmath.NewRay(rmath.Vec3Zero, rmath.Vec3Back), rmath.NewInterval(0.001, 1e9))
	if ok {
		t.Error("expected no hit against an empty tree")
	}
}
