package bvh

import (
	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/scene"
)

// MaxStackDepth bounds the explicit traversal stack. 64 comfortably
// covers any tree built with LeafThreshold primitives per leaf over
// realistic scene sizes; the GPU kernel (traverse in gpu_shader.go) uses
// the same algorithm with a 32-entry per-invocation stack array.
const MaxStackDepth = 64

// Tree pairs a flattened BVH with the primitive order its leaves index
// into — the two arrays Build/Flatten hand off together and Traverse
// needs jointly.
type Tree struct {
	Nodes      []FlatNode
	Primitives []scene.Primitive
}

// BuildTree builds and flattens a BVH over prims in one step.
func BuildTree(prims []scene.Primitive) Tree {
	if len(prims) == 0 {
		return Tree{}
	}
	root, order := Build(prims)
	return Tree{Nodes: Flatten(root), Primitives: order}
}

// Hit traverses the tree iteratively with an explicit stack, returning
// the closest primitive hit within rayT. Node order favors the child
// the ray direction points toward first, so an early exact match on a
// closer child lets later slab tests reject on a tighter interval.
func (t Tree) Hit(r rmath.Ray, rayT rmath.Interval) (scene.HitRecord, bool) {
	if len(t.Nodes) == 0 {
		return scene.HitRecord{}, false
	}

	var stack [MaxStackDepth]int
	sp := 0
	stack[sp] = 0
	sp++

	var closest scene.HitRecord
	hitAnything := false
	closestT := rayT.Max

	for sp > 0 {
		sp--
		idx := stack[sp]
		n := t.Nodes[idx]

		box := rmath.Aabb{Min: n.Min, Max: n.Max}
		if !box.Hit(r, rmath.NewInterval(rayT.Min, closestT)) {
			continue
		}

		if n.PrimitiveCount > 0 {
			for i := n.PrimitiveOffset; i < n.PrimitiveOffset+n.PrimitiveCount; i++ {
				if rec, ok := t.Primitives[i].Hit(r, rmath.NewInterval(rayT.Min, closestT)); ok {
					hitAnything = true
					closestT = rec.T
					closest = rec
				}
			}
			continue
		}

		near, far := idx+1, n.SecondChildOffset
		if rayDirComponent(r, n.SplitAxis) < 0 {
			near, far = far, near
		}
		// Push far first so near is processed first (LIFO).
		if sp+2 <= MaxStackDepth {
			stack[sp] = far
			sp++
			stack[sp] = near
			sp++
		}
	}

	return closest, hitAnything
}

func rayDirComponent(r rmath.Ray, axis int) float32 {
	switch axis {
	case 0:
		return r.Direction.X
	case 1:
		return r.Direction.Y
	default:
		return r.Direction.Z
	}
}
