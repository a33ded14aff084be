// Package bvh builds and flattens a Bounding Volume Hierarchy over a
// primitive list, then traverses it to accelerate ray-scene intersection
// from O(n) to roughly O(log n). The pointer tree produced by Build is a
// one-way input to Flatten: callers build once, flatten once, and
// discard the tree, keeping only the flat array for traversal.
package bvh

import (
	"sort"

	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/scene"
)

// LeafThreshold is the maximum primitive count a node holds directly
// before it's forced to split.
const LeafThreshold = 4

// node is the pointer-linked build-time representation of one BVH node.
// It never leaves this package — Flatten consumes it and produces the
// cache-friendly, GPU-uploadable FlatNode array traversal actually uses.
type node struct {
	bbox        rmath.Aabb
	left, right *node
	// Indices into the primitive-order slice handed to Build, valid only
	// on leaves.
	start, count int
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// Build constructs a pointer-linked BVH over prims, returning the tree
// root and the primitive order the leaves index into (Build reorders a
// copy of the input, never the caller's slice).
func Build(prims []scene.Primitive) (root *node, order []scene.Primitive) {
	order = make([]scene.Primitive, len(prims))
	copy(order, prims)

	indices := make([]int, len(order))
	for i := range indices {
		indices[i] = i
	}

	boxes := make([]rmath.Aabb, len(order))
	for i, p := range order {
		boxes[i] = p.Bbox()
	}

	root = buildRange(order, boxes, indices, 0, len(indices))
	return root, order
}

// buildRange builds the subtree covering indices[lo:hi], permuting that
// range of indices (and reordering the backing order/boxes slices to
// match) so that a leaf's primitives are contiguous.
func buildRange(order []scene.Primitive, boxes []rmath.Aabb, indices []int, lo, hi int) *node {
	bbox := rmath.EmptyAabb()
	for i := lo; i < hi; i++ {
		bbox = bbox.Union(boxes[indices[i]])
	}

	count := hi - lo
	if count <= LeafThreshold {
		applyPermutation(order, boxes, indices, lo, hi)
		return &node{bbox: bbox, start: lo, count: count}
	}

	axis := widestCentroidAxis(boxes, indices, lo, hi)

	sub := indices[lo:hi]
	sort.SliceStable(sub, func(i, j int) bool {
		ci := boxes[sub[i]].Centroid(axis)
		cj := boxes[sub[j]].Centroid(axis)
		if ci != cj {
			return ci < cj
		}
		return sub[i] < sub[j]
	})

	mid := lo + count/2
	left := buildRange(order, boxes, indices, lo, mid)
	right := buildRange(order, boxes, indices, mid, hi)
	return &node{bbox: bbox, left: left, right: right}
}

// widestCentroidAxis picks the axis (0=x,1=y,2=z) with the largest
// centroid spread over indices[lo:hi], tie-breaking x < y < z per the
// deterministic build contract.
func widestCentroidAxis(boxes []rmath.Aabb, indices []int, lo, hi int) int {
	var min, max [3]float32
	for axis := 0; axis < 3; axis++ {
		min[axis] = boxes[indices[lo]].Centroid(axis)
		max[axis] = min[axis]
	}
	for i := lo + 1; i < hi; i++ {
		for axis := 0; axis < 3; axis++ {
			c := boxes[indices[i]].Centroid(axis)
			if c < min[axis] {
				min[axis] = c
			}
			if c > max[axis] {
				max[axis] = c
			}
		}
	}

	best := 0
	bestExtent := max[0] - min[0]
	for axis := 1; axis < 3; axis++ {
		extent := max[axis] - min[axis]
		if extent > bestExtent {
			bestExtent = extent
			best = axis
		}
	}
	return best
}

// applyPermutation materializes indices[lo:hi]'s current order into the
// order/boxes slices themselves, so a leaf's primitives end up
// contiguous in the final array Flatten walks.
func applyPermutation(order []scene.Primitive, boxes []rmath.Aabb, indices []int, lo, hi int) {
	for i := lo; i < hi; i++ {
		j := indices[i]
		if j == i {
			continue
		}
		// Slot i moves to slot j; repoint the later index that refers to it.
		for k := i + 1; k < len(indices); k++ {
			if indices[k] == i {
				indices[k] = j
				break
			}
		}
		order[i], order[j] = order[j], order[i]
		boxes[i], boxes[j] = boxes[j], boxes[i]
		indices[i] = i
	}
}
