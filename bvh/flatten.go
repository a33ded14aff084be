package bvh

import rmath "github.com/ThadeuFerreira/rt-core/math"

// FlatNode is the cache-friendly, GPU-uploadable representation of one
// BVH node, matching the packed storage-buffer layout the GPU back end
// uploads once per session: {min, max, first_primitive/second_child,
// primitive_count, split_axis}.
type FlatNode struct {
	Min, Max rmath.Vec3

	// PrimitiveOffset indexes into the flattened primitive-order array
	// when PrimitiveCount > 0 (a leaf); otherwise the node is interior
	// and SecondChildOffset is the index of its right child. The left
	// child is always the next entry in the array (index+1), the
	// pre-order DFS invariant Flatten maintains.
	PrimitiveOffset   int
	PrimitiveCount    int
	SecondChildOffset int
	// SplitAxis is the axis of the interior node's widest bounding-box
	// extent. It is not recorded from Build, whose sort axis is the widest
	// centroid spread, so the two can differ; traversal uses SplitAxis
	// only to choose which child to visit first.
	SplitAxis int
}

// Flatten walks the pointer tree in DFS pre-order (left subtree
// immediately following its parent) and produces the flat node array
// Traverse operates on. The tree is discarded by the caller afterward;
// Flatten never mutates it.
func Flatten(root *node) []FlatNode {
	if root == nil {
		return nil
	}
	nodes := make([]FlatNode, 0)
	flattenNode(root, &nodes)
	return nodes
}

func flattenNode(n *node, nodes *[]FlatNode) int {
	index := len(*nodes)
	*nodes = append(*nodes, FlatNode{Min: n.bbox.Min, Max: n.bbox.Max})

	if n.isLeaf() {
		(*nodes)[index].PrimitiveOffset = n.start
		(*nodes)[index].PrimitiveCount = n.count
		return index
	}

	flattenNode(n.left, nodes)
	secondChild := flattenNode(n.right, nodes)
	(*nodes)[index].SecondChildOffset = secondChild
	(*nodes)[index].SplitAxis = widestAxisOf(n.bbox)
	return index
}

func widestAxisOf(box rmath.Aabb) int {
	ex, ey, ez := box.Extent(0), box.Extent(1), box.Extent(2)
	axis := 0
	best := ex
	if ey > best {
		best = ey
		axis = 1
	}
	if ez > best {
		axis = 2
	}
	return axis
}
