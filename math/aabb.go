package math

// Aabb is an axis-aligned bounding box, stored as its min and max corner.
// The slab test below follows the same three-axis min/max pattern as the
// teacher's screen-space ray picker (editor/raycast.go's
// rayAABBIntersect), generalized to take a caller-supplied Interval. It
// reports only whether the box is hit, not the entry t.
type Aabb struct {
	Min, Max Vec3
}

// EmptyAabb returns a box with Min > Max on every axis, the correct
// identity element for repeated Union calls while building one up from
// zero primitives.
func EmptyAabb() Aabb {
	const inf = 3.402823466e+38 // math.MaxFloat32, written as a constant to avoid the std import here
	return Aabb{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Union returns the smallest box containing both a and b.
func (a Aabb) Union(b Aabb) Aabb {
	return Aabb{
		Min: Vec3{X: minf(a.Min.X, b.Min.X), Y: minf(a.Min.Y, b.Min.Y), Z: minf(a.Min.Z, b.Min.Z)},
		Max: Vec3{X: maxf(a.Max.X, b.Max.X), Y: maxf(a.Max.Y, b.Max.Y), Z: maxf(a.Max.Z, b.Max.Z)},
	}
}

// Contains reports whether b is entirely inside a (used to check BVH
// invariants: every interior node's box contains its children's boxes).
func (a Aabb) Contains(b Aabb) bool {
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y && a.Min.Z <= b.Min.Z &&
		a.Max.X >= b.Max.X && a.Max.Y >= b.Max.Y && a.Max.Z >= b.Max.Z
}

// Centroid returns the box's center along the given axis (0=x, 1=y, 2=z).
func (a Aabb) Centroid(axis int) float32 {
	switch axis {
	case 0:
		return (a.Min.X + a.Max.X) * 0.5
	case 1:
		return (a.Min.Y + a.Max.Y) * 0.5
	default:
		return (a.Min.Z + a.Max.Z) * 0.5
	}
}

// Extent returns Max-Min along the given axis.
func (a Aabb) Extent(axis int) float32 {
	switch axis {
	case 0:
		return a.Max.X - a.Min.X
	case 1:
		return a.Max.Y - a.Min.Y
	default:
		return a.Max.Z - a.Min.Z
	}
}

// Hit performs the standard slab test: for each axis, compute the
// interval of t where the ray is inside the slab, then intersect all
// three intervals with the caller's ray interval. Returns false the
// moment the running interval becomes empty.
func (a Aabb) Hit(r Ray, ray Interval) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / component(r.Direction, axis)
		t0 := (component(a.Min, axis) - component(r.Origin, axis)) * invD
		t1 := (component(a.Max, axis) - component(r.Origin, axis)) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > ray.Min {
			ray.Min = t0
		}
		if t1 < ray.Max {
			ray.Max = t1
		}
		if ray.Max <= ray.Min {
			return false
		}
	}
	return true
}

func component(v Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
