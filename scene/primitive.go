package scene

import (
	stdmath "math"

	rmath "github.com/ThadeuFerreira/rt-core/math"
)

// HitRecord describes where a ray hit a primitive: the point, the unit
// surface normal oriented against the incoming ray (see SetFaceNormal),
// the parametric distance, and
// which material scattered it. FrontFace records whether the ray
// approached from outside the surface, needed by Dielectric to pick the
// correct refraction ratio.
type HitRecord struct {
	Point     rmath.Vec3
	Normal    rmath.Vec3
	T         float32
	FrontFace bool
	Material  Material
}

// SetFaceNormal orients Normal to always point against the incoming ray,
// recording whether that required a flip.
func (h *HitRecord) SetFaceNormal(r rmath.Ray, outwardNormal rmath.Vec3) {
	h.FrontFace = r.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// PrimitiveKind tags the implicit-geometry variant a Primitive holds.
type PrimitiveKind int

const (
	SpherePrimitive PrimitiveKind = iota
	CubePrimitive
)

// Primitive is a tagged union of the implicit surfaces the renderer
// supports. Each owns its Material by value, mirroring the per-vertex
// Color the teacher's core.Vertex carries rather than indirecting
// through a material table.
type Primitive struct {
	Kind     PrimitiveKind
	Center   rmath.Vec3
	Radius   float32 // SpherePrimitive
	HalfSize rmath.Vec3 // CubePrimitive: half-extent along each axis
	Material Material
}

// NewSphere returns a sphere primitive centered at center.
func NewSphere(center rmath.Vec3, radius float32, material Material) Primitive {
	return Primitive{Kind: SpherePrimitive, Center: center, Radius: radius, Material: material}
}

// NewCube returns an axis-aligned box primitive centered at center with
// the given full size along each axis.
func NewCube(center rmath.Vec3, size rmath.Vec3, material Material) Primitive {
	return Primitive{Kind: CubePrimitive, Center: center, HalfSize: size.Mul(0.5), Material: material}
}

// Bbox returns the primitive's axis-aligned bounding box, used by the
// BVH builder.
func (p Primitive) Bbox() rmath.Aabb {
	switch p.Kind {
	case SpherePrimitive:
		rVec := rmath.Vec3{X: p.Radius, Y: p.Radius, Z: p.Radius}
		return rmath.Aabb{Min: p.Center.Sub(rVec), Max: p.Center.Add(rVec)}
	default:
		return rmath.Aabb{Min: p.Center.Sub(p.HalfSize), Max: p.Center.Add(p.HalfSize)}
	}
}

// Hit tests the primitive against ray r restricted to the parametric
// interval rayT, returning the closest valid hit.
func (p Primitive) Hit(r rmath.Ray, rayT rmath.Interval) (HitRecord, bool) {
	switch p.Kind {
	case SpherePrimitive:
		return p.hitSphere(r, rayT)
	default:
		return p.hitCube(r, rayT)
	}
}

func (p Primitive) hitSphere(r rmath.Ray, rayT rmath.Interval) (HitRecord, bool) {
	oc := p.Center.Sub(r.Origin)
	a := r.Direction.LengthSqr()
	h := r.Direction.Dot(oc)
	c := oc.LengthSqr() - p.Radius*p.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}
	sqrtd := float32(stdmath.Sqrt(float64(discriminant)))

	root := (h - sqrtd) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtd) / a
		if !rayT.Surrounds(root) {
			return HitRecord{}, false
		}
	}

	rec := HitRecord{T: root, Point: r.At(root), Material: p.Material}
	outwardNormal := rec.Point.Sub(p.Center).Div(p.Radius)
	rec.SetFaceNormal(r, outwardNormal)
	return rec, true
}

// hitCube performs the slab test shared with Aabb.Hit, but tracked
// per-axis so the hit axis can be recovered as the face normal.
func (p Primitive) hitCube(r rmath.Ray, rayT rmath.Interval) (HitRecord, bool) {
	box := p.Bbox()
	tMin, tMax := rayT.Min, rayT.Max
	hitAxis := -1
	sign := float32(1)

	axes := [3]func() (float32, float32, float32){
		func() (float32, float32, float32) { return box.Min.X, box.Max.X, r.Origin.X },
		func() (float32, float32, float32) { return box.Min.Y, box.Max.Y, r.Origin.Y },
		func() (float32, float32, float32) { return box.Min.Z, box.Max.Z, r.Origin.Z },
	}
	dirs := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		lo, hi, origin := axes[axis]()
		invD := 1.0 / dirs[axis]
		t0 := (lo - origin) * invD
		t1 := (hi - origin) * invD
		axisSign := float32(-1)
		if invD < 0 {
			t0, t1 = t1, t0
			axisSign = 1
		}
		if t0 > tMin {
			tMin = t0
			hitAxis = axis
			sign = axisSign
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return HitRecord{}, false
		}
	}
	if hitAxis == -1 || !rayT.Surrounds(tMin) {
		return HitRecord{}, false
	}

	rec := HitRecord{T: tMin, Point: r.At(tMin), Material: p.Material}
	var outwardNormal rmath.Vec3
	switch hitAxis {
	case 0:
		outwardNormal = rmath.Vec3{X: sign, Y: 0, Z: 0}
	case 1:
		outwardNormal = rmath.Vec3{X: 0, Y: sign, Z: 0}
	default:
		outwardNormal = rmath.Vec3{X: 0, Y: 0, Z: sign}
	}
	rec.SetFaceNormal(r, outwardNormal)
	return rec, true
}
