package scene

import (
	stdmath "math"

	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/rng"
)

// MaterialKind tags which scatter contract a Material implements. Go has
// no sum types, so the material is a struct carrying the union of fields
// each kind needs, discriminated by Kind — the same tagged-variant shape
// the teacher's core.Light uses for its Type field.
type MaterialKind int

const (
	Lambertian MaterialKind = iota
	Metallic
	Dielectric
)

// Material is a surface's scatter behavior. Only the fields relevant to
// Kind are meaningful: Albedo for Lambertian/Metallic, Fuzz for Metallic,
// RefractionIndex for Dielectric.
type Material struct {
	Kind            MaterialKind
	Albedo          rmath.Vec3
	Fuzz            float32
	RefractionIndex float32
}

// NewLambertian returns a diffuse material with the given albedo.
func NewLambertian(albedo rmath.Vec3) Material {
	return Material{Kind: Lambertian, Albedo: albedo}
}

// NewMetallic returns a reflective material; fuzz is clamped to [0,1]
// and perturbs the reflected direction to simulate a rough metal.
func NewMetallic(albedo rmath.Vec3, fuzz float32) Material {
	if fuzz > 1 {
		fuzz = 1
	}
	if fuzz < 0 {
		fuzz = 0
	}
	return Material{Kind: Metallic, Albedo: albedo, Fuzz: fuzz}
}

// NewDielectric returns a refractive material (glass, water, diamond)
// with the given index of refraction.
func NewDielectric(refractionIndex float32) Material {
	return Material{Kind: Dielectric, RefractionIndex: refractionIndex}
}

// ScatterResult carries the attenuation and outgoing ray from a
// successful Scatter call.
type ScatterResult struct {
	Attenuation rmath.Vec3
	Scattered   rmath.Ray
}

// Scatter implements this material's contribution to the path-tracing
// recurrence: given the incoming ray and the hit record, it returns the
// attenuated outgoing ray, or ok=false if the ray is absorbed.
func (m Material) Scatter(in rmath.Ray, rec HitRecord, s *rng.Source) (ScatterResult, bool) {
	switch m.Kind {
	case Lambertian:
		direction := rec.Normal.Add(rmath.RandomUnitVector(s))
		if direction.NearZero() {
			direction = rec.Normal
		}
		return ScatterResult{Attenuation: m.Albedo, Scattered: rmath.NewRay(rec.Point, direction)}, true

	case Metallic:
		reflected := in.Direction.Unit().Reflect(rec.Normal)
		reflected = reflected.Add(rmath.RandomUnitVector(s).Mul(m.Fuzz))
		if reflected.Dot(rec.Normal) <= 0 {
			return ScatterResult{}, false
		}
		return ScatterResult{Attenuation: m.Albedo, Scattered: rmath.NewRay(rec.Point, reflected)}, true

	case Dielectric:
		refractionRatio := m.RefractionIndex
		if rec.FrontFace {
			refractionRatio = 1.0 / m.RefractionIndex
		}

		unitDirection := in.Direction.Unit()
		cosTheta := minf32(-unitDirection.Dot(rec.Normal), 1.0)
		sinTheta := float32(stdmath.Sqrt(float64(1 - cosTheta*cosTheta)))

		cannotRefract := refractionRatio*sinTheta > 1.0
		var direction rmath.Vec3
		if cannotRefract || reflectance(cosTheta, refractionRatio) > s.UniformFloat32() {
			direction = unitDirection.Reflect(rec.Normal)
		} else {
			direction = unitDirection.Refract(rec.Normal, refractionRatio)
		}
		return ScatterResult{Attenuation: rmath.Vec3{X: 1, Y: 1, Z: 1}, Scattered: rmath.NewRay(rec.Point, direction)}, true
	}
	return ScatterResult{}, false
}

// reflectance computes Schlick's approximation for the Fresnel
// reflectance of a dielectric boundary.
func reflectance(cosine, refractionIndex float32) float32 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*pow5(1-cosine)
}

func pow5(x float32) float32 {
	x2 := x * x
	return x2 * x2 * x
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
