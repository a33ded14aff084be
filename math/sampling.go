package math

import (
	"math"

	"github.com/ThadeuFerreira/rt-core/rng"
)

// RandomUnitVector returns a vector uniformly distributed on the unit
// sphere, by rejection-sampling a point in the cube [-1,1]^3 until its
// length² falls in (1e-12, 1], then normalizing. The lower bound keeps
// the eventual normalize numerically stable; the upper bound keeps the
// distribution uniform on the sphere (rejecting points outside the unit
// ball, not just off it).
func RandomUnitVector(s *rng.Source) Vec3 {
	for {
		p := Vec3{
			X: s.UniformFloat32Range(-1, 1),
			Y: s.UniformFloat32Range(-1, 1),
			Z: s.UniformFloat32Range(-1, 1),
		}
		lenSq := p.LengthSqr()
		if lenSq > 1e-12 && lenSq <= 1 {
			return p.Mul(1 / float32(math.Sqrt(float64(lenSq))))
		}
	}
}

// RandomInUnitDisk returns a point uniformly distributed in the unit disk
// in the XY plane (Z=0), by rejection sampling in the square [-1,1]².
func RandomInUnitDisk(s *rng.Source) Vec3 {
	for {
		p := Vec3{X: s.UniformFloat32Range(-1, 1), Y: s.UniformFloat32Range(-1, 1)}
		if p.LengthSqr() < 1 {
			return p
		}
	}
}

// SampleSquare returns a jitter offset (u-0.5, v-0.5, 0) with u,v ~
// U[0,1), used to randomize a primary ray's position within its pixel.
func SampleSquare(s *rng.Source) Vec3 {
	return Vec3{X: s.UniformFloat32() - 0.5, Y: s.UniformFloat32() - 0.5, Z: 0}
}
