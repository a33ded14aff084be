package session

import (
	"github.com/ThadeuFerreira/rt-core/bvh"
	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/rng"
)

var (
	skyTop    = rmath.NewVec3(0.5, 0.7, 1.0)
	skyBottom = rmath.NewVec3(1.0, 1.0, 1.0)
)

// skyColor is the background gradient a ray sees when it escapes the
// scene: a vertical lerp from white straight down to pale blue straight
// up (an even mix at the horizon), parameterized by the ray's own Y
// direction.
func skyColor(r rmath.Ray) rmath.Vec3 {
	unitDirection := r.Direction.Unit()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Lerp(skyTop, a)
}

// rayColor estimates the radiance along ray r via recursive Monte-Carlo
// path tracing, written as the accumulating-product loop the design
// notes call out as the depth-safe equivalent of the tail-recursive
// formulation: color = sum over bounces of (attenuation-so-far *
// emission-at-this-bounce), and since this material set emits nothing,
// that collapses to attenuation-so-far * sky-color at the bounce that
// escapes (or zero once maxDepth is exhausted).
func rayColor(r rmath.Ray, tree bvh.Tree, maxDepth int, s *rng.Source) rmath.Vec3 {
	attenuation := rmath.Vec3{X: 1, Y: 1, Z: 1}

	for depth := 0; depth < maxDepth; depth++ {
		rec, ok := tree.Hit(r, rmath.NewInterval(0.001, 3.402823466e+38))
		if !ok {
			return attenuation.MulVec(skyColor(r))
		}

		result, scattered := rec.Material.Scatter(r, rec, s)
		if !scattered {
			return rmath.Vec3Zero
		}
		attenuation = attenuation.MulVec(result.Attenuation)
		r = result.Scattered
	}

	return rmath.Vec3Zero
}
