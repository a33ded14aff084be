package scene

import (
	stdmath "math"

	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/rng"
)

// Camera holds the pinhole-with-thin-lens intrinsics described in the
// renderer's camera model, plus the orthonormal basis and viewport deltas
// derived from them. Derived fields are unexported and computed only by
// NewCamera and Recompute; changing an exported intrinsic does not update
// them until Recompute is called.
//
// DefocusAngleDegrees default is 0 (a pure pinhole, no depth of field);
// degrees rather than radians is the open question in the original
// resolved in favor of the friendlier external unit (see SPEC_FULL.md).
type Camera struct {
	ImageWidth        int
	ImageHeight       int
	SamplesPerPixel   int
	MaxDepth          int
	LookFrom          rmath.Vec3
	LookAt            rmath.Vec3
	Vup               rmath.Vec3
	VfovDegrees       float32
	DefocusAngleDegrees float32
	FocusDistance     float32

	// Derived orthonormal basis.
	u, v, w rmath.Vec3

	// Derived viewport geometry.
	pixel00Location rmath.Vec3
	pixelDeltaU     rmath.Vec3
	pixelDeltaV     rmath.Vec3
	defocusDiskU    rmath.Vec3
	defocusDiskV    rmath.Vec3
}

// NewCamera builds a Camera and immediately computes its derived state.
func NewCamera(imageWidth, imageHeight, samplesPerPixel, maxDepth int, lookFrom, lookAt, vup rmath.Vec3, vfovDegrees, defocusAngleDegrees, focusDistance float32) *Camera {
	c := &Camera{
		ImageWidth:          imageWidth,
		ImageHeight:          imageHeight,
		SamplesPerPixel:      samplesPerPixel,
		MaxDepth:             maxDepth,
		LookFrom:             lookFrom,
		LookAt:               lookAt,
		Vup:                  vup,
		VfovDegrees:          vfovDegrees,
		DefocusAngleDegrees:  defocusAngleDegrees,
		FocusDistance:        focusDistance,
	}
	c.Recompute()
	return c
}

// Recompute rebuilds the orthonormal basis and viewport deltas from the
// current intrinsics. Call it after mutating any exported field.
func (c *Camera) Recompute() {
	c.w = c.LookFrom.Sub(c.LookAt).Unit()
	c.u = c.Vup.Cross(c.w).Unit()
	c.v = c.w.Cross(c.u)

	theta := c.VfovDegrees * float32(stdmath.Pi) / 180
	h := float32(stdmath.Tan(float64(theta) / 2))
	viewportHeight := 2 * h * c.FocusDistance
	viewportWidth := viewportHeight * float32(c.ImageWidth) / float32(c.ImageHeight)

	viewportU := c.u.Mul(viewportWidth)
	viewportV := c.v.Negate().Mul(viewportHeight)

	c.pixelDeltaU = viewportU.Div(float32(c.ImageWidth))
	c.pixelDeltaV = viewportV.Div(float32(c.ImageHeight))

	viewportUpperLeft := c.LookFrom.
		Sub(c.w.Mul(c.FocusDistance)).
		Sub(viewportU.Div(2)).
		Sub(viewportV.Div(2))
	c.pixel00Location = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Mul(0.5))

	defocusRadius := c.FocusDistance * float32(stdmath.Tan(float64(c.DefocusAngleDegrees*float32(stdmath.Pi)/180/2)))
	c.defocusDiskU = c.u.Mul(defocusRadius)
	c.defocusDiskV = c.v.Mul(defocusRadius)
}

// ViewportState exposes the derived viewport geometry the GPU back end
// packs into its camera uniform block: pixel (0,0)'s world-space
// location, the per-pixel deltas, and the defocus-disk basis vectors.
func (c *Camera) ViewportState() (pixel00, pixelDeltaU, pixelDeltaV, defocusDiskU, defocusDiskV rmath.Vec3) {
	return c.pixel00Location, c.pixelDeltaU, c.pixelDeltaV, c.defocusDiskU, c.defocusDiskV
}

// GenerateRay returns a ray through a jittered point within pixel
// (px, py). Origin is LookFrom for a pure pinhole (DefocusAngleDegrees
// <= 0); otherwise it's jittered over the defocus disk for depth of
// field.
func (c *Camera) GenerateRay(px, py int, s *rng.Source) rmath.Ray {
	jitter := rmath.SampleSquare(s)
	sample := c.pixel00Location.
		Add(c.pixelDeltaU.Mul(float32(px) + jitter.X)).
		Add(c.pixelDeltaV.Mul(float32(py) + jitter.Y))

	origin := c.LookFrom
	if c.DefocusAngleDegrees > 0 {
		p := rmath.RandomInUnitDisk(s)
		origin = c.LookFrom.Add(c.defocusDiskU.Mul(p.X)).Add(c.defocusDiskV.Mul(p.Y))
	}

	return rmath.NewRay(origin, sample.Sub(origin))
}
