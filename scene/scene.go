package scene

import (
	"errors"
	"fmt"

	rmath "github.com/ThadeuFerreira/rt-core/math"
)

// ErrDegenerateScene is returned by Validate when a scene cannot possibly
// produce a useful image (no camera, a camera whose lookfrom coincides
// with lookat, or non-positive image size or samples per pixel).
var ErrDegenerateScene = errors.New("scene: degenerate scene")

// Scene is the renderer's complete scene input: camera intrinsics plus a
// flat primitive list. It does not parse or own any files — callers
// decode a scene description elsewhere and hand the core already-built
// values, the same boundary the teacher draws around its io package.
type Scene struct {
	Camera     *Camera
	Primitives []Primitive
}

// NewScene returns an empty scene bound to the given camera.
func NewScene(camera *Camera) *Scene {
	return &Scene{Camera: camera}
}

// Add appends a primitive to the scene.
func (s *Scene) Add(p Primitive) {
	s.Primitives = append(s.Primitives, p)
}

// Bounds returns the union of every primitive's bounding box.
func (s *Scene) Bounds() rmath.Aabb {
	box := rmath.EmptyAabb()
	for _, p := range s.Primitives {
		box = box.Union(p.Bbox())
	}
	return box
}

// HitLinear intersects r against every primitive by brute-force linear
// scan, keeping the closest hit within rayT. It exists for BVH
// correctness tests; rendering always goes through the BVH.
func (s *Scene) HitLinear(r rmath.Ray, rayT rmath.Interval) (HitRecord, bool) {
	var closest HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, p := range s.Primitives {
		if rec, ok := p.Hit(r, rmath.NewInterval(rayT.Min, closestSoFar)); ok {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
		}
	}
	return closest, hitAnything
}

// Validate reports ErrDegenerateScene if the scene cannot produce a
// meaningful render: no camera, a camera whose lookfrom/lookat positions
// coincide (an undefined orthonormal basis), or non-positive image
// dimensions or samples per pixel. A scene with no primitives is valid.
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera", ErrDegenerateScene)
	}
	if s.Camera.LookFrom == s.Camera.LookAt {
		return fmt.Errorf("%w: camera lookfrom equals lookat", ErrDegenerateScene)
	}
	if s.Camera.ImageWidth <= 0 || s.Camera.ImageHeight <= 0 {
		return fmt.Errorf("%w: non-positive image dimensions", ErrDegenerateScene)
	}
	if s.Camera.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: non-positive samples per pixel", ErrDegenerateScene)
	}
	return nil
}
