// Package session implements the render session facade: start a render
// of a scene.Scene on either the CPU worker pool or the GPU compute back
// end, poll its progress, read back the pixel buffer at any time, and
// block on finish. It owns the BVH build, the tile queue, and the
// accumulator; it never touches a file or a window.
package session

import (
	"errors"
	"fmt"

	"github.com/ThadeuFerreira/rt-core/scene"
)

// Sentinel errors distinguish the configuration-error class from
// resource exhaustion and back-end unavailability, per the error
// taxonomy: configuration errors fail Start outright; back-end
// unavailability is recoverable and triggers CPU fallback instead.
var (
	ErrInvalidConfig    = errors.New("session: invalid configuration")
	ErrDegenerateCamera = errors.New("session: degenerate camera")
	ErrGPUUnavailable   = errors.New("session: GPU back end unavailable")
)

// Config holds the parameters a host supplies to Start: everything the
// render needs beyond the scene itself.
type Config struct {
	Threads        int
	SeedBase       uint64
	PreferGPU      bool
	TileSize       int // defaults to 32 if zero
}

// DefaultConfig returns a Config with a sensible worker count and the
// tile size the spec names, matching the teacher's Default*Config
// constructor convention.
func DefaultConfig() Config {
	return Config{
		Threads:  4,
		SeedBase: 0x5eed5eed5eed5eed,
		TileSize: 32,
	}
}

// validate checks the scene and config for the configuration-error class
// named in the error-handling design: invalid resolution, non-positive
// samples per pixel, or a degenerate camera.
func validate(s *scene.Scene, cfg Config) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}
	if err := s.Validate(); err != nil {
		if errors.Is(err, scene.ErrDegenerateScene) {
			return fmt.Errorf("%w: %v", ErrDegenerateCamera, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Threads <= 0 {
		return fmt.Errorf("%w: non-positive thread count", ErrInvalidConfig)
	}
	return nil
}
