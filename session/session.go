package session

import (
	"sync"

	"github.com/ThadeuFerreira/rt-core/scene"
)

// Session is the uniform lifecycle wrapper the host drives: start,
// progress, readback, finish. It hides which back end actually rendered
// the image — GPU creation failure falls back to CPU silently and
// one-way; once a CPU session has started, the GPU is never retried.
type Session struct {
	scene *scene.Scene
	cfg   Config

	cpu     *cpuBackend
	gpu     *gpuBackend
	usedGPU bool

	mu     sync.Mutex
	done   bool
}

// Start validates the scene and config, builds whichever back end is
// selected (attempting GPU first if cfg.PreferGPU), and returns a
// non-blocking handle. A configuration error returns no session; a
// GPU-unavailability error is absorbed internally as a fallback, not
// surfaced to the caller.
func Start(s *scene.Scene, cfg Config) (*Session, error) {
	if err := validate(s, cfg); err != nil {
		return nil, err
	}

	session := &Session{scene: s, cfg: cfg}

	if cfg.PreferGPU {
		if gpu, err := newGPUBackend(s); err == nil {
			session.gpu = gpu
			session.usedGPU = true
			return session, nil
		}
		// GPU unavailable: fall through to CPU. The error is discarded,
		// not printed or returned; the only trace of the fallback is
		// Stats().UsedGPU reporting false.
	}

	session.cpu = newCPUBackend(s, cfg)
	session.cpu.start(cfg)
	return session, nil
}

// Progress returns a monotonically non-decreasing fraction in [0, 1].
// Safe to call from any thread.
func (s *Session) Progress() float32 {
	if s.usedGPU {
		return s.gpu.progress()
	}
	return s.cpu.progress()
}

// Readback copies the current accumulator into out (length
// width*height*4), gamma-encoded RGBA8. Idempotent; safe at any point in
// the render.
func (s *Session) Readback(out []byte) {
	if s.usedGPU {
		s.gpu.readback(out)
		return
	}
	s.cpu.pixels.ReadbackCPU(out)
}

// Finish blocks until the render is complete and releases all back-end
// resources. For the GPU back end this drains any remaining samples
// with additional dispatches first, matching the CPU contract that
// finish always returns a fully-rendered image.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}

	if s.usedGPU {
		for !s.gpu.done() {
			s.gpu.advance()
		}
		s.gpu.close()
	} else {
		s.cpu.finish()
	}
	s.done = true
}

// ImageWidth and ImageHeight report the output buffer's dimensions, the
// size a host must allocate before calling Readback.
func (s *Session) ImageWidth() int  { return s.scene.Camera.ImageWidth }
func (s *Session) ImageHeight() int { return s.scene.Camera.ImageHeight }
