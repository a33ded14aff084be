// Package glctx brings up a headless, invisible OpenGL 4.3 core-profile
// context for the GPU render back end. It is adapted from the engine's
// core.Window: same GLFW window-creation call, stripped of every
// surface/input/resize concern the path tracer never needs — the window
// exists only to own a current GL context, never to be shown.
package glctx

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Context owns the hidden window and current GL context backing a GPU
// render session. Close destroys the window; Close is idempotent.
type Context struct {
	window *glfw.Window
}

// New initializes GLFW, creates a hidden 1x1 window with an OpenGL 4.3
// core-profile context, and makes it current on the calling (locked) OS
// thread. Returns a recoverable error on any failure — callers use this
// to decide whether to fall back to the CPU back end.
func New() (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glctx: failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(1, 1, "rt-core (offscreen)", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glctx: failed to create offscreen window: %w", err)
	}

	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glctx: failed to initialize OpenGL: %w", err)
	}

	return &Context{window: window}, nil
}

// Close destroys the offscreen window and terminates GLFW. Safe to call
// more than once.
func (c *Context) Close() {
	if c.window == nil {
		return
	}
	c.window.Destroy()
	glfw.Terminate()
	c.window = nil
}
