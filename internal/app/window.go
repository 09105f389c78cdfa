package app

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	windowTitle     = "Mosaic"
	minWindowWidth  = 320
	minWindowHeight = 240
)

// window owns the glfw context and records framebuffer resizes from the
// glfw callback so the frame loop can forward them once per change.
type window struct {
	*glfw.Window

	fbW, fbH int
	resized  bool
}

// openWindow creates a resizable 4.1 core window of the requested size and
// makes its context current on the calling thread.
func openWindow(width, height int) (*window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	gw, err := glfw.CreateWindow(max(width, minWindowWidth), max(height, minWindowHeight), windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window %dx%d: %w", width, height, err)
	}
	gw.SetSizeLimits(minWindowWidth, minWindowHeight, glfw.DontCare, glfw.DontCare)
	gw.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &window{Window: gw, resized: true}
	w.fbW, w.fbH = gw.GetFramebufferSize()
	gw.SetFramebufferSizeCallback(func(_ *glfw.Window, fw, fh int) {
		w.fbW, w.fbH = fw, fh
		w.resized = true
	})
	return w, nil
}

// takeResize returns the framebuffer size and whether it changed since the
// last call. A minimised window reports a zero size.
func (w *window) takeResize() (int, int, bool) {
	changed := w.resized
	w.resized = false
	return w.fbW, w.fbH, changed
}

func (w *window) close() {
	w.Destroy()
	glfw.Terminate()
}
