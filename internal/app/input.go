package app

import "github.com/go-gl/glfw/v3.3/glfw"

// Input turns held keys and buttons into single-frame presses.
type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// WantsReseed reports a fresh press of Space or the left mouse button.
// Both are polled every frame so their edge state stays current.
func (in *Input) WantsReseed(window *glfw.Window) bool {
	key := in.JustPressed(window, glfw.KeySpace)
	click := in.JustClicked(window, glfw.MouseButtonLeft)
	return key || click
}
