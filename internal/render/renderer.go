package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"mosaic/internal/mosaic"
)

func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws frames with a single streamed triangle buffer. It must be
// created and used on the goroutine that owns the GL context.
type Renderer struct {
	prog        uint32
	vao, vbo    uint32
	uResolution int32

	build Builder
}

// NewRenderer compiles the tile program and allocates the vertex buffer.
// gl.Init must already have succeeded.
func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(tileVertSrc, tileFragSrc)
	if err != nil {
		return nil, fmt.Errorf("tile program: %w", err)
	}
	r := &Renderer{prog: prog}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertexBufferBytes, nil, gl.STREAM_DRAW)

	stride := int32(FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
	gl.BindVertexArray(0)

	gl.UseProgram(prog)
	r.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	return r, nil
}

// Draw clears to the frame background and draws every layer. Vertices past
// the buffer capacity are dropped.
func (r *Renderer) Draw(f mosaic.Frame, cam *Camera, fbW, fbH int) {
	if fbW <= 0 || fbH <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	br, bg, bb := f.Background.Floats()
	gl.ClearColor(br, bg, bb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.build.Reset(cam, float64(fbW), float64(fbH))
	r.build.AddFrame(f)
	n := r.build.Count()
	if limit := vertexBufferBytes / (FloatsPerVertex * 4); n > limit {
		n = limit
	}
	if n == 0 {
		return
	}

	gl.UseProgram(r.prog)
	gl.Uniform2f(r.uResolution, float32(fbW), float32(fbH))
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*FloatsPerVertex*4, gl.Ptr(&r.build.Verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(n))
	gl.BindVertexArray(0)
}

func (r *Renderer) Destroy() {
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.prog)
}
