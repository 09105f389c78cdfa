// Package render turns a mosaic.Frame into triangles and draws them with
// OpenGL. Geometry building is plain Go so it can be tested headless.
package render

import (
	"math"

	"mosaic/internal/mosaic"
)

// FloatsPerVertex is the vertex layout: x, y (screen pixels), r, g, b, a.
const FloatsPerVertex = 6

type point struct{ x, y float64 }

// Builder accumulates vertices for one frame. Reuse it across frames to
// avoid per-frame allocations.
type Builder struct {
	Verts []float32

	cam          *Camera
	viewW, viewH float64
}

// Reset empties the buffer and sets the view for the next frame.
func (b *Builder) Reset(cam *Camera, viewW, viewH float64) {
	b.Verts = b.Verts[:0]
	b.cam = cam
	b.viewW, b.viewH = viewW, viewH
}

// Count is the number of vertices built so far.
func (b *Builder) Count() int { return len(b.Verts) / FloatsPerVertex }

// AddFrame appends every layer of f, back to front.
func (b *Builder) AddFrame(f mosaic.Frame) {
	for _, l := range f.Layers {
		b.AddLayer(l)
	}
}

// AddLayer appends all tiles of one scene at the layer's alpha.
func (b *Builder) AddLayer(l mosaic.Layer) {
	if l.Alpha <= 0 || l.Geometry.Unit <= 0 {
		return
	}
	for i := range l.Tiles {
		b.AddTile(&l.Tiles[i], l.Geometry, l.Alpha)
	}
}

// Appearance returns the scale and opacity of a tile from its life-cycle
// stage: growing in while showing, shrinking out while hiding.
func Appearance(t *mosaic.Tile) (scale, alpha float64) {
	p := t.Progress()
	switch t.Stage {
	case mosaic.StageShowing:
		e := 1 - (1-p)*(1-p)
		return e, p
	case mosaic.StageHiding:
		e := 1 - p*p
		return e, 1 - p
	}
	return 1, 1
}

// AddTile appends the triangles for one tile.
func (b *Builder) AddTile(t *mosaic.Tile, g mosaic.Geometry, layerAlpha float64) {
	scale, alpha := Appearance(t)
	alpha *= layerAlpha
	if scale <= 0 || alpha <= 0 {
		return
	}
	cx, cy := g.Center(t.GridX, t.GridY)
	side := float64(t.Size) * g.Unit * (1 - TileGap) * scale
	r, gg, bb := t.Color.Floats()
	col := [4]float32{r, gg, bb, float32(alpha)}

	turns := t.Rotation
	if t.Shape.Kind == mosaic.KindTriSquare {
		turns += t.Shape.Split
	}
	emit := func(pts ...point) {
		for _, p := range pts {
			x, y := rotate(p, turns)
			sx, sy := cx+x*side, cy+y*side
			if b.cam != nil {
				sx, sy = b.cam.Apply(sx, sy, b.viewW, b.viewH)
			}
			b.Verts = append(b.Verts, float32(sx), float32(sy), col[0], col[1], col[2], col[3])
		}
	}
	quad := func(x0, y0, x1, y1 float64) {
		emit(point{x0, y0}, point{x1, y0}, point{x1, y1},
			point{x0, y0}, point{x1, y1}, point{x0, y1})
	}

	switch t.Shape.Kind {
	case mosaic.KindLines:
		n := max(1, t.Shape.Stripes)
		w := 1.0 / float64(2*n-1)
		for i := 0; i < n; i++ {
			x0 := -0.5 + float64(2*i)*w
			quad(x0, -0.5, x0+w, 0.5)
		}
	case mosaic.KindTriangles:
		in := 2 * t.Shape.Inset
		emit(point{-0.5, -0.5}, point{0.5 - in, -0.5}, point{-0.5, 0.5 - in})
		emit(point{0.5, 0.5}, point{-0.5 + in, 0.5}, point{0.5, -0.5 + in})
	case mosaic.KindTriSquare:
		quad(-0.5, -0.5, 0, 0.5)
		emit(point{0, -0.5}, point{0.5, -0.5}, point{0, 0.5})
	case mosaic.KindArc:
		outer := 1.0
		inner := math.Max(0, outer-t.Shape.Thickness)
		for i := 0; i < ArcSegments; i++ {
			a0 := float64(i) / ArcSegments * math.Pi / 2
			a1 := float64(i+1) / ArcSegments * math.Pi / 2
			o0 := point{-0.5 + outer*math.Cos(a0), -0.5 + outer*math.Sin(a0)}
			o1 := point{-0.5 + outer*math.Cos(a1), -0.5 + outer*math.Sin(a1)}
			i0 := point{-0.5 + inner*math.Cos(a0), -0.5 + inner*math.Sin(a0)}
			i1 := point{-0.5 + inner*math.Cos(a1), -0.5 + inner*math.Sin(a1)}
			emit(i0, o0, o1, i0, o1, i1)
		}
	}
}

// rotate turns p by quarter turns about the tile centre.
func rotate(p point, turns int) (float64, float64) {
	x, y := p.x, p.y
	for i := 0; i < ((turns%4)+4)%4; i++ {
		x, y = -y, x
	}
	return x, y
}
