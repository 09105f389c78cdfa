package mosaic

import (
	"math"

	"mosaic/internal/rng"
)

// Kind is the visual family of a tile.
type Kind uint8

const (
	KindLines Kind = iota
	KindTriangles
	KindTriSquare
	KindArc
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindLines:
		return "lines"
	case KindTriangles:
		return "triangles"
	case KindTriSquare:
		return "trisquare"
	case KindArc:
		return "arc"
	}
	return "unknown"
}

// Shape is a tile's kind together with the parameters only that kind uses.
// It is fixed when the tile is created.
type Shape struct {
	Kind Kind

	Stripes   int     // lines: number of bars
	Inset     float64 // triangles: gap between the two halves, in tile units
	Split     int     // trisquare: which corner the triangle takes (0..3)
	Thickness float64 // arc: ring width, in tile units
}

func newShape(k Kind, r *rng.Rand) Shape {
	s := Shape{Kind: k}
	switch k {
	case KindLines:
		s.Stripes = r.IntInRange(2, 5)
	case KindTriangles:
		s.Inset = r.InRange(0, 0.12)
	case KindTriSquare:
		s.Split = r.IntInRange(0, 3)
	case KindArc:
		s.Thickness = r.InRange(0.18, 0.4)
	}
	return s
}

// Stage is a tile's place in its life cycle.
type Stage uint8

const (
	StageShowing Stage = iota
	StageSteady
	StageHiding
)

func (s Stage) String() string {
	switch s {
	case StageShowing:
		return "showing"
	case StageSteady:
		return "steady"
	case StageHiding:
		return "hiding"
	}
	return "unknown"
}

// Tile is one animated grid entity. For Size 2 the grid position is the
// centre of the 2x2 block, so it sits on half-integers.
type Tile struct {
	GridX, GridY float64
	Size         int
	Shape        Shape
	Rotation     int // quarter turns, 0..3
	Color        RGB
	Duration     float64
	Stage        Stage
	Elapsed      float64
}

func (t *Tile) Kind() Kind { return t.Shape.Kind }

// Update advances the tile by dt seconds. Showing becomes Steady once the
// elapsed time reaches Duration; Hiding stays put at Duration until the
// engine removes it.
func (t *Tile) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	t.Elapsed = math.Min(t.Duration, t.Elapsed+dt)
	if t.Stage == StageShowing && t.Elapsed >= t.Duration {
		t.Stage = StageSteady
		t.Elapsed = 0
	}
}

// Flip turns the tile half way round and replays its show animation. A
// hiding tile cannot be flipped.
func (t *Tile) Flip() bool {
	if t.Stage == StageHiding {
		return false
	}
	t.Rotation = (t.Rotation + 2) % 4
	t.Stage = StageShowing
	t.Elapsed = 0
	return true
}

// Hide starts the exit animation of a steady tile.
func (t *Tile) Hide() bool {
	if t.Stage != StageSteady {
		return false
	}
	t.Stage = StageHiding
	t.Elapsed = 0
	return true
}

// Done reports whether a hiding tile has finished and can be removed.
func (t *Tile) Done() bool {
	return t.Stage == StageHiding && t.Elapsed >= t.Duration
}

// Progress is Elapsed/Duration in [0,1]; a zero duration counts as complete.
func (t *Tile) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return clampF(t.Elapsed/t.Duration, 0, 1)
}

// Origin returns the top-left grid cell the tile covers.
func (t *Tile) Origin() (int, int) {
	off := float64(t.Size-1) / 2
	return int(math.Round(t.GridX - off)), int(math.Round(t.GridY - off))
}

// Cell is a grid coordinate.
type Cell struct{ X, Y int }

// Cells lists the grid cells the tile occupies.
func (t *Tile) Cells() []Cell {
	x0, y0 := t.Origin()
	cells := make([]Cell, 0, t.Size*t.Size)
	for dy := 0; dy < t.Size; dy++ {
		for dx := 0; dx < t.Size; dx++ {
			cells = append(cells, Cell{X: x0 + dx, Y: y0 + dy})
		}
	}
	return cells
}
