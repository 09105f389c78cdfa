package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/internal/audio"
	"mosaic/internal/mosaic"
)

var unitGeom = mosaic.Geometry{Width: 10, Height: 10, Unit: 10, GridSize: 1}

func steady(shape mosaic.Shape, rot int) mosaic.Tile {
	return mosaic.Tile{Size: 1, Shape: shape, Rotation: rot, Stage: mosaic.StageSteady, Duration: 1,
		Color: mosaic.RGB{R: 255, G: 128, B: 0}}
}

func TestTileVertexCounts(t *testing.T) {
	cases := []struct {
		name  string
		shape mosaic.Shape
		want  int
	}{
		{"lines", mosaic.Shape{Kind: mosaic.KindLines, Stripes: 3}, 18},
		{"triangles", mosaic.Shape{Kind: mosaic.KindTriangles, Inset: 0.05}, 6},
		{"trisquare", mosaic.Shape{Kind: mosaic.KindTriSquare, Split: 1}, 9},
		{"arc", mosaic.Shape{Kind: mosaic.KindArc, Thickness: 0.3}, 6 * ArcSegments},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Builder
			b.Reset(nil, 10, 10)
			tile := steady(tc.shape, 0)
			b.AddTile(&tile, unitGeom, 1)
			assert.Equal(t, tc.want, b.Count())
			assert.Len(t, b.Verts, tc.want*FloatsPerVertex)
		})
	}
}

func TestVerticesStayInsideCell(t *testing.T) {
	shapes := []mosaic.Shape{
		{Kind: mosaic.KindLines, Stripes: 4},
		{Kind: mosaic.KindTriangles, Inset: 0.1},
		{Kind: mosaic.KindTriSquare, Split: 3},
		{Kind: mosaic.KindArc, Thickness: 0.2},
	}
	for _, s := range shapes {
		for rot := 0; rot < 4; rot++ {
			var b Builder
			b.Reset(nil, 10, 10)
			tile := steady(s, rot)
			b.AddTile(&tile, unitGeom, 1)
			for i := 0; i < len(b.Verts); i += FloatsPerVertex {
				x, y := b.Verts[i], b.Verts[i+1]
				assert.True(t, x >= 0 && x <= 10 && y >= 0 && y <= 10,
					"%v rot %d vertex (%v,%v) outside cell", s.Kind, rot, x, y)
			}
		}
	}
}

func TestColorAndLayerAlpha(t *testing.T) {
	var b Builder
	b.Reset(nil, 10, 10)
	tile := steady(mosaic.Shape{Kind: mosaic.KindTriangles}, 0)
	b.AddTile(&tile, unitGeom, 0.25)
	require.NotZero(t, b.Count())
	assert.InDelta(t, 1.0, b.Verts[2], 1e-6)
	assert.InDelta(t, 128.0/255, b.Verts[3], 1e-6)
	assert.InDelta(t, 0.0, b.Verts[4], 1e-6)
	assert.InDelta(t, 0.25, b.Verts[5], 1e-6)
}

func TestInvisibleTilesEmitNothing(t *testing.T) {
	var b Builder
	b.Reset(nil, 10, 10)

	fresh := steady(mosaic.Shape{Kind: mosaic.KindTriangles}, 0)
	fresh.Stage = mosaic.StageShowing
	b.AddTile(&fresh, unitGeom, 1)
	assert.Zero(t, b.Count(), "a tile that just started showing has zero size")

	gone := steady(mosaic.Shape{Kind: mosaic.KindTriangles}, 0)
	gone.Stage = mosaic.StageHiding
	gone.Elapsed = gone.Duration
	b.AddTile(&gone, unitGeom, 1)
	assert.Zero(t, b.Count())

	b.AddLayer(mosaic.Layer{Tiles: []mosaic.Tile{steady(mosaic.Shape{Kind: mosaic.KindArc}, 0)}, Geometry: unitGeom})
	assert.Zero(t, b.Count(), "zero-alpha layer")
}

func TestAppearance(t *testing.T) {
	tile := steady(mosaic.Shape{}, 0)
	s, a := Appearance(&tile)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 1.0, a)

	tile.Stage = mosaic.StageShowing
	tile.Elapsed = 0.5
	s, a = Appearance(&tile)
	assert.InDelta(t, 0.75, s, 1e-12)
	assert.InDelta(t, 0.5, a, 1e-12)

	tile.Stage = mosaic.StageHiding
	s, a = Appearance(&tile)
	assert.InDelta(t, 0.75, s, 1e-12)
	assert.InDelta(t, 0.5, a, 1e-12)
}

func TestFrameFromScheduler(t *testing.T) {
	sch := mosaic.NewScheduler(mosaic.SchedulerConfig{}, 7)
	sch.Resize(640, 480)
	snap := audio.Snapshot{}
	now := 0.0
	for i := 0; i < 120; i++ {
		now += 1.0 / 60
		sch.Step(now, 1.0/60, snap)
	}

	var b Builder
	b.Reset(nil, 640, 480)
	b.AddFrame(sch.Frame(now, snap))
	require.NotZero(t, b.Count())
	for i := 0; i < len(b.Verts); i += FloatsPerVertex {
		x, y := b.Verts[i], b.Verts[i+1]
		assert.True(t, x >= 0 && x <= 640 && y >= 0 && y <= 480, "vertex (%v,%v) off screen", x, y)
	}
}
