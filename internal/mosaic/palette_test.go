package mosaic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/internal/rng"
)

func TestPaletteSeed42(t *testing.T) {
	p := RandomPalette(rng.New(42))
	assert.InDelta(t, 234.4938927263094, p.BaseHue, 1e-9)
	assert.InDelta(t, 254.291204512617, p.AccentHue, 1e-9)
	require.Len(t, p.Tiles, 4)
}

func TestPaletteRanges(t *testing.T) {
	for seed := uint64(0); seed < 500; seed++ {
		p := RandomPalette(rng.New(seed))
		require.GreaterOrEqual(t, p.BaseHue, BaseHueMin)
		require.LessOrEqual(t, p.BaseHue, BaseHueMax)
		delta := p.AccentHue - p.BaseHue
		if delta < 0 {
			delta += 360
		}
		require.GreaterOrEqual(t, delta, AccentDeltaMin-1e-9)
		require.LessOrEqual(t, delta, AccentDeltaMax+1e-9)
		require.GreaterOrEqual(t, p.Saturation, SaturationMin)
		require.LessOrEqual(t, p.Saturation, SaturationMax)
		require.GreaterOrEqual(t, p.Value, ValueMin)
		require.LessOrEqual(t, p.Value, ValueMax)
	}
}

func TestPaletteDeterministic(t *testing.T) {
	a := RandomPalette(rng.New(1234))
	b := RandomPalette(rng.New(1234))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("palettes differ (-a +b):\n%s", diff)
	}
	c := RandomPalette(rng.New(1235))
	assert.NotEqual(t, a.BaseHue, c.BaseHue)
}

func TestPaletteBackgroundIsDark(t *testing.T) {
	p := RandomPalette(rng.New(7))
	bg := int(p.Background.R) + int(p.Background.G) + int(p.Background.B)
	for _, c := range p.Tiles {
		assert.Less(t, bg, int(c.R)+int(c.G)+int(c.B))
	}
}

func TestPalettePick(t *testing.T) {
	p := RandomPalette(rng.New(3))
	assert.Equal(t, p.Tiles[1], p.Pick(5))
	assert.Equal(t, p.Tiles[3], p.Pick(-1))

	empty := Palette{Background: RGB{R: 1, G: 2, B: 3}}
	assert.Equal(t, empty.Background, empty.Pick(0))
}

func TestRGBLerp(t *testing.T) {
	a, b := RGB{R: 0, G: 100, B: 200}, RGB{R: 100, G: 100, B: 0}
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, RGB{R: 50, G: 100, B: 100}, a.Lerp(b, 0.5))
}
