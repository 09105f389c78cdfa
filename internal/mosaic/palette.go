package mosaic

import (
	"math"

	"mosaic/internal/rng"
)

// Palette is the colour scheme of one scene. It never changes after
// RandomPalette returns it.
type Palette struct {
	BaseHue    float64
	AccentHue  float64
	Saturation float64
	Value      float64
	Tiles      []RGB
	Background RGB
}

// RandomPalette draws a blue-leaning base hue, an accent a little further
// round the wheel, and shared saturation/value, in that order.
func RandomPalette(r *rng.Rand) Palette {
	base := r.InRange(BaseHueMin, BaseHueMax)
	accent := math.Mod(base+r.InRange(AccentDeltaMin, AccentDeltaMax), 360)
	sat := r.InRange(SaturationMin, SaturationMax)
	val := r.InRange(ValueMin, ValueMax)

	return Palette{
		BaseHue:    base,
		AccentHue:  accent,
		Saturation: sat,
		Value:      val,
		Tiles: []RGB{
			hsv(base, sat, val),
			hsv(accent, sat, val),
			hsv(base, sat*0.55, val+0.15),
			hsv(accent, sat+0.1, val*0.7),
		},
		Background: hsv(base, sat*0.35, 0.06+val*0.08),
	}
}

// Pick returns tile colour i, wrapping. An empty palette yields the
// background so callers never need to check.
func (p Palette) Pick(i int) RGB {
	n := len(p.Tiles)
	if n == 0 {
		return p.Background
	}
	i %= n
	if i < 0 {
		i += n
	}
	return p.Tiles[i]
}
