package mosaic

import colorful "github.com/lucasb-eyer/go-colorful"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Floats returns the channels scaled to [0,1].
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// Lerp blends from c toward o by t in [0,1].
func (c RGB) Lerp(o RGB, t float64) RGB {
	return RGB{R: lerpU8(c.R, o.R, t), G: lerpU8(c.G, o.G, t), B: lerpU8(c.B, o.B, t)}
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// hsv converts hue in degrees, saturation and value in [0,1].
func hsv(h, s, v float64) RGB {
	r, g, b := colorful.Hsv(h, clampF(s, 0, 1), clampF(v, 0, 1)).RGB255()
	return RGB{R: r, G: g, B: b}
}
