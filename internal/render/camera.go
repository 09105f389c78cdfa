package render

import "mosaic/internal/rng"

// Camera offsets and scales the whole mosaic around the viewport centre.
// Shake and pulse are purely decorative and decay on their own.
type Camera struct {
	Zoom float64 // 1 = grid as laid out by the engine

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in pixels
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude

	// Beat pulse, added on top of Zoom.
	Pulse float64
}

func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// Kick bumps the zoom pulse, capped at PulseMax.
func (c *Camera) Kick(amount float64) {
	c.Pulse = min(PulseMax, c.Pulse+amount)
}

// Update decays shake and pulse and draws new shake offsets.
func (c *Camera) Update(dt float64, seed uint64) {
	c.Pulse = approach(c.Pulse, 0, PulseDecay*dt)

	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	// Decaying intensity.
	t := c.ShakeTimer
	rr := rng.New(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.InRange(-mag, mag)
	c.ShakeY = rr.InRange(-mag, mag)
}

// Scale is the effective zoom including the pulse.
func (c *Camera) Scale() float64 {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return z * (1 + c.Pulse)
}

// Apply maps an engine pixel position to the screen for a viewport of w x h.
func (c *Camera) Apply(x, y, w, h float64) (float64, float64) {
	s := c.Scale()
	cx, cy := w*0.5, h*0.5
	return cx + (x-cx)*s + c.ShakeX, cy + (y-cy)*s + c.ShakeY
}

func approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}
