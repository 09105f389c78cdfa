package mosaic

import "mosaic/internal/audio"

// Params are the audio-driven knobs recomputed every tick.
type Params struct {
	FlipChance  float64
	NoiseChance float64
}

// paramsFor maps loudness and the beat flag onto the tick parameters.
// Both stay inside their documented bounds for any input.
func paramsFor(s audio.Snapshot) Params {
	level := clampF(s.Loudness, 0, 1)
	if !finite(s.Loudness) {
		level = 0
	}
	beat := 0.0
	if s.Beat {
		beat = 1
	}
	return Params{
		FlipChance:  clampF(FlipChanceMin+0.08*level+0.035*beat, FlipChanceMin, FlipChanceMax),
		NoiseChance: clampF(NoiseChanceMin+0.6*level+0.05*beat, NoiseChanceMin, NoiseChanceMax),
	}
}
