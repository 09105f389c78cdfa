package audio

import "math"

// LoudnessTracker follows the raw block RMS with a noise gate, a slowly
// decaying peak for automatic gain, and exponential smoothing. The peak is
// floored at PeakEpsilon so a fresh tracker needs no warm-up.
type LoudnessTracker struct {
	agcPeak float64
	level   float64
}

func NewLoudnessTracker() *LoudnessTracker {
	return &LoudnessTracker{}
}

// Process folds one block into the tracker and returns the smoothed level
// in [0,1].
func (t *LoudnessTracker) Process(samples []float32) float64 {
	gated := math.Max(0, rms(samples)-NoiseGate)
	t.agcPeak = math.Max(gated, t.agcPeak*PeakDecay)
	norm := clamp01(gated / math.Max(t.agcPeak, PeakEpsilon))
	t.level += LevelAlpha * (norm - t.level)
	return t.level
}

func (t *LoudnessTracker) Level() float64 { return t.level }
func (t *LoudnessTracker) Peak() float64  { return t.agcPeak }

func (t *LoudnessTracker) Reset() {
	t.agcPeak = 0
	t.level = 0
}

func rms(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
