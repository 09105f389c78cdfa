// Package audio turns raw capture blocks into the feature snapshot the
// mosaic reacts to: band energies, centroid, flux/beat and a normalised
// loudness level.
package audio

// Features are the spectral measurements for one audio block. All fields are
// non-negative; Centroid is in Hz.
type Features struct {
	Low, Mid, High float64
	Level          float64
	Centroid       float64
	Flux           float64
	Beat           bool
}

// Band frequency edges in Hz. The top edge is further limited to
// BandTopFraction of the sample rate.
const (
	BandLowHz       = 20.0
	BandMidHz       = 250.0
	BandHighHz      = 2000.0
	BandTopHz       = 8000.0
	BandTopFraction = 0.45
)

// Flux / beat detection.
const (
	FluxAlpha     = 0.15
	BeatThreshold = 1.8
	BeatGate      = 1e-6
	MinBlock      = 8
	epsilon       = 1e-12
)

// Loudness tracker tuning.
const (
	NoiseGate   = 0.01
	PeakDecay   = 0.995
	LevelAlpha  = 0.2
	PeakEpsilon = 1e-6
)

// Capture defaults.
const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 1024
	DefaultFFTSize    = 1024
)
