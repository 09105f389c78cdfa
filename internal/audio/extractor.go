package audio

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidSize is returned when the transform size is not a power of two
// of at least MinBlock samples.
var ErrInvalidSize = errors.New("transform size must be a power of two >= 8")

// Extractor computes Features from mono blocks. It keeps the previous power
// spectrum and a flux average between calls, so one Extractor serves one
// stream.
type Extractor struct {
	sampleRate float64
	size       int
	nBins      int

	fft    *fourier.FFT
	window []float64
	buf    []float64
	coeffs []complex128
	power  []float64
	prev   []float64

	fluxEMA float64
}

// NewExtractor builds an extractor for the given sample rate and transform
// size.
func NewExtractor(sampleRate float64, size int) (*Extractor, error) {
	if size < MinBlock || bits.OnesCount(uint(size)) != 1 {
		return nil, fmt.Errorf("extractor size %d: %w", size, ErrInvalidSize)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		sampleRate = DefaultSampleRate
	}

	w := make([]float64, size)
	for i := range w {
		w[i] = 1
	}
	window.Hann(w)

	return &Extractor{
		sampleRate: sampleRate,
		size:       size,
		nBins:      size / 2,
		fft:        fourier.NewFFT(size),
		window:     w,
		buf:        make([]float64, size),
		coeffs:     make([]complex128, size/2+1),
		power:      make([]float64, size/2),
		prev:       make([]float64, size/2),
	}, nil
}

func (e *Extractor) SampleRate() float64 { return e.sampleRate }
func (e *Extractor) Size() int           { return e.size }

// Reset forgets the previous spectrum and flux average.
func (e *Extractor) Reset() {
	for i := range e.prev {
		e.prev[i] = 0
	}
	e.fluxEMA = 0
}

// Process analyses one block. Samples beyond Size are ignored; blocks with
// fewer than MinBlock samples return zero Features and leave history alone.
func (e *Extractor) Process(samples []float32) Features {
	n := len(samples)
	if n > e.size {
		n = e.size
	}
	if n < MinBlock {
		return Features{}
	}

	for i := 0; i < n; i++ {
		v := float64(samples[i])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		e.buf[i] = v
	}
	for i := n; i < e.size; i++ {
		e.buf[i] = 0
	}
	floats.Mul(e.buf, e.window)

	e.coeffs = e.fft.Coefficients(e.coeffs, e.buf)
	norm := 2.0 / float64(e.size)
	for k := 0; k < e.nBins; k++ {
		c := e.coeffs[k]
		re, im := real(c)*norm, imag(c)*norm
		e.power[k] = re*re + im*im
	}

	b0, b1, b2, b3 := e.cutPoints()
	f := Features{
		Low:  mean(e.power[b0:b1]),
		Mid:  mean(e.power[b1:b2]),
		High: mean(e.power[b2:b3]),
	}

	band := e.power[b0:b3]
	total := floats.Sum(band)
	f.Level = math.Sqrt(total / float64(len(band)))

	binWidth := e.sampleRate / float64(e.size)
	weighted := 0.0
	for i, p := range band {
		weighted += float64(b0+i) * binWidth * p
	}
	f.Centroid = weighted / (total + epsilon)

	rise := 0.0
	for k, p := range e.power {
		if d := p - e.prev[k]; d > 0 {
			rise += d
		}
	}
	f.Flux = rise / float64(e.nBins)
	e.fluxEMA += FluxAlpha * (f.Flux - e.fluxEMA)
	f.Beat = f.Flux > e.fluxEMA*BeatThreshold+BeatGate

	copy(e.prev, e.power)
	return f
}

// cutPoints maps the band edges onto strictly increasing bin indices.
func (e *Extractor) cutPoints() (b0, b1, b2, b3 int) {
	binWidth := e.sampleRate / float64(e.size)
	top := math.Min(BandTopFraction*e.sampleRate, BandTopHz)
	toBin := func(hz float64) int {
		b := int(hz / binWidth)
		if b < 1 {
			return 1
		}
		if b > e.nBins-1 {
			return e.nBins - 1
		}
		return b
	}
	b0 = min(toBin(BandLowHz), e.nBins-3)
	b1 = min(max(toBin(BandMidHz), b0+1), e.nBins-2)
	b2 = min(max(toBin(BandHighHz), b1+1), e.nBins-1)
	b3 = min(max(toBin(top), b2+1), e.nBins)
	return b0, b1, b2, b3
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Sum(v) / float64(len(v))
}
