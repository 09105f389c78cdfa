package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/internal/audio"
	"mosaic/internal/config"
	"mosaic/internal/mosaic"
	"mosaic/internal/render"
)

func testConfig(source string) config.Config {
	return config.Config{
		Source:     source,
		SampleRate: 48000,
		BlockSize:  512,
		FFTSize:    1024,
	}
}

func TestStartAudioSilent(t *testing.T) {
	p, src := startAudio(context.Background(), testConfig(audio.SourceSilent), 1)
	t.Cleanup(func() { _ = src.Stop() })

	require.NotNil(t, p)
	assert.Equal(t, audio.SourceSilent, src.Name())
	assert.Equal(t, 48000.0, src.SampleRate())
	assert.Equal(t, audio.Snapshot{}, p.Latest())
}

func TestStartAudioFallsBackToSilence(t *testing.T) {
	p, src := startAudio(context.Background(), testConfig("theremin"), 1)
	t.Cleanup(func() { _ = src.Stop() })

	require.NotNil(t, p)
	assert.Equal(t, audio.SourceSilent, src.Name())
	silent, ok := src.(*audio.SilentSource)
	require.True(t, ok)
	assert.True(t, silent.Running())
}

func TestStartAudioBadTransformSize(t *testing.T) {
	cfg := testConfig(audio.SourceSilent)
	cfg.FFTSize = 1000
	p, src := startAudio(context.Background(), cfg, 1)
	t.Cleanup(func() { _ = src.Stop() })

	block := make([]float32, 512)
	for i := range block {
		block[i] = 0.5
	}
	snap := p.Process(block)
	assert.Equal(t, audio.Features{}, snap.Features, "no spectral analysis without an extractor")
	assert.Positive(t, snap.Loudness)
}

func TestSubscribeDrivesCamera(t *testing.T) {
	bus := mosaic.NewEventBus()
	cam := render.NewCamera()
	subscribe(bus, &cam)

	bus.Emit(mosaic.Event{Type: mosaic.EventBeatBurst, Count: 3})
	assert.Equal(t, render.BeatPulse, cam.Pulse)

	bus.Emit(mosaic.Event{Type: mosaic.EventRareEvent, Count: 12})
	assert.Equal(t, render.RareShake, cam.ShakeIntensity)
	assert.Equal(t, render.RareShakeTime, cam.ShakeTimer)

	bus.Emit(mosaic.Event{Type: mosaic.EventSceneCommit})
	assert.Equal(t, render.BeatPulse, cam.Pulse)
}

func TestWindowReportsResizeOnce(t *testing.T) {
	w := &window{fbW: 800, fbH: 600, resized: true}
	fw, fh, changed := w.takeResize()
	assert.True(t, changed)
	assert.Equal(t, 800, fw)
	assert.Equal(t, 600, fh)

	_, _, changed = w.takeResize()
	assert.False(t, changed)

	// Minimised: a zero size is still reported as a change.
	w.fbW, w.fbH, w.resized = 0, 0, true
	fw, fh, changed = w.takeResize()
	assert.True(t, changed)
	assert.Zero(t, fw)
	assert.Zero(t, fh)
}
