package mosaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/internal/audio"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := NewScheduler(SchedulerConfig{CycleInterval: 30, CrossfadeDuration: 2}, 42)
	s.Resize(800, 600)
	require.True(t, s.Current().Ready())
	return s
}

func TestCrossfadeCommit(t *testing.T) {
	s := newTestScheduler(t)
	snap := audio.Snapshot{}
	s.Step(9, tick, snap)

	const t0 = 10.0
	first := s.Current()
	require.True(t, s.Reseed(t0))
	incoming := s.Next()
	require.NotNil(t, incoming)
	assert.Equal(t, 0.0, s.FadeWeight(t0))

	s.Step(t0, tick, snap)
	s.Step(t0+1, tick, snap)
	assert.InDelta(t, 0.5, s.FadeWeight(t0+1), 1e-12)
	s.Step(t0+1.999, tick, snap)
	require.True(t, s.Fading(), "must not commit before the fade ends")
	assert.Same(t, first, s.Current())

	assert.Equal(t, 1.0, s.FadeWeight(t0+2))
	s.Step(t0+2, tick, snap)
	assert.False(t, s.Fading())
	assert.Nil(t, s.Next())
	assert.Same(t, incoming, s.Current())
	assert.Equal(t, 0.0, s.FadeWeight(t0+2))
}

func TestCrossfadeCommitsAtFractionalTimes(t *testing.T) {
	const fade = 4.0
	s := NewScheduler(SchedulerConfig{CycleInterval: 1e9, CrossfadeDuration: fade}, 3)
	s.Resize(320, 240)
	snap := audio.Snapshot{}
	for i := 0; i < 2000; i++ {
		t0 := 10 + 0.0137*float64(i)
		require.True(t, s.Reseed(t0), "t0=%v", t0)
		require.Equal(t, 1.0, s.FadeWeight(t0+fade), "t0=%v", t0)
		s.Step(t0+fade, tick, snap)
		require.False(t, s.Fading(), "fade still open at t0=%v", t0)
	}
}

func TestReseedDuringFadeIsRefused(t *testing.T) {
	s := newTestScheduler(t)
	require.True(t, s.Reseed(1))
	next := s.Next()
	assert.False(t, s.Reseed(1.5))
	assert.Same(t, next, s.Next())
}

func TestCycleStartsTransition(t *testing.T) {
	s := newTestScheduler(t)
	snap := audio.Snapshot{}
	var begins, commits int
	s.Events().Subscribe(EventSceneBegin, func(Event) { begins++ })
	s.Events().Subscribe(EventSceneCommit, func(Event) { commits++ })

	s.Step(100, tick, snap)
	s.Step(129.9, tick, snap)
	assert.False(t, s.Fading())
	s.Step(130, tick, snap)
	assert.True(t, s.Fading())
	assert.Equal(t, 1, begins)

	s.Step(132, tick, snap)
	assert.False(t, s.Fading())
	assert.Equal(t, 1, commits)

	// The cycle timer restarts at the commit.
	s.Step(161.9, tick, snap)
	assert.False(t, s.Fading())
	s.Step(162, tick, snap)
	assert.True(t, s.Fading())
}

func TestBothScenesAnimateDuringFade(t *testing.T) {
	s := newTestScheduler(t)
	snap := audio.Snapshot{}
	s.Step(0, tick, snap)
	require.True(t, s.Reseed(0))
	before := s.Current().Clock()
	for i := 1; i <= 30; i++ {
		s.Step(float64(i)*tick, tick, snap)
	}
	assert.Greater(t, s.Current().Clock(), before)
	require.NotNil(t, s.Next())
	assert.Greater(t, s.Next().Clock(), 0.0)
	assert.True(t, s.Next().Ready())
}

func TestSchedulerScenesAreSeeded(t *testing.T) {
	a := NewScheduler(SchedulerConfig{}, 7)
	b := NewScheduler(SchedulerConfig{}, 7)
	assert.Equal(t, a.Current().Seed(), b.Current().Seed())
	a.Reseed(0)
	b.Reseed(0)
	assert.Equal(t, a.Next().Seed(), b.Next().Seed())
	assert.NotEqual(t, a.Current().Seed(), a.Next().Seed())
	assert.Equal(t, a.Next().ID, b.Next().ID)
}

func TestSchedulerDegenerateResize(t *testing.T) {
	s := NewScheduler(SchedulerConfig{}, 1)
	s.Resize(0, 0)
	assert.False(t, s.Current().Ready())
	s.Step(0, tick, audio.Snapshot{})
	require.True(t, s.Reseed(0))
	assert.False(t, s.Next().Ready())

	s.Resize(640, 480)
	assert.True(t, s.Current().Ready())
	assert.True(t, s.Next().Ready())
}

func TestFrameLayers(t *testing.T) {
	s := newTestScheduler(t)
	snap := audio.Snapshot{Loudness: 0.3}
	f := s.Frame(0, snap)
	require.Len(t, f.Layers, 1)
	assert.Equal(t, 1.0, f.Layers[0].Alpha)
	assert.Equal(t, s.Current().Palette().Background, f.Background)
	assert.Equal(t, snap, f.Snapshot)
	assert.Len(t, f.Layers[0].Tiles, s.Current().Population())

	require.True(t, s.Reseed(4))
	f = s.Frame(5, snap)
	require.Len(t, f.Layers, 2)
	assert.InDelta(t, 0.5, f.Fade, 1e-12)
	assert.InDelta(t, 0.5, f.Layers[0].Alpha, 1e-12)
	assert.InDelta(t, 0.5, f.Layers[1].Alpha, 1e-12)
	assert.Equal(t, s.Next().ID, f.Layers[1].Scene)
	want := s.Current().Palette().Background.Lerp(s.Next().Palette().Background, 0.5)
	assert.Equal(t, want, f.Background)
}
