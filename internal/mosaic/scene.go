package mosaic

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mosaic/internal/audio"
	"mosaic/internal/rng"
)

// SchedulerConfig controls scene cycling. Durations are seconds.
type SchedulerConfig struct {
	Engine            EngineConfig
	CycleInterval     float64
	CrossfadeDuration float64
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.CycleInterval <= 0 {
		c.CycleInterval = DefaultCycleInterval
	}
	if c.CrossfadeDuration <= 0 {
		c.CrossfadeDuration = DefaultCrossfadeDuration
	}
	return c
}

// Scheduler runs the current scene and, during a transition, the incoming
// one. A transition is in progress exactly when Next is non-nil.
type Scheduler struct {
	cfg    SchedulerConfig
	rng    *rng.Rand
	events *EventBus

	current *Engine
	next    *Engine

	width, height float64
	started       bool
	cycleStart    float64
	fadeStart     float64
}

// NewScheduler builds a scheduler whose scenes are all seeded from seed.
func NewScheduler(cfg SchedulerConfig, seed uint64) *Scheduler {
	s := &Scheduler{
		cfg:    cfg.withDefaults(),
		rng:    rng.New(seed),
		events: NewEventBus(),
	}
	s.current = s.newEngine()
	return s
}

func (s *Scheduler) newEngine() *Engine {
	e := NewEngine(s.cfg.Engine, s.rng.NextUint64())
	e.SetEvents(s.events)
	return e
}

func (s *Scheduler) Events() *EventBus { return s.events }
func (s *Scheduler) Current() *Engine  { return s.current }
func (s *Scheduler) Next() *Engine     { return s.next }
func (s *Scheduler) Fading() bool      { return s.next != nil }

// Resize forwards a viewport change to both engines. Zero-area sizes are
// remembered but leave the engines waiting for a usable size.
func (s *Scheduler) Resize(width, height float64) {
	s.width, s.height = width, height
	s.current.Resize(width, height)
	if s.next != nil {
		s.next.Resize(width, height)
	}
}

// Step advances scheduling to time now and steps every live engine by dt.
func (s *Scheduler) Step(now, dt float64, snap audio.Snapshot) {
	if !s.started {
		s.started = true
		s.cycleStart = now
	}
	if s.next == nil && now-s.cycleStart >= s.cfg.CycleInterval {
		s.begin(now)
	}
	if s.next != nil && s.fadeDone(now) {
		s.commit(now)
	}

	s.current.Step(dt, snap)
	if s.next != nil {
		s.next.Step(dt, snap)
	}
}

// Reseed starts a transition to a fresh scene right away. It returns false
// if a transition is already running.
func (s *Scheduler) Reseed(now float64) bool {
	if s.next != nil {
		return false
	}
	if !s.started {
		s.started = true
		s.cycleStart = now
	}
	s.begin(now)
	return true
}

// FadeWeight is the incoming scene's share at time now, in [0,1]. It is 0
// when no transition is running.
func (s *Scheduler) FadeWeight(now float64) float64 {
	if s.next == nil {
		return 0
	}
	if s.fadeDone(now) {
		return 1
	}
	return clampF((now-s.fadeStart)/s.cfg.CrossfadeDuration, 0, 1)
}

// fadeDone compares against the end time directly; the ratio can round to
// just under 1 at exactly fadeStart+CrossfadeDuration.
func (s *Scheduler) fadeDone(now float64) bool {
	return s.cfg.CrossfadeDuration <= 0 || now >= s.fadeStart+s.cfg.CrossfadeDuration
}

func (s *Scheduler) begin(now float64) {
	e := s.newEngine()
	e.Setup(s.width, s.height)
	s.next = e
	s.fadeStart = now
	logrus.WithFields(logrus.Fields{
		"scene":    e.ID,
		"seed":     e.Seed(),
		"base_hue": e.Palette().BaseHue,
	}).Debug("scene transition started")
	s.events.Emit(Event{Type: EventSceneBegin, Scene: e.ID, Time: now})
}

func (s *Scheduler) commit(now float64) {
	prev := s.current.ID
	s.current = s.next
	s.next = nil
	s.cycleStart = now
	logrus.WithFields(logrus.Fields{
		"scene":    s.current.ID,
		"previous": prev,
	}).Debug("scene transition committed")
	s.events.Emit(Event{Type: EventSceneCommit, Scene: s.current.ID, Time: now})
}

// Layer is one scene as the renderer sees it.
type Layer struct {
	Scene    uuid.UUID
	Tiles    []Tile
	Palette  Palette
	Geometry Geometry
	Alpha    float64
}

// Frame is the per-tick output for the renderer. Layers are ordered back to
// front; Tiles slices are only valid until the next Step.
type Frame struct {
	Layers     []Layer
	Fade       float64
	Background RGB
	Snapshot   audio.Snapshot
}

// Frame assembles the renderer view at time now.
func (s *Scheduler) Frame(now float64, snap audio.Snapshot) Frame {
	w := s.FadeWeight(now)
	f := Frame{
		Fade:       w,
		Background: s.current.palette.Background,
		Snapshot:   snap,
	}
	f.Layers = append(f.Layers, layerOf(s.current, 1-w))
	if s.next != nil {
		f.Background = f.Background.Lerp(s.next.palette.Background, w)
		f.Layers = append(f.Layers, layerOf(s.next, w))
	}
	return f
}

func layerOf(e *Engine, alpha float64) Layer {
	return Layer{
		Scene:    e.ID,
		Tiles:    e.tiles,
		Palette:  e.palette,
		Geometry: e.geom,
		Alpha:    alpha,
	}
}
