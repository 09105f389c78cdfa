// Package mosaic holds the generative scene: palette, tiles, the engine that
// places and animates them, and the scheduler that cross-fades between
// independently seeded engines.
package mosaic

import (
	"math"

	"github.com/google/uuid"

	"mosaic/internal/audio"
	"mosaic/internal/rng"
)

// EngineConfig sizes an engine. Zero fields take the package defaults.
type EngineConfig struct {
	GridSize     int
	FillFraction float64
	FillRatio    float64
	Candidates   int
	// NoPrefill leaves the grid empty after Setup; tiles then arrive only
	// through the per-tick spawn budget.
	NoPrefill bool
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.GridSize <= 0 {
		c.GridSize = DefaultGridSize
	}
	if c.FillFraction <= 0 || c.FillFraction > 1 {
		c.FillFraction = DefaultFillFraction
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = DefaultFillRatio
	}
	if c.Candidates < 8 {
		c.Candidates = DefaultCandidates
	}
	return c
}

// Geometry maps grid cells onto the viewport in pixels.
type Geometry struct {
	Width, Height    float64
	Unit             float64
	OriginX, OriginY float64
	GridSize         int
}

// Center returns the pixel centre of a tile at grid position (gx,gy).
func (g Geometry) Center(gx, gy float64) (float64, float64) {
	return g.OriginX + (gx+0.5)*g.Unit, g.OriginY + (gy+0.5)*g.Unit
}

// Engine owns one scene's tile population. It is driven from a single
// goroutine; nothing in it blocks.
type Engine struct {
	ID uuid.UUID

	cfg     EngineConfig
	seed    uint64
	rng     *rng.Rand
	palette Palette
	events  *EventBus

	geom  Geometry
	ready bool

	tiles    []Tile
	occupied []bool
	target   int

	history   kindHistory
	lastColor int

	params   Params
	scratch  []int
	clock    float64
	hazard   float64
	lastBeat float64
	lastRare float64
	boost    float64
}

// NewEngine creates an engine whose every choice derives from seed. The
// palette is drawn first so it depends on the seed alone.
func NewEngine(cfg EngineConfig, seed uint64) *Engine {
	cfg = cfg.withDefaults()
	r := rng.New(seed)
	e := &Engine{
		ID:        sceneID(seed),
		cfg:       cfg,
		seed:      seed,
		rng:       r,
		palette:   RandomPalette(r),
		occupied:  make([]bool, cfg.GridSize*cfg.GridSize),
		lastColor: -1,
		lastBeat:  math.Inf(-1),
		params:    paramsFor(audio.Snapshot{}),
	}
	cells := cfg.GridSize * cfg.GridSize
	e.target = max(1, int(float64(cells)*cfg.FillRatio))
	return e
}

// sceneID derives a stable identifier from the seed, so replays with the
// same seed log and render under the same scene ids.
func sceneID(seed uint64) uuid.UUID {
	id, err := uuid.NewRandomFromReader(rng.New(seed ^ sceneIDSalt))
	if err != nil {
		// rng.Rand never fails to read.
		panic(err)
	}
	return id
}

// SetEvents routes beat-burst and rare-event notifications to bus.
func (e *Engine) SetEvents(bus *EventBus) { e.events = bus }

func (e *Engine) Seed() uint64         { return e.seed }
func (e *Engine) Palette() Palette     { return e.palette }
func (e *Engine) Geometry() Geometry   { return e.geom }
func (e *Engine) Params() Params       { return e.params }
func (e *Engine) Target() int          { return e.target }
func (e *Engine) Population() int      { return len(e.tiles) }
func (e *Engine) Ready() bool          { return e.ready }
func (e *Engine) Hazard() float64      { return e.hazard }
func (e *Engine) Clock() float64       { return e.clock }
func (e *Engine) Config() EngineConfig { return e.cfg }

// Tiles returns the live tiles. The slice is owned by the engine and is
// only valid until the next Step.
func (e *Engine) Tiles() []Tile { return e.tiles }

// Setup computes the grid geometry for a viewport and seeds the initial
// population. A zero-area viewport defers setup and returns false.
func (e *Engine) Setup(width, height float64) bool {
	if !e.layout(width, height) {
		return false
	}
	e.tiles = e.tiles[:0]
	e.rebuildOccupancy()
	e.ready = true
	if !e.cfg.NoPrefill {
		e.prefill()
	}
	return true
}

// Resize recomputes geometry only. The first valid size runs Setup.
func (e *Engine) Resize(width, height float64) bool {
	if !e.ready {
		return e.Setup(width, height)
	}
	return e.layout(width, height)
}

func (e *Engine) layout(width, height float64) bool {
	if !(width > 0) || !(height > 0) || !finite(width) || !finite(height) {
		return false
	}
	n := float64(e.cfg.GridSize)
	unit := e.cfg.FillFraction * math.Min(width, height) / n
	e.geom = Geometry{
		Width:    width,
		Height:   height,
		Unit:     unit,
		OriginX:  (width - unit*n) / 2,
		OriginY:  (height - unit*n) / 2,
		GridSize: e.cfg.GridSize,
	}
	return true
}

func (e *Engine) prefill() {
	snap := audio.Snapshot{}
	for i := 0; i < SetupAttempts && len(e.tiles) < e.target; i++ {
		e.Place(snap, NoiseChanceMax)
	}
}

// Step advances the scene by dt seconds under the given audio snapshot.
func (e *Engine) Step(dt float64, snap audio.Snapshot) {
	if !e.ready || !(dt > 0) || !finite(dt) {
		return
	}
	e.clock += dt
	e.params = paramsFor(snap)

	for i := range e.tiles {
		e.tiles[i].Update(dt)
	}
	for i := range e.tiles {
		if e.tiles[i].Stage == StageSteady && e.rng.Chance(RetireRate*dt) {
			e.tiles[i].Hide()
		}
	}
	if e.rng.Chance(e.params.FlipChance) {
		e.flipRandom(1)
	}

	if snap.Beat && e.clock-e.lastBeat >= BeatCooldown {
		e.lastBeat = e.clock
		n := e.flipRandom(BeatBurst)
		e.events.Emit(Event{Type: EventBeatBurst, Scene: e.ID, Time: e.clock, Count: n})
	}

	flux := soft(snap.Flux, FluxRef)
	e.hazard = clampF(e.hazard+dt*(HazardRate+HazardFluxGain*flux), 0, 1)
	if e.clock-e.lastRare >= RareCooldown && e.rng.Chance(e.hazard) {
		e.hazard = 0
		e.lastRare = e.clock
		e.boost = RareBoostDuration
		n := e.flipRandom(RareBurst)
		e.events.Emit(Event{Type: EventRareEvent, Scene: e.ID, Time: e.clock, Count: n})
	}

	budget := SpawnBudget
	if e.boost > 0 {
		budget = BoostedBudget
		e.boost -= dt
	}
	for i := 0; i < budget && len(e.tiles) < e.target; i++ {
		e.Place(snap, e.params.NoiseChance)
	}

	e.removeDone()
}

// flipRandom flips up to n distinct steady tiles and returns how many.
func (e *Engine) flipRandom(n int) int {
	steady := e.scratch[:0]
	for i := range e.tiles {
		if e.tiles[i].Stage == StageSteady {
			steady = append(steady, i)
		}
	}
	e.scratch = steady
	flipped := 0
	for flipped < n && len(steady) > 0 {
		j := e.rng.Intn(len(steady))
		e.tiles[steady[j]].Flip()
		steady[j] = steady[len(steady)-1]
		steady = steady[:len(steady)-1]
		flipped++
	}
	return flipped
}

func (e *Engine) removeDone() {
	kept := e.tiles[:0]
	for _, t := range e.tiles {
		if !t.Done() {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(e.tiles) {
		return
	}
	e.tiles = kept
	e.rebuildOccupancy()
}

func (e *Engine) rebuildOccupancy() {
	for i := range e.occupied {
		e.occupied[i] = false
	}
	for i := range e.tiles {
		e.mark(&e.tiles[i])
	}
}

func (e *Engine) mark(t *Tile) {
	n := e.cfg.GridSize
	for _, c := range t.Cells() {
		if c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n {
			e.occupied[c.Y*n+c.X] = true
		}
	}
}

// free reports whether the size x size block at (x,y) is inside the grid and
// unoccupied.
func (e *Engine) free(x, y, size int) bool {
	n := e.cfg.GridSize
	if x < 0 || y < 0 || x+size > n || y+size > n {
		return false
	}
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			if e.occupied[(y+dy)*n+x+dx] {
				return false
			}
		}
	}
	return true
}
