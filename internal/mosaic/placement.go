package mosaic

import (
	"math"

	"mosaic/internal/audio"
)

// baseKindWeights is the unmodulated draw table, indexed by Kind.
var baseKindWeights = [kindCount]float64{
	KindLines:     1.0,
	KindTriangles: 1.0,
	KindTriSquare: 0.9,
	KindArc:       0.9,
}

type candidate struct {
	x, y  int // top-left cell
	size  int
	score float64
}

// Place makes one placement attempt: sample candidate cells, keep the least
// crowded free one, then pass it through the noise gate. On success the tile
// is added and returned. Failure is normal near full density.
func (e *Engine) Place(snap audio.Snapshot, noiseChance float64) (Tile, bool) {
	if !e.ready {
		return Tile{}, false
	}
	n := e.cfg.GridSize
	large := clampF(LargeChance+LargeBassGain*soft(snap.Low, BandRef), 0, LargeMax)

	var best candidate
	found := false
	for k := 0; k < e.cfg.Candidates; k++ {
		x := e.rng.IntInRange(0, n-1)
		y := e.rng.IntInRange(0, n-1)
		c := candidate{x: x, y: y, size: 1}
		if e.rng.Chance(large) && e.free(x-1, y-1, 2) {
			c = candidate{x: x - 1, y: y - 1, size: 2}
		} else if !e.free(x, y, 1) {
			continue
		}
		c.score = e.crowding(c)
		if !found || c.score < best.score {
			best, found = c, true
		}
	}
	if !found {
		return Tile{}, false
	}

	cx, cy := candidateCenter(best)
	if !accepts(cx, cy, e.clock, noiseChance) {
		return Tile{}, false
	}

	kind := e.pickKind(snap)
	t := Tile{
		GridX:    cx,
		GridY:    cy,
		Size:     best.size,
		Shape:    newShape(kind, e.rng),
		Rotation: e.rng.IntInRange(0, 3),
		Color:    e.pickColor(),
		Duration: e.rng.InRange(StageDurationMin, StageDurationMax),
		Stage:    StageShowing,
	}
	e.history.push(kind)
	e.tiles = append(e.tiles, t)
	e.mark(&e.tiles[len(e.tiles)-1])
	return t, true
}

// candidateCenter returns the grid position a tile placed at c would have.
func candidateCenter(c candidate) (float64, float64) {
	off := float64(c.size-1) / 2
	return float64(c.x) + off, float64(c.y) + off
}

// crowding counts placed tiles within CrowdRadius (Manhattan) of the
// candidate plus a small pull toward the grid centre.
func (e *Engine) crowding(c candidate) float64 {
	cx, cy := candidateCenter(c)
	score := 0.0
	for i := range e.tiles {
		t := &e.tiles[i]
		if math.Abs(t.GridX-cx)+math.Abs(t.GridY-cy) <= CrowdRadius {
			score++
		}
	}
	mid := float64(e.cfg.GridSize-1) / 2
	return score + CenterBias*(math.Abs(cx-mid)+math.Abs(cy-mid))/float64(e.cfg.GridSize)
}

// kindWeights applies the band boosts and the repetition penalty to the
// base table.
func (e *Engine) kindWeights(snap audio.Snapshot) [kindCount]float64 {
	w := baseKindWeights
	w[KindLines] *= 1 + KindBandGain*soft(snap.Mid, BandRef)
	w[KindArc] *= 1 + KindBandGain*soft(snap.High, BandRef)
	if total := e.history.len(); total > 0 {
		for k := range w {
			share := float64(e.history.count(Kind(k))) / float64(total)
			w[k] *= 1 - RepeatPenalty*share
		}
	}
	return w
}

func (e *Engine) pickKind(snap audio.Snapshot) Kind {
	w := e.kindWeights(snap)
	total := 0.0
	for _, v := range w {
		total += v
	}
	r := e.rng.NextDouble() * total
	for k, v := range w {
		if r < v {
			return Kind(k)
		}
		r -= v
	}
	return kindCount - 1
}

// pickColor draws a palette index, redrawing once with probability
// ColorRedraw when it repeats the previous one.
func (e *Engine) pickColor() RGB {
	n := len(e.palette.Tiles)
	if n == 0 {
		return e.palette.Background
	}
	i := e.rng.Intn(n)
	if i == e.lastColor && n > 1 && e.rng.Chance(ColorRedraw) {
		i = e.rng.Intn(n)
	}
	e.lastColor = i
	return e.palette.Pick(i)
}

// kindHistory is a fixed-capacity FIFO of recently spawned kinds with
// running per-kind counts.
type kindHistory struct {
	buf    [KindHistoryCap]Kind
	head   int
	size   int
	counts [kindCount]int
}

func (h *kindHistory) push(k Kind) {
	if h.size == KindHistoryCap {
		h.counts[h.buf[h.head]]--
	} else {
		h.size++
	}
	h.buf[h.head] = k
	h.counts[k]++
	h.head = (h.head + 1) % KindHistoryCap
}

func (h *kindHistory) len() int         { return h.size }
func (h *kindHistory) count(k Kind) int { return h.counts[k] }
