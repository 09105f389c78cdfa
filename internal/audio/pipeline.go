package audio

import (
	"sync/atomic"
)

// Snapshot is everything derived from one audio block. Published snapshots
// are never mutated, so a reader always sees fields from a single block.
type Snapshot struct {
	Features
	Loudness float64
	Seq      uint64
}

// FeatureProvider hands the latest snapshot to the animation tick.
type FeatureProvider interface {
	Latest() Snapshot
}

// StaticProvider always returns the same snapshot. Useful for tests and as
// the fallback when no audio is available.
type StaticProvider Snapshot

func (p StaticProvider) Latest() Snapshot { return Snapshot(p) }

// Pipeline runs the extractor and the loudness tracker over each block and
// publishes the result. Process is called from the capture goroutine and
// Latest from the frame loop; the only shared state is the published
// pointer.
type Pipeline struct {
	extractor *Extractor
	loudness  *LoudnessTracker
	seq       uint64
	latest    atomic.Pointer[Snapshot]
}

// NewPipeline builds a pipeline. A nil extractor is allowed and yields
// zero spectral features with a live loudness level.
func NewPipeline(ex *Extractor) *Pipeline {
	return &Pipeline{
		extractor: ex,
		loudness:  NewLoudnessTracker(),
	}
}

// Process analyses one block and publishes the snapshot.
func (p *Pipeline) Process(block []float32) Snapshot {
	var f Features
	if p.extractor != nil {
		f = p.extractor.Process(block)
	}
	p.seq++
	s := &Snapshot{
		Features: f,
		Loudness: p.loudness.Process(block),
		Seq:      p.seq,
	}
	p.latest.Store(s)
	return *s
}

// Latest returns the most recently published snapshot, or the zero snapshot
// before the first block.
func (p *Pipeline) Latest() Snapshot {
	if s := p.latest.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// Reset clears analysis history and the published snapshot. Call it only
// while no source is feeding the pipeline.
func (p *Pipeline) Reset() {
	if p.extractor != nil {
		p.extractor.Reset()
	}
	p.loudness.Reset()
	p.latest.Store(nil)
}
