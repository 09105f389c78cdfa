package audio

import (
	"context"
	"fmt"
	"math"

	"github.com/hajimehoshi/oto/v2"
	"github.com/sirupsen/logrus"
)

// Output layout for the monitor player: stereo float32 LE.
const (
	demoChannels   = 2
	demoFrameBytes = demoChannels * 4
)

// DemoSource plays a procedural groove through the default output device and
// analyses exactly the samples the player pulls, so the visuals follow what
// is heard without a microphone. Only one oto context may exist per process;
// the source creates it on first Start and keeps it across restarts.
type DemoSource struct {
	state      runState
	pipeline   *Pipeline
	sampleRate float64
	blockSize  int
	volume     float64
	seed       uint64

	ctx    *oto.Context
	ready  chan struct{}
	player oto.Player
}

func NewDemoSource(p *Pipeline, sampleRate float64, blockSize int, volume float64, seed uint64) *DemoSource {
	return &DemoSource{
		pipeline:   p,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		volume:     clamp01(volume),
		seed:       seed,
	}
}

func (d *DemoSource) Name() string        { return SourceDemo }
func (d *DemoSource) SampleRate() float64 { return d.sampleRate }

func (d *DemoSource) Start(ctx context.Context) error {
	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	if d.state.running {
		return ErrAlreadyRunning
	}

	if d.ctx == nil {
		c, ready, err := oto.NewContext(int(d.sampleRate), demoChannels, oto.FormatFloat32LE)
		if err != nil {
			return fmt.Errorf("oto context: %w", err)
		}
		d.ctx, d.ready = c, ready
	}
	select {
	case <-d.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	d.pipeline.Reset()
	tap := newTapReader(NewGroove(d.sampleRate, d.seed), d.pipeline, d.blockSize)
	d.player = d.ctx.NewPlayer(tap)
	d.player.SetVolume(d.volume)
	d.player.Play()

	if err := d.state.begin(); err != nil {
		return err
	}
	watch(ctx, d.state.done, d)
	logrus.WithFields(logrus.Fields{
		"source":      d.Name(),
		"sample_rate": d.sampleRate,
		"block":       d.blockSize,
		"tempo":       tap.groove.tempo,
	}).Info("audio source started")
	return nil
}

func (d *DemoSource) Stop() error {
	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	if !d.state.end() {
		return nil
	}
	p := d.player
	d.player = nil
	if p == nil {
		return nil
	}
	if err := p.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	logrus.WithField("source", d.Name()).Info("audio source stopped")
	return nil
}

// tapReader renders the groove for the player and hands each complete mono
// block to the pipeline on the way out.
type tapReader struct {
	groove   *Groove
	pipeline *Pipeline
	block    []float32
	fill     int
}

func newTapReader(g *Groove, p *Pipeline, blockSize int) *tapReader {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &tapReader{
		groove:   g,
		pipeline: p,
		block:    make([]float32, blockSize),
	}
}

func (r *tapReader) Read(p []byte) (int, error) {
	frames := len(p) / demoFrameBytes
	for i := 0; i < frames; i++ {
		v := r.groove.Next()
		putStereoF32(p, i, v)
		r.block[r.fill] = float32(v)
		r.fill++
		if r.fill == len(r.block) {
			r.pipeline.Process(r.block)
			r.fill = 0
		}
	}
	return frames * demoFrameBytes, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
