package audio

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyRunning is returned when starting a source that is running.
	ErrAlreadyRunning = errors.New("audio source is already running")
	// ErrUnknownSource is returned by NewSource for an unrecognised kind.
	ErrUnknownSource = errors.New("unknown audio source")
)

// Source feeds capture blocks into a Pipeline on its own goroutine.
// Stop is idempotent and a stopped source may be started again.
type Source interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
	SampleRate() float64
}

// Source kinds accepted by NewSource.
const (
	SourceDemo   = "demo"
	SourceMic    = "mic"
	SourceSilent = "silent"
)

// SourceConfig selects and sizes a capture source.
type SourceConfig struct {
	Kind       string
	SampleRate float64
	BlockSize  int
	Volume     float64
	Seed       uint64
}

// NewSource builds the source named by cfg.Kind feeding p.
func NewSource(cfg SourceConfig, p *Pipeline) (Source, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultBlockSize
	}
	switch cfg.Kind {
	case SourceDemo:
		return NewDemoSource(p, cfg.SampleRate, cfg.BlockSize, cfg.Volume, cfg.Seed), nil
	case SourceMic:
		return NewMicSource(p, cfg.SampleRate, cfg.BlockSize), nil
	case SourceSilent, "":
		return NewSilentSource(cfg.SampleRate), nil
	}
	return nil, ErrUnknownSource
}

// runState is the start/stop bookkeeping shared by the sources.
type runState struct {
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// begin marks the source running. It fails if it already is.
func (s *runState) begin() error {
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.done = make(chan struct{})
	return nil
}

// end marks the source stopped and reports whether it was running.
func (s *runState) end() bool {
	if !s.running {
		return false
	}
	s.running = false
	close(s.done)
	return true
}

// watch stops src when ctx is cancelled, unless it is stopped first.
func watch(ctx context.Context, done <-chan struct{}, src Source) {
	go func() {
		select {
		case <-ctx.Done():
			if err := src.Stop(); err != nil {
				logrus.WithFields(logrus.Fields{
					"source": src.Name(),
					"error":  err,
				}).Warn("audio source stop failed")
			}
		case <-done:
		}
	}()
}

// SilentSource produces no audio. The pipeline keeps its zero snapshot.
type SilentSource struct {
	state      runState
	sampleRate float64
}

func NewSilentSource(sampleRate float64) *SilentSource {
	return &SilentSource{sampleRate: sampleRate}
}

func (s *SilentSource) Name() string        { return SourceSilent }
func (s *SilentSource) SampleRate() float64 { return s.sampleRate }

func (s *SilentSource) Start(ctx context.Context) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if err := s.state.begin(); err != nil {
		return err
	}
	watch(ctx, s.state.done, s)
	return nil
}

func (s *SilentSource) Stop() error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.end()
	return nil
}

// Running reports whether the source has been started and not stopped.
func (s *SilentSource) Running() bool {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.running
}
