package audio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

// MicSource captures the default input device through portaudio. Each
// callback block goes straight into the pipeline on portaudio's thread.
type MicSource struct {
	state      runState
	pipeline   *Pipeline
	sampleRate float64
	blockSize  int
	stream     *portaudio.Stream
}

func NewMicSource(p *Pipeline, sampleRate float64, blockSize int) *MicSource {
	return &MicSource{
		pipeline:   p,
		sampleRate: sampleRate,
		blockSize:  blockSize,
	}
}

func (m *MicSource) Name() string        { return SourceMic }
func (m *MicSource) SampleRate() float64 { return m.sampleRate }

func (m *MicSource) Start(ctx context.Context) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if m.state.running {
		return ErrAlreadyRunning
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	m.pipeline.Reset()
	stream, err := portaudio.OpenDefaultStream(1, 0, m.sampleRate, m.blockSize, m.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start input stream: %w", err)
	}
	m.stream = stream

	if err := m.state.begin(); err != nil {
		return err
	}
	watch(ctx, m.state.done, m)
	logrus.WithFields(logrus.Fields{
		"source":      m.Name(),
		"sample_rate": m.sampleRate,
		"block":       m.blockSize,
	}).Info("audio source started")
	return nil
}

func (m *MicSource) process(in []float32) {
	m.pipeline.Process(in)
}

func (m *MicSource) Stop() error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if !m.state.end() {
		return nil
	}
	stream := m.stream
	m.stream = nil
	var firstErr error
	if stream != nil {
		if err := stream.Stop(); err != nil {
			firstErr = fmt.Errorf("stop input stream: %w", err)
		}
		if err := stream.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close input stream: %w", err)
		}
	}
	if err := portaudio.Terminate(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("portaudio terminate: %w", err)
	}
	logrus.WithField("source", m.Name()).Info("audio source stopped")
	return firstErr
}
