package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"mosaic/internal/audio"
	"mosaic/internal/config"
)

// startAudio builds the analysis pipeline and starts the configured source.
// A bad transform size leaves the pipeline without spectral analysis; a
// source that cannot start is replaced by silence. Neither is fatal.
func startAudio(ctx context.Context, cfg config.Config, seed uint64) (*audio.Pipeline, audio.Source) {
	ex, err := audio.NewExtractor(cfg.SampleRate, cfg.FFTSize)
	if err != nil {
		logrus.WithError(err).Warn("spectral analysis disabled")
	}
	p := audio.NewPipeline(ex)

	src, err := audio.NewSource(audio.SourceConfig{
		Kind:       cfg.Source,
		SampleRate: cfg.SampleRate,
		BlockSize:  cfg.BlockSize,
		Volume:     cfg.Volume,
		Seed:       seed,
	}, p)
	if err == nil {
		if err = src.Start(ctx); err != nil {
			_ = src.Stop()
		}
	}
	if err != nil {
		logrus.WithError(fmt.Errorf("audio source %q: %w", cfg.Source, err)).
			Warn("falling back to silence")
		src = audio.NewSilentSource(cfg.SampleRate)
		// A fresh silent source cannot fail to start.
		_ = src.Start(ctx)
	}
	return p, src
}
