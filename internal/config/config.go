// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Seed drives every random choice. Zero means "seed from the clock".
	Seed uint64

	// Audio input
	Source     string // demo, mic or silent
	SampleRate float64
	BlockSize  int
	FFTSize    int
	Volume     float64 // demo monitor volume, 0..1

	// Scenes
	GridSize          int
	CycleInterval     time.Duration
	CrossfadeDuration time.Duration

	// Window
	Width, Height int

	LogLevel logrus.Level
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Seed:              envUint("MOSAIC_SEED", 0),
		Source:            strings.ToLower(envStr("MOSAIC_SOURCE", "demo")),
		SampleRate:        envFloat("MOSAIC_SAMPLE_RATE", 44100),
		BlockSize:         envInt("MOSAIC_BLOCK_SIZE", 1024),
		FFTSize:           envInt("MOSAIC_FFT_SIZE", 1024),
		Volume:            envFloat("MOSAIC_VOLUME", 0.6),
		GridSize:          envInt("MOSAIC_GRID", 12),
		CycleInterval:     envSeconds("MOSAIC_CYCLE_SECONDS", 45*time.Second),
		CrossfadeDuration: envSeconds("MOSAIC_CROSSFADE_SECONDS", 4*time.Second),
		Width:             envInt("MOSAIC_WIDTH", 960),
		Height:            envInt("MOSAIC_HEIGHT", 720),
		LogLevel:          envLevel("MOSAIC_LOG_LEVEL", logrus.InfoLevel),
	}
}

// ResolveSeed returns Seed, or a clock-derived seed when Seed is zero.
func (c Config) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// envSeconds accepts either a plain number of seconds or a Go duration.
func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}

func envLevel(key string, fallback logrus.Level) logrus.Level {
	if v := os.Getenv(key); v != "" {
		if l, err := logrus.ParseLevel(v); err == nil {
			return l
		}
	}
	return fallback
}
