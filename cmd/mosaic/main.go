// Command mosaic is an audio-reactive tile mosaic. All settings come from
// MOSAIC_* environment variables.
package main

import (
	"github.com/sirupsen/logrus"

	"mosaic/internal/app"
	"mosaic/internal/config"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(cfg.LogLevel)

	if err := app.Run(cfg); err != nil {
		logrus.WithError(err).Fatal("mosaic exited")
	}
}
