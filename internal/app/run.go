// Package app owns the window and the frame loop that ties audio analysis,
// the scene scheduler and the renderer together.
package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"

	"mosaic/internal/config"
	"mosaic/internal/mosaic"
	"mosaic/internal/render"
)

// maxFrameDelta caps the tick length after stalls such as window drags.
const maxFrameDelta = 0.1

// Run opens the window and drives the visualizer until it is closed.
func Run(cfg config.Config) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	seed := cfg.ResolveSeed()
	logrus.WithFields(logrus.Fields{
		"seed":   seed,
		"source": cfg.Source,
		"grid":   cfg.GridSize,
	}).Info("starting mosaic")

	win, err := openWindow(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer win.close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pipeline, src := startAudio(ctx, cfg, seed^0xA0D10)
	defer func() {
		if err := src.Stop(); err != nil {
			logrus.WithError(err).Warn("stopping audio source")
		}
	}()

	sch := mosaic.NewScheduler(mosaic.SchedulerConfig{
		Engine:            mosaic.EngineConfig{GridSize: cfg.GridSize},
		CycleInterval:     cfg.CycleInterval.Seconds(),
		CrossfadeDuration: cfg.CrossfadeDuration.Seconds(),
	}, seed)
	cam := render.NewCamera()
	subscribe(sch.Events(), &cam)

	input := NewInput()
	start := glfw.GetTime()
	last := start
	for !win.ShouldClose() {
		t := glfw.GetTime()
		dt := t - last
		last = t
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
		now := t - start

		glfw.PollEvents()
		if win.GetKey(glfw.KeyEscape) == glfw.Press {
			win.SetShouldClose(true)
			continue
		}

		fbW, fbH, changed := win.takeResize()
		if changed {
			sch.Resize(float64(fbW), float64(fbH))
		}
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		if input.WantsReseed(win.Window) {
			sch.Reseed(now)
		}

		snap := pipeline.Latest()
		sch.Step(now, dt, snap)
		cam.Update(dt, seed^uint64(now*1000))

		rend.Draw(sch.Frame(now, snap), &cam, fbW, fbH)
		win.SwapBuffers()
	}

	logrus.Info("window closed")
	return nil
}

// subscribe routes engine and scene events to camera effects and the log.
func subscribe(bus *mosaic.EventBus, cam *render.Camera) {
	bus.Subscribe(mosaic.EventBeatBurst, func(e mosaic.Event) {
		cam.Kick(render.BeatPulse)
		logrus.WithFields(logrus.Fields{
			"scene": e.Scene,
			"tiles": e.Count,
		}).Debug("beat burst")
	})
	bus.Subscribe(mosaic.EventRareEvent, func(e mosaic.Event) {
		cam.AddShake(render.RareShake, render.RareShakeTime)
		logrus.WithFields(logrus.Fields{
			"scene": e.Scene,
			"tiles": e.Count,
			"clock": e.Time,
		}).Debug("rare event")
	})
}
