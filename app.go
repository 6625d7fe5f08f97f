package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/sparks/demo"
	"github.com/memmaker/sparks/engine/util"
)

// runDemo opens the window and drives the clock and render tasks until the window is closed,
// the process is interrupted, or a frame fails. Every GL and glfw call runs on the main thread.
func runDemo(settings demo.Settings) error {
	var (
		glApp     *util.GlApplication
		terminate func()
		err       error
	)
	mainthread.Call(func() {
		glApp, terminate, err = util.InitOpenGL(util.WindowSettings{
			Title:        "Sparks",
			Width:        settings.Width,
			Height:       settings.Height,
			Samples:      settings.Samples,
			DepthBits:    24,
			ContextMajor: 4,
			ContextMinor: 3,
			VSync:        settings.VSync,
		})
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(terminate)

	events := demo.NewEventQueue()
	glApp.ResizeHandler = func(width, height int) {
		events.Push(demo.ResizeEvent{Width: width, Height: height})
	}
	glApp.KeyHandler = func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			events.Push(demo.KeyEvent{Key: int(key)})
		}
	}
	glApp.CloseHandler = func() {
		events.Push(demo.CloseEvent{})
	}

	clock := util.NewSteppedFrameClock(int64(settings.ClockPeriodMs))
	loop := demo.NewRenderLoop(settings, glApp.Backend, glApp, clock, events)
	defer mainthread.Call(loop.Release)

	scheduler := util.NewScheduler()
	scheduler.Every("clock", settings.ClockPeriod(), func() error {
		clock.Tick()
		return nil
	})
	scheduler.EveryCoalesced("render", settings.RenderPeriod(), func() error {
		var tickErr error
		mainthread.Call(func() {
			glApp.PollEvents()
			tickErr = loop.Tick()
		})
		return tickErr
	})

	util.LogSystemInfo(fmt.Sprintf("rendering %d particles at %d Hz", settings.ParticleCount, settings.RenderRate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return scheduler.Run(ctx)
}
