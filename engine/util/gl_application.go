package util

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/sparks/engine/glhf"
	"github.com/pkg/errors"
)

// WindowSettings describes the surface and the context requested from the window system.
type WindowSettings struct {
	Title        string
	Width        int
	Height       int
	Samples      int
	DepthBits    int
	ContextMajor int
	ContextMinor int
	VSync        bool
}

// GlApplication wraps the glfw window: it forwards input to handlers, reports visibility,
// and keeps FPS statistics in the window title.
type GlApplication struct {
	Window        *glfw.Window
	Backend       *glhf.GL43
	ResizeHandler func(width, height int)
	KeyHandler    func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	CloseHandler  func()
	WindowWidth   int
	WindowHeight  int

	title           string
	ticks           uint64
	lastSwap        time.Time
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(
			key,
			scancode,
			action,
			mods,
		)
	}
}

func (a *GlApplication) FramebufferSizeCallback(w *glfw.Window, width int, height int) {
	a.WindowWidth, a.WindowHeight = width, height
	if a.ResizeHandler != nil {
		a.ResizeHandler(width, height)
	}
}

func (a *GlApplication) CloseCallback(w *glfw.Window) {
	if a.CloseHandler != nil {
		a.CloseHandler()
	}
}

// Visible reports whether the window is shown and not minimized.
func (a *GlApplication) Visible() bool {
	return a.Window.GetAttrib(glfw.Visible) == glfw.True && a.Window.GetAttrib(glfw.Iconified) == glfw.False
}

// MakeCurrent makes the window's context current on the calling thread.
func (a *GlApplication) MakeCurrent() bool {
	a.Window.MakeContextCurrent()
	return glfw.GetCurrentContext() == a.Window
}

func (a *GlApplication) Size() (int, int) {
	return a.Window.GetFramebufferSize()
}

func (a *GlApplication) ShouldClose() bool {
	return a.Window.ShouldClose()
}

func (a *GlApplication) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the frame and updates the FPS statistics.
func (a *GlApplication) SwapBuffers() {
	a.Window.SwapBuffers()

	now := time.Now()
	if !a.lastSwap.IsZero() {
		elapsed := now.Sub(a.lastSwap).Seconds()
		if elapsed > 0 {
			a.FramesPerSecond = 1.0 / elapsed
		}
	}
	a.lastSwap = now

	if a.ticks%60 == 0 {
		sixtyTicksAverage := a.FPSRunningAvg
		a.Window.SetTitle(fmt.Sprintf("%s - FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f)", a.title, a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax))
		a.FPSRunningAvg = 0 + a.FramesPerSecond*(1.0/60.0)
		a.FPSMin = math.MaxFloat64
		a.FPSMax = 0
	} else {
		a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
		if a.FramesPerSecond < a.FPSMin {
			a.FPSMin = a.FramesPerSecond
		}
		if a.FramesPerSecond > a.FPSMax {
			a.FPSMax = a.FramesPerSecond
		}
	}
	a.ticks++
}

// InitOpenGL creates the window, makes its context current and loads the GL bindings.
// It must run on the main thread. The returned function terminates glfw.
func InitOpenGL(settings WindowSettings) (*GlApplication, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize glfw")
	}
	terminate := func() {
		glfw.Terminate()
	}

	glfw.WindowHint(glfw.ContextVersionMajor, settings.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, settings.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, settings.Samples)
	glfw.WindowHint(glfw.DepthBits, settings.DepthBits)

	win, err := glfw.CreateWindow(settings.Width, settings.Height, settings.Title, nil, nil)
	if err != nil {
		terminate()
		return nil, nil, errors.Wrapf(err, "failed to create window with an OpenGL %d.%d core context", settings.ContextMajor, settings.ContextMinor)
	}
	win.MakeContextCurrent()
	if settings.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	backend, err := glhf.Init()
	if err != nil {
		win.Destroy()
		terminate()
		return nil, nil, err
	}
	LogGlInfo("OpenGL version " + backend.Version())

	app := &GlApplication{
		Window:  win,
		Backend: backend,
		title:   settings.Title,
		FPSMin:  math.MaxFloat64,
	}
	app.WindowWidth, app.WindowHeight = win.GetFramebufferSize()
	win.SetKeyCallback(app.KeyCallback)
	win.SetFramebufferSizeCallback(app.FramebufferSizeCallback)
	win.SetCloseCallback(app.CloseCallback)

	return app, func() {
		win.Destroy()
		terminate()
	}, nil
}
