// Package demo runs the particle fountain: it owns the render loop, its settings and the
// events the window system feeds into it.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sparks/engine/glhf"
	"github.com/memmaker/sparks/engine/particles"
	"github.com/memmaker/sparks/engine/util"
	"github.com/pkg/errors"
)

// Surface is the window the loop renders into.
type Surface interface {
	Visible() bool
	MakeCurrent() bool
	Size() (int, int)
	SwapBuffers()
}

// Clock supplies the simulation time.
type Clock interface {
	ElapsedSeconds() float64
}

type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// fallbackColor fills the texture used when the particle image cannot be loaded.
var fallbackColor = [3]uint8{120, 170, 255}

// RenderLoop draws one frame per Tick. GPU resources are created on the first tick that
// finds a visible surface with a current context.
type RenderLoop struct {
	settings Settings
	backend  glhf.Backend
	surface  Surface
	clock    Clock
	events   *EventQueue

	state         State
	animate       bool
	hasPrev       bool
	prevTime      float64
	pendingResize bool
	resizeW       int
	resizeH       int

	particles *glhf.ParticleArray
	shader    *glhf.Shader
	texture   *glhf.Texture
	camera    *util.OrbitCamera

	timer  *util.Timer
	frames uint64
}

func NewRenderLoop(settings Settings, backend glhf.Backend, surface Surface, clock Clock, events *EventQueue) *RenderLoop {
	return &RenderLoop{
		settings: settings,
		backend:  backend,
		surface:  surface,
		clock:    clock,
		events:   events,
		animate:  settings.Animate,
		timer:    util.NewTimer(),
	}
}

func (l *RenderLoop) State() State {
	return l.state
}

func (l *RenderLoop) Animating() bool {
	return l.animate
}

// OrbitAngle returns the current camera orbit angle in radians, in [0, 2π).
func (l *RenderLoop) OrbitAngle() float64 {
	if l.camera == nil {
		return util.WrapAngle(l.settings.OrbitAngle)
	}
	return l.camera.Angle()
}

// Camera is nil until the loop is running.
func (l *RenderLoop) Camera() *util.OrbitCamera {
	return l.camera
}

// Frames returns how many frames have been presented.
func (l *RenderLoop) Frames() uint64 {
	return l.frames
}

// HandleEvent applies one window event. A CloseEvent returns util.ErrStopped.
func (l *RenderLoop) HandleEvent(e Event) error {
	switch ev := e.(type) {
	case ResizeEvent:
		l.pendingResize = true
		l.resizeW, l.resizeH = ev.Width, ev.Height
	case KeyEvent:
		if ev.Key == KeyA {
			l.animate = !l.animate
			util.LogInputDebug(fmt.Sprintf("animation %v", l.animate))
		}
	case CloseEvent:
		return util.ErrStopped
	}
	return nil
}

// Tick processes pending events and renders one frame. A frame is skipped silently while the
// surface is hidden or its context cannot be made current. Errors are fatal.
func (l *RenderLoop) Tick() error {
	for _, e := range l.events.Drain() {
		if err := l.HandleEvent(e); err != nil {
			return err
		}
	}

	if !l.surface.Visible() || !l.surface.MakeCurrent() {
		return nil
	}

	if l.state == Uninitialized {
		if err := l.initialize(); err != nil {
			l.Release()
			return err
		}
		l.state = Running
	}

	stop := l.timer.Start("frame")

	if l.pendingResize {
		l.backend.Viewport(0, 0, int32(l.resizeW), int32(l.resizeH))
		l.camera.Resize(l.resizeW, l.resizeH)
		l.pendingResize = false
	}

	now := l.clock.ElapsedSeconds()
	deltaT := 0.0
	if l.hasPrev {
		deltaT = now - l.prevTime
	}
	l.prevTime, l.hasPrev = now, true

	if l.animate {
		l.camera.Advance(l.settings.OrbitSpeed * deltaT)
	}
	if l.settings.FollowOrbit {
		l.camera.RefreshView()
	}

	mvp := l.camera.GetViewProjection()
	l.draw(mvp, float32(now))
	l.surface.SwapBuffers()

	stop()
	l.frames++
	if l.frames%60 == 0 {
		util.LogRenderDebug(l.timer.String())
		util.LogRenderDebug("MVP\n" + util.FormatMatrix(mvp))
		util.CheckForGLError(l.backend, "render")
		l.timer.Reset()
	}
	return nil
}

func (l *RenderLoop) draw(mvp mgl32.Mat4, seconds float32) {
	l.backend.Clear()

	l.particles.Begin()
	l.shader.Begin()

	l.shader.SetUniformAttr(uniformMVP, mvp)
	l.shader.SetUniformAttr(uniformParticleTex, l.settings.TextureUnit)
	l.shader.SetUniformAttr(uniformTime, seconds)
	l.shader.SetUniformAttr(uniformLifetime, l.settings.ParticleLifetime)
	l.shader.SetUniformAttr(uniformGravity, mgl32.Vec3(l.settings.Gravity))

	l.particles.Draw()

	l.shader.End()
	l.particles.End()
}

func (l *RenderLoop) initialize() error {
	s := l.settings

	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	states := particles.GenerateStaggered(s.ParticleCount, s.StartRate, rand.New(rand.NewPCG(seed, seed)))
	pa, err := particles.Build(l.backend, states)
	if err != nil {
		return err
	}
	l.particles = pa
	util.LogSystemInfo(fmt.Sprintf("uploaded %d particles (seed %d)", pa.Len(), seed))

	vs, fs := ParticleShaderSources()
	shader, err := glhf.NewShader(l.backend, particles.VertexFormat, ParticleUniforms, vs, fs)
	if err != nil {
		util.LogShaderError(err.Error())
		return err
	}
	l.shader = shader
	for _, name := range shader.InactiveUniforms() {
		util.LogShaderWarning(fmt.Sprintf("uniform %s is not active in the particle program", name))
	}

	w, h := l.surface.Size()
	l.camera = util.NewOrbitCamera(s.OrbitRadius, s.OrbitHeight, s.OrbitAngle, w, h)
	l.camera.FovYDeg = s.FovY
	l.camera.NearClip = s.NearClip
	l.camera.FarClip = s.FarClip
	if !l.pendingResize {
		l.pendingResize = true
		l.resizeW, l.resizeH = w, h
	}
	l.camera.Resize(w, h)

	if err := l.loadTexture(); err != nil {
		return err
	}

	l.backend.SetFrontFaceCCW()
	l.backend.SetDepthTest(false)
	l.backend.SetBlending(true)
	l.backend.SetPointSize(s.PointSize)
	l.backend.ClearColor(mgl32.Vec4(s.ClearColor))
	util.CheckForGLError(l.backend, "initialize")
	return nil
}

func (l *RenderLoop) loadTexture() error {
	s := l.settings
	var texture *glhf.Texture
	if s.TexturePath != "" {
		loaded, err := util.LoadTexture(l.backend, s.TexturePath, s.FlipTexture, s.MaxTextureSize)
		switch {
		case err == nil:
			texture = loaded
			util.LogTextureDebug(fmt.Sprintf("loaded %s (%dx%d)", s.TexturePath, loaded.Width(), loaded.Height()))
		case s.StrictAssets:
			return errors.Wrap(err, "particle texture")
		default:
			util.LogTextureError(err.Error() + ", using a solid color")
		}
	}
	if texture == nil {
		texture = glhf.NewSolidColorTexture(l.backend, fallbackColor)
	}
	l.texture = texture
	l.texture.BindToUnit(uint32(s.TextureUnit))
	return nil
}

// Release deletes every GPU resource the loop created. The loop returns to Uninitialized.
func (l *RenderLoop) Release() {
	if l.texture != nil {
		l.texture.Delete()
		l.texture = nil
	}
	if l.shader != nil {
		l.shader.Delete()
		l.shader = nil
	}
	if l.particles != nil {
		l.particles.Delete()
		l.particles = nil
	}
	l.camera = nil
	l.state = Uninitialized
}
