package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera interface {
	GetViewMatrix() mgl32.Mat4
	GetProjectionMatrix() mgl32.Mat4
	GetPosition() mgl32.Vec3
}

const TwoPi = 2 * math.Pi

// WrapAngle maps any angle into [0, 2π).
func WrapAngle(angle float64) float64 {
	wrapped := math.Mod(angle, TwoPi)
	if wrapped < 0 {
		wrapped += TwoPi
	}
	if wrapped >= TwoPi {
		wrapped = 0
	}
	return wrapped
}

// OrbitCamera looks at a fixed target from a point circling it at a fixed radius and height.
//
// The view matrix is only rebuilt by RefreshView; advancing the angle alone does not move
// the camera. The projection matrix is rebuilt on every Resize.
type OrbitCamera struct {
	Radius   float32
	Height   float32
	Target   mgl32.Vec3
	FovYDeg  float32
	NearClip float32
	FarClip  float32

	angle      float64
	view       mgl32.Mat4
	projection mgl32.Mat4
	surfaceW   int
	surfaceH   int
}

func NewOrbitCamera(radius, orbitHeight float32, angle float64, width, height int) *OrbitCamera {
	c := &OrbitCamera{
		Radius:   radius,
		Height:   orbitHeight,
		Target:   mgl32.Vec3{0, orbitHeight, 0},
		FovYDeg:  60,
		NearClip: 0.3,
		FarClip:  100,
		angle:    WrapAngle(angle),
	}
	c.RefreshView()
	c.Resize(width, height)
	return c
}

// Advance moves the orbit angle by delta radians and keeps it in [0, 2π).
func (c *OrbitCamera) Advance(delta float64) {
	c.angle = WrapAngle(c.angle + delta)
}

func (c *OrbitCamera) Angle() float64 {
	return c.angle
}

func (c *OrbitCamera) GetPosition() mgl32.Vec3 {
	return mgl32.Vec3{
		c.Radius * float32(math.Cos(c.angle)),
		c.Height,
		c.Radius * float32(math.Sin(c.angle)),
	}
}

// RefreshView rebuilds the view matrix from the current orbit angle.
func (c *OrbitCamera) RefreshView() {
	c.view = mgl32.LookAtV(c.GetPosition(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Resize rebuilds the projection for a new surface size. Degenerate sizes (a minimized
// window) keep an aspect ratio of 1.
func (c *OrbitCamera) Resize(width, height int) {
	c.surfaceW, c.surfaceH = width, height
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FovYDeg), aspect, c.NearClip, c.FarClip)
}

// AspectCorrection returns the ratio between the vertical and horizontal scale of the
// projection, which equals width/height of the surface it was built for.
func (c *OrbitCamera) AspectCorrection() float32 {
	return c.projection.At(1, 1) / c.projection.At(0, 0)
}

// SurfaceSize returns the size passed to the last Resize.
func (c *OrbitCamera) SurfaceSize() (int, int) {
	return c.surfaceW, c.surfaceH
}

func (c *OrbitCamera) GetViewMatrix() mgl32.Mat4 {
	return c.view
}

func (c *OrbitCamera) GetProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// GetViewProjection returns projection × view; the model matrix is the identity.
func (c *OrbitCamera) GetViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}
