package glhf

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ErrMissingCapability is returned when the current context lacks a GPU feature the caller
// cannot work without.
var ErrMissingCapability = errors.New("required GPU capability is missing")

// Capability is an optional GPU feature that has to be queried before use.
type Capability int

const (
	// AttribBinding is the separate vertex attribute format / buffer binding API
	// (core in GL 4.3, ARB_vertex_attrib_binding before that).
	AttribBinding Capability = iota
)

func (c Capability) String() string {
	switch c {
	case AttribBinding:
		return "vertex attribute binding (GL 4.3 / ARB_vertex_attrib_binding)"
	}
	return "unknown capability"
}

// ShaderStage selects the pipeline stage a shader object is compiled for.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// BindTarget names a binding point whose current object can be queried and replaced.
type BindTarget int

const (
	BindVertexArray BindTarget = iota
	BindProgram
	BindTexture2D
)

// Backend is the slice of the GL API used by this package. All methods must be called on the
// thread that owns the context.
type Backend interface {
	Supports(c Capability) bool
	Version() string

	CurrentBinding(target BindTarget) uint32
	Bind(target BindTarget, obj uint32)

	// NewStaticBuffer allocates an array buffer sized for data and uploads it once.
	NewStaticBuffer(data []float32) uint32
	DeleteBuffer(buffer uint32)
	NewVertexArray() uint32
	DeleteVertexArray(vao uint32)
	// BindVertexBuffer attaches buffer to a binding index of the bound vertex array.
	BindVertexBuffer(binding, buffer uint32, stride int32)
	// VertexAttribFormat describes attrib as components tightly packed floats.
	VertexAttribFormat(attrib uint32, components int32)
	VertexAttribBinding(attrib, binding uint32)
	EnableVertexAttrib(attrib uint32)
	DisableVertexAttrib(attrib uint32)

	CompileShader(stage ShaderStage, source string) (uint32, error)
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, v mgl32.Vec2)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform4f(loc int32, v mgl32.Vec4)
	UniformMatrix4(loc int32, m mgl32.Mat4)

	NewTexture() uint32
	// TexImage2D allocates immutable storage for the bound texture and uploads BGRA pixels.
	TexImage2D(width, height int, bgra []uint8)
	SetTextureFilter(smooth bool)
	ActiveTextureUnit(unit uint32)
	DeleteTexture(tex uint32)

	Viewport(x, y, width, height int32)
	ClearColor(c mgl32.Vec4)
	Clear()
	SetDepthTest(enabled bool)
	// SetBlending toggles standard src-alpha / one-minus-src-alpha blending.
	SetBlending(enabled bool)
	SetFrontFaceCCW()
	SetPointSize(size float32)
	DrawPoints(first, count int32)
}
