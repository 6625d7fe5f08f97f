package glhf

import (
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// GL43 is the Backend backed by the go-gl 4.3 core bindings.
type GL43 struct {
	major, minor int32
	extensions   map[string]bool
}

var _ Backend = (*GL43)(nil)

// Init loads the GL function pointers for the current context. It has to be called after a
// context was made current on the calling thread.
func Init() (*GL43, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL bindings")
	}
	b := &GL43{extensions: make(map[string]bool)}
	gl.GetIntegerv(gl.MAJOR_VERSION, &b.major)
	gl.GetIntegerv(gl.MINOR_VERSION, &b.minor)

	var count int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &count)
	for i := int32(0); i < count; i++ {
		b.extensions[gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i)))] = true
	}
	return b, nil
}

func (b *GL43) Supports(c Capability) bool {
	switch c {
	case AttribBinding:
		if b.major > 4 || (b.major == 4 && b.minor >= 3) {
			return true
		}
		return b.extensions["GL_ARB_vertex_attrib_binding"]
	}
	return false
}

func (b *GL43) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *GL43) CurrentBinding(target BindTarget) uint32 {
	var obj int32
	switch target {
	case BindVertexArray:
		gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &obj)
	case BindProgram:
		gl.GetIntegerv(gl.CURRENT_PROGRAM, &obj)
	case BindTexture2D:
		gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &obj)
	}
	return uint32(obj)
}

func (b *GL43) Bind(target BindTarget, obj uint32) {
	switch target {
	case BindVertexArray:
		gl.BindVertexArray(obj)
	case BindProgram:
		gl.UseProgram(obj)
	case BindTexture2D:
		gl.BindTexture(gl.TEXTURE_2D, obj)
	}
}

func (b *GL43) NewStaticBuffer(data []float32) uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	size := len(data) * SizeOfFloat32
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STATIC_DRAW)
	if size > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return buffer
}

func (b *GL43) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (b *GL43) NewVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (b *GL43) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (b *GL43) BindVertexBuffer(binding, buffer uint32, stride int32) {
	gl.BindVertexBuffer(binding, buffer, 0, stride)
}

func (b *GL43) VertexAttribFormat(attrib uint32, components int32) {
	gl.VertexAttribFormat(attrib, components, gl.FLOAT, false, 0)
}

func (b *GL43) VertexAttribBinding(attrib, binding uint32) {
	gl.VertexAttribBinding(attrib, binding)
}

func (b *GL43) EnableVertexAttrib(attrib uint32) {
	gl.EnableVertexAttribArray(attrib)
}

func (b *GL43) DisableVertexAttrib(attrib uint32) {
	gl.DisableVertexAttribArray(attrib)
}

func (b *GL43) CompileShader(stage ShaderStage, source string) (uint32, error) {
	var shaderType uint32
	switch stage {
	case VertexStage:
		shaderType = gl.VERTEX_SHADER
	case FragmentStage:
		shaderType = gl.FRAGMENT_SHADER
	default:
		return 0, errors.Errorf("unsupported shader stage %d", stage)
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))
		gl.DeleteShader(shader)
		return 0, errors.Errorf("failed to compile %s shader: %s", stage, strings.TrimRight(logMsg, "\x00\n "))
	}
	return shader, nil
}

func (b *GL43) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		gl.DeleteProgram(program)
		return 0, errors.Errorf("failed to link program: %s", strings.TrimRight(logMsg, "\x00\n "))
	}
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, nil
}

func (b *GL43) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (b *GL43) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *GL43) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *GL43) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (b *GL43) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (b *GL43) Uniform2f(loc int32, v mgl32.Vec2) {
	gl.Uniform2f(loc, v[0], v[1])
}

func (b *GL43) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

func (b *GL43) Uniform4f(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (b *GL43) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (b *GL43) NewTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (b *GL43) TexImage2D(width, height int, bgra []uint8) {
	gl.TexStorage2D(gl.TEXTURE_2D, 1, gl.RGBA8, int32(width), int32(height))
	if len(bgra) == 0 {
		return
	}
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0,
		0,
		0,
		int32(width),
		int32(height),
		gl.BGRA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(bgra),
	)
}

func (b *GL43) SetTextureFilter(smooth bool) {
	if smooth {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

func (b *GL43) ActiveTextureUnit(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (b *GL43) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (b *GL43) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *GL43) ClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (b *GL43) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *GL43) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (b *GL43) SetBlending(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (b *GL43) SetFrontFaceCCW() {
	gl.FrontFace(gl.CCW)
}

func (b *GL43) SetPointSize(size float32) {
	gl.Disable(gl.PROGRAM_POINT_SIZE)
	gl.PointSize(size)
}

func (b *GL43) DrawPoints(first, count int32) {
	gl.DrawArrays(gl.POINTS, first, count)
}

// CheckError drains the GL error queue and reports the first error, if any.
func (b *GL43) CheckError() error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return errors.Errorf("GL error 0x%x", first)
	}
	return nil
}
