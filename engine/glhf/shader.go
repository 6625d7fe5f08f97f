package glhf

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Shader is an OpenGL shader program.
type Shader struct {
	backend    Backend
	program    binder
	vertexFmt  AttrFormat
	uniformFmt AttrFormat
	uniformLoc []int32
	uniformIdx map[string]int
}

// NewShader compiles the vertex and fragment sources, links them into a program and resolves
// the locations of all uniforms in uniformFmt.
//
// A compile or link failure is returned as an error carrying the driver's info log; no
// partially built program is left behind.
func NewShader(backend Backend, vertexFmt, uniformFmt AttrFormat, vertexShader, fragmentShader string) (*Shader, error) {
	shader := &Shader{
		backend: backend,
		program: binder{
			backend: backend,
			target:  BindProgram,
		},
		vertexFmt:  vertexFmt,
		uniformFmt: uniformFmt,
		uniformLoc: make([]int32, len(uniformFmt)),
		uniformIdx: make(map[string]int, len(uniformFmt)),
	}

	vs, err := backend.CompileShader(VertexStage, vertexShader)
	if err != nil {
		return nil, errors.Wrap(err, "error creating shader")
	}
	defer backend.DeleteShader(vs)

	fs, err := backend.CompileShader(FragmentStage, fragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "error creating shader")
	}
	defer backend.DeleteShader(fs)

	shader.program.obj, err = backend.LinkProgram(vs, fs)
	if err != nil {
		return nil, errors.Wrap(err, "error linking shader program")
	}

	for i, uniform := range uniformFmt {
		shader.uniformLoc[i] = backend.UniformLocation(shader.program.obj, uniform.Name)
		shader.uniformIdx[uniform.Name] = i
	}

	return shader, nil
}

// ID returns the OpenGL ID of this Shader.
func (s *Shader) ID() uint32 {
	return s.program.obj
}

// VertexFormat returns the vertex attribute format of this Shader.
func (s *Shader) VertexFormat() AttrFormat {
	return s.vertexFmt
}

// UniformFormat returns the uniform attribute format of this Shader.
func (s *Shader) UniformFormat() AttrFormat {
	return s.uniformFmt
}

// InactiveUniforms lists uniforms the linker optimized away (or that are misspelled).
// Setting them is a no-op on the GPU.
func (s *Shader) InactiveUniforms() []string {
	var names []string
	for i, loc := range s.uniformLoc {
		if loc < 0 {
			names = append(names, s.uniformFmt[i].Name)
		}
	}
	return names
}

// SetUniformAttr sets the value of a uniform attribute of this Shader. The attribute is
// specified by the index in the Shader's uniform format.
//
// If the uniform attribute does not exist in the Shader, this method returns false.
//
// Supplied value must correspond to the type of the attribute. Correct types are these
// (right-hand is the type of the value):
//
//	Attr{Type: Int}:   int32 or int
//	Attr{Type: Float}: float32
//	Attr{Type: Vec2}:  mgl32.Vec2
//	Attr{Type: Vec3}:  mgl32.Vec3
//	Attr{Type: Vec4}:  mgl32.Vec4
//	Attr{Type: Mat4}:  mgl32.Mat4
//
// No other types are supported.
//
// The Shader must be bound before calling this method.
func (s *Shader) SetUniformAttr(uniform int, value interface{}) bool {
	if uniform < 0 || uniform >= len(s.uniformLoc) {
		return false
	}
	loc := s.uniformLoc[uniform]

	switch s.uniformFmt[uniform].Type {
	case Int:
		switch v := value.(type) {
		case int32:
			s.backend.Uniform1i(loc, v)
		case int:
			s.backend.Uniform1i(loc, int32(v))
		default:
			return false
		}
	case Float:
		v, ok := value.(float32)
		if !ok {
			return false
		}
		s.backend.Uniform1f(loc, v)
	case Vec2:
		v, ok := value.(mgl32.Vec2)
		if !ok {
			return false
		}
		s.backend.Uniform2f(loc, v)
	case Vec3:
		v, ok := value.(mgl32.Vec3)
		if !ok {
			return false
		}
		s.backend.Uniform3f(loc, v)
	case Vec4:
		v, ok := value.(mgl32.Vec4)
		if !ok {
			return false
		}
		s.backend.Uniform4f(loc, v)
	case Mat4:
		v, ok := value.(mgl32.Mat4)
		if !ok {
			return false
		}
		s.backend.UniformMatrix4(loc, v)
	default:
		return false
	}
	return true
}

// SetUniform sets a uniform by name. It fails if the name is not part of the uniform format
// or the value does not match the declared type.
func (s *Shader) SetUniform(name string, value interface{}) error {
	i, ok := s.uniformIdx[name]
	if !ok {
		return errors.Errorf("uniform %q is not declared", name)
	}
	if !s.SetUniformAttr(i, value) {
		return errors.Errorf("uniform %q expects %s, got %T", name, s.uniformFmt[i].Type, value)
	}
	return nil
}

// Begin binds the Shader program. This is necessary before using the Shader.
func (s *Shader) Begin() {
	s.program.bind()
}

// End unbinds the Shader program and restores the previous one.
func (s *Shader) End() {
	s.program.restore()
}

// Delete releases the program object. The Shader must not be used afterwards.
func (s *Shader) Delete() {
	if s.program.obj == 0 {
		return
	}
	s.backend.DeleteProgram(s.program.obj)
	s.program.obj = 0
}
