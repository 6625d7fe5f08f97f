// Package glhftest provides a glhf.Backend that records calls instead of talking to a GPU.
package glhftest

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sparks/engine/glhf"
	"github.com/pkg/errors"
)

// VertexBufferBinding is one buffer binding index of a vertex array.
type VertexBufferBinding struct {
	Buffer uint32
	Stride int32
}

// VertexArray is the recorded state of a vertex array object.
type VertexArray struct {
	Bindings      map[uint32]VertexBufferBinding
	Components    map[uint32]int32
	AttribBinding map[uint32]uint32
}

// TextureState is the recorded storage of a texture object.
type TextureState struct {
	Width, Height int
	Pixels        []uint8
	Smooth        bool
}

// Draw is one recorded draw call together with the state it was issued with.
type Draw struct {
	First, Count int32
	VertexArray  uint32
	Program      uint32
	Texture      uint32
	TextureUnit  uint32
	Enabled      []uint32
	Uniforms     map[string]interface{}
}

// Viewport is one recorded viewport change.
type Viewport struct {
	X, Y, Width, Height int32
}

// Recorder implements glhf.Backend in memory.
type Recorder struct {
	Capabilities map[glhf.Capability]bool
	// CompileErrors makes CompileShader fail for a stage.
	CompileErrors map[glhf.ShaderStage]error
	// LinkError makes LinkProgram fail.
	LinkError error
	// InactiveUniforms are reported with location -1, as if the linker dropped them.
	InactiveUniforms map[string]bool

	Calls        []string
	Buffers      map[uint32][]float32
	VertexArrays map[uint32]*VertexArray
	Programs     map[uint32][]uint32
	Shaders      map[uint32]glhf.ShaderStage
	Textures     map[uint32]*TextureState
	Bound        map[glhf.BindTarget]uint32
	Enabled      map[uint32]bool
	Uniforms     map[string]interface{}
	Draws        []Draw
	Viewports    []Viewport

	ActiveUnit   uint32
	ClearValue   mgl32.Vec4
	Clears       int
	DepthTest    bool
	Blending     bool
	FrontFaceCCW bool
	PointSize    float32

	nextID      uint32
	locations   map[uint32]map[string]int32
	locNames    map[uint32]map[int32]string
	unitTexture map[uint32]uint32
}

var _ glhf.Backend = (*Recorder)(nil)

// NewRecorder returns a Recorder that supports every capability.
func NewRecorder() *Recorder {
	return &Recorder{
		Capabilities:     map[glhf.Capability]bool{glhf.AttribBinding: true},
		CompileErrors:    make(map[glhf.ShaderStage]error),
		InactiveUniforms: make(map[string]bool),
		Buffers:          make(map[uint32][]float32),
		VertexArrays:     make(map[uint32]*VertexArray),
		Programs:         make(map[uint32][]uint32),
		Shaders:          make(map[uint32]glhf.ShaderStage),
		Textures:         make(map[uint32]*TextureState),
		Bound:            make(map[glhf.BindTarget]uint32),
		Enabled:          make(map[uint32]bool),
		Uniforms:         make(map[string]interface{}),
		locations:        make(map[uint32]map[string]int32),
		locNames:         make(map[uint32]map[int32]string),
		unitTexture:      make(map[uint32]uint32),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) record(name string) {
	r.Calls = append(r.Calls, name)
}

// CountCalls returns how often a method was called.
func (r *Recorder) CountCalls(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// LastDraw returns the most recent draw call.
func (r *Recorder) LastDraw() (Draw, bool) {
	if len(r.Draws) == 0 {
		return Draw{}, false
	}
	return r.Draws[len(r.Draws)-1], true
}

func (r *Recorder) Supports(c glhf.Capability) bool {
	return r.Capabilities[c]
}

func (r *Recorder) Version() string {
	return "4.3.0 recorder"
}

func (r *Recorder) CurrentBinding(target glhf.BindTarget) uint32 {
	return r.Bound[target]
}

func (r *Recorder) Bind(target glhf.BindTarget, obj uint32) {
	r.record("Bind")
	r.Bound[target] = obj
	if target == glhf.BindTexture2D {
		r.unitTexture[r.ActiveUnit] = obj
	}
}

func (r *Recorder) NewStaticBuffer(data []float32) uint32 {
	r.record("NewStaticBuffer")
	buffer := r.id()
	r.Buffers[buffer] = append([]float32(nil), data...)
	return buffer
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.record("DeleteBuffer")
	delete(r.Buffers, buffer)
}

func (r *Recorder) NewVertexArray() uint32 {
	r.record("NewVertexArray")
	vao := r.id()
	r.VertexArrays[vao] = &VertexArray{
		Bindings:      make(map[uint32]VertexBufferBinding),
		Components:    make(map[uint32]int32),
		AttribBinding: make(map[uint32]uint32),
	}
	return vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record("DeleteVertexArray")
	delete(r.VertexArrays, vao)
}

func (r *Recorder) boundVertexArray() *VertexArray {
	return r.VertexArrays[r.Bound[glhf.BindVertexArray]]
}

func (r *Recorder) BindVertexBuffer(binding, buffer uint32, stride int32) {
	r.record("BindVertexBuffer")
	if va := r.boundVertexArray(); va != nil {
		va.Bindings[binding] = VertexBufferBinding{Buffer: buffer, Stride: stride}
	}
}

func (r *Recorder) VertexAttribFormat(attrib uint32, components int32) {
	r.record("VertexAttribFormat")
	if va := r.boundVertexArray(); va != nil {
		va.Components[attrib] = components
	}
}

func (r *Recorder) VertexAttribBinding(attrib, binding uint32) {
	r.record("VertexAttribBinding")
	if va := r.boundVertexArray(); va != nil {
		va.AttribBinding[attrib] = binding
	}
}

func (r *Recorder) EnableVertexAttrib(attrib uint32) {
	r.record("EnableVertexAttrib")
	r.Enabled[attrib] = true
}

func (r *Recorder) DisableVertexAttrib(attrib uint32) {
	r.record("DisableVertexAttrib")
	delete(r.Enabled, attrib)
}

func (r *Recorder) CompileShader(stage glhf.ShaderStage, source string) (uint32, error) {
	r.record("CompileShader")
	if err := r.CompileErrors[stage]; err != nil {
		return 0, errors.Wrapf(err, "failed to compile %s shader", stage)
	}
	shader := r.id()
	r.Shaders[shader] = stage
	return shader, nil
}

func (r *Recorder) LinkProgram(shaders ...uint32) (uint32, error) {
	r.record("LinkProgram")
	if r.LinkError != nil {
		return 0, errors.Wrap(r.LinkError, "failed to link program")
	}
	program := r.id()
	r.Programs[program] = append([]uint32(nil), shaders...)
	r.locations[program] = make(map[string]int32)
	r.locNames[program] = make(map[int32]string)
	return program, nil
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record("DeleteShader")
	delete(r.Shaders, shader)
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record("DeleteProgram")
	delete(r.Programs, program)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation")
	if r.InactiveUniforms[name] {
		return -1
	}
	locs := r.locations[program]
	if locs == nil {
		return -1
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	r.locNames[program][loc] = name
	return loc
}

func (r *Recorder) setUniform(loc int32, v interface{}) {
	r.record("Uniform")
	if loc < 0 {
		return
	}
	if name, ok := r.locNames[r.Bound[glhf.BindProgram]][loc]; ok {
		r.Uniforms[name] = v
	}
}

func (r *Recorder) Uniform1i(loc int32, v int32)           { r.setUniform(loc, v) }
func (r *Recorder) Uniform1f(loc int32, v float32)         { r.setUniform(loc, v) }
func (r *Recorder) Uniform2f(loc int32, v mgl32.Vec2)      { r.setUniform(loc, v) }
func (r *Recorder) Uniform3f(loc int32, v mgl32.Vec3)      { r.setUniform(loc, v) }
func (r *Recorder) Uniform4f(loc int32, v mgl32.Vec4)      { r.setUniform(loc, v) }
func (r *Recorder) UniformMatrix4(loc int32, m mgl32.Mat4) { r.setUniform(loc, m) }

func (r *Recorder) NewTexture() uint32 {
	r.record("NewTexture")
	tex := r.id()
	r.Textures[tex] = &TextureState{}
	return tex
}

func (r *Recorder) TexImage2D(width, height int, bgra []uint8) {
	r.record("TexImage2D")
	if t := r.Textures[r.Bound[glhf.BindTexture2D]]; t != nil {
		t.Width, t.Height = width, height
		t.Pixels = append([]uint8(nil), bgra...)
	}
}

func (r *Recorder) SetTextureFilter(smooth bool) {
	r.record("SetTextureFilter")
	if t := r.Textures[r.Bound[glhf.BindTexture2D]]; t != nil {
		t.Smooth = smooth
	}
}

func (r *Recorder) ActiveTextureUnit(unit uint32) {
	r.record("ActiveTextureUnit")
	r.ActiveUnit = unit
	r.Bound[glhf.BindTexture2D] = r.unitTexture[unit]
}

func (r *Recorder) DeleteTexture(tex uint32) {
	r.record("DeleteTexture")
	delete(r.Textures, tex)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport")
	r.Viewports = append(r.Viewports, Viewport{X: x, Y: y, Width: width, Height: height})
}

func (r *Recorder) ClearColor(c mgl32.Vec4) {
	r.record("ClearColor")
	r.ClearValue = c
}

func (r *Recorder) Clear() {
	r.record("Clear")
	r.Clears++
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.record("SetDepthTest")
	r.DepthTest = enabled
}

func (r *Recorder) SetBlending(enabled bool) {
	r.record("SetBlending")
	r.Blending = enabled
}

func (r *Recorder) SetFrontFaceCCW() {
	r.record("SetFrontFaceCCW")
	r.FrontFaceCCW = true
}

func (r *Recorder) SetPointSize(size float32) {
	r.record("SetPointSize")
	r.PointSize = size
}

func (r *Recorder) DrawPoints(first, count int32) {
	r.record("DrawPoints")
	var enabled []uint32
	for attrib := range r.Enabled {
		enabled = append(enabled, attrib)
	}
	uniforms := make(map[string]interface{}, len(r.Uniforms))
	for k, v := range r.Uniforms {
		uniforms[k] = v
	}
	r.Draws = append(r.Draws, Draw{
		First:       first,
		Count:       count,
		VertexArray: r.Bound[glhf.BindVertexArray],
		Program:     r.Bound[glhf.BindProgram],
		Texture:     r.unitTexture[r.ActiveUnit],
		TextureUnit: r.ActiveUnit,
		Enabled:     enabled,
		Uniforms:    uniforms,
	})
}
