package glhf

import (
	"github.com/pkg/errors"
)

// ParticleArray holds per-particle attributes in GPU memory, one tightly packed buffer per
// attribute. Attribute i of the format is fed from buffer binding i, so the vertex shader
// declares them as `layout (location = i)`.
//
// The data is uploaded once on creation and never touched by the host again; everything that
// changes over time has to be computed in the shader.
type ParticleArray struct {
	backend Backend
	vao     binder
	format  AttrFormat
	buffers []uint32
	count   int
}

// NewParticleArray allocates and fills one buffer per attribute of format. columns[i] must
// hold count values of format[i], flattened.
//
// It requires the attribute binding API; without it ErrMissingCapability is returned and
// nothing is allocated.
func NewParticleArray(backend Backend, format AttrFormat, count int, columns ...[]float32) (*ParticleArray, error) {
	if !backend.Supports(AttribBinding) {
		return nil, errors.Wrapf(ErrMissingCapability, "particle array needs %s (context is %s)", AttribBinding, backend.Version())
	}
	if len(columns) != len(format) {
		return nil, errors.Errorf("particle array: %d attributes declared but %d columns given", len(format), len(columns))
	}
	for i, attr := range format {
		switch attr.Type {
		case Float, Vec2, Vec3, Vec4:
		default:
			return nil, errors.Errorf("particle array: attribute %q has unsupported type %s", attr.Name, attr.Type)
		}
		if want := count * attr.Type.Components(); len(columns[i]) != want {
			return nil, errors.Errorf("particle array: attribute %q has %d values, want %d", attr.Name, len(columns[i]), want)
		}
	}

	pa := &ParticleArray{
		backend: backend,
		vao: binder{
			backend: backend,
			target:  BindVertexArray,
		},
		format:  format,
		buffers: make([]uint32, len(format)),
		count:   count,
	}

	for i := range format {
		pa.buffers[i] = backend.NewStaticBuffer(columns[i])
	}

	pa.vao.obj = backend.NewVertexArray()
	pa.vao.bind()
	for i, attr := range format {
		index := uint32(i)
		backend.BindVertexBuffer(index, pa.buffers[i], int32(attr.Type.Size()))
		backend.VertexAttribFormat(index, int32(attr.Type.Components()))
		backend.VertexAttribBinding(index, index)
	}
	pa.vao.restore()

	return pa, nil
}

// Len returns the number of particles (vertices) in the array.
func (pa *ParticleArray) Len() int {
	return pa.count
}

// VertexFormat returns the attribute layout of the array.
func (pa *ParticleArray) VertexFormat() AttrFormat {
	return pa.format
}

// BufferSize returns the size in bytes of the buffer backing attribute i.
func (pa *ParticleArray) BufferSize(i int) int {
	return pa.count * pa.format[i].Type.Size()
}

// Begin binds the vertex array and enables all attribute slots.
func (pa *ParticleArray) Begin() {
	pa.vao.bind()
	for i := range pa.format {
		pa.backend.EnableVertexAttrib(uint32(i))
	}
}

// End disables the attribute slots and restores the previously bound vertex array.
func (pa *ParticleArray) End() {
	for i := range pa.format {
		pa.backend.DisableVertexAttrib(uint32(i))
	}
	pa.vao.restore()
}

// Draw issues a point draw for every particle. The array must be between Begin and End.
func (pa *ParticleArray) Draw() {
	pa.backend.DrawPoints(0, int32(pa.count))
}

// Delete releases the vertex array and its buffers.
func (pa *ParticleArray) Delete() {
	if pa.vao.obj != 0 {
		pa.backend.DeleteVertexArray(pa.vao.obj)
		pa.vao.obj = 0
	}
	for i, buffer := range pa.buffers {
		if buffer != 0 {
			pa.backend.DeleteBuffer(buffer)
			pa.buffers[i] = 0
		}
	}
}
