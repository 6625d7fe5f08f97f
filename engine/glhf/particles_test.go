package glhf_test

import (
	"testing"

	"github.com/memmaker/sparks/engine/glhf"
	"github.com/memmaker/sparks/engine/glhf/glhftest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var particleFormat = glhf.AttrFormat{
	{Name: "VertexInitVel", Type: glhf.Vec3},
	{Name: "StartTime", Type: glhf.Float},
}

func TestNewParticleArray_Layout(t *testing.T) {
	rec := glhftest.NewRecorder()
	velocities := []float32{0, 1, 0, 0.5, 1, 0}
	startTimes := []float32{0, 0.00075}

	pa, err := glhf.NewParticleArray(rec, particleFormat, 2, velocities, startTimes)
	require.NoError(t, err)

	assert.Equal(t, 2, pa.Len())
	assert.Equal(t, 2*3*4, pa.BufferSize(0))
	assert.Equal(t, 2*4, pa.BufferSize(1))

	require.Len(t, rec.VertexArrays, 1)
	var va *glhftest.VertexArray
	for _, v := range rec.VertexArrays {
		va = v
	}

	velBinding := va.Bindings[0]
	assert.Equal(t, int32(12), velBinding.Stride)
	assert.Equal(t, velocities, rec.Buffers[velBinding.Buffer])
	assert.Equal(t, int32(3), va.Components[0])
	assert.Equal(t, uint32(0), va.AttribBinding[0])

	startBinding := va.Bindings[1]
	assert.Equal(t, int32(4), startBinding.Stride)
	assert.Equal(t, startTimes, rec.Buffers[startBinding.Buffer])
	assert.Equal(t, int32(1), va.Components[1])
	assert.Equal(t, uint32(1), va.AttribBinding[1])

	// the vertex array is not left bound after setup
	assert.Equal(t, uint32(0), rec.Bound[glhf.BindVertexArray])
}

func TestNewParticleArray_MissingCapability(t *testing.T) {
	rec := glhftest.NewRecorder()
	rec.Capabilities[glhf.AttribBinding] = false

	pa, err := glhf.NewParticleArray(rec, particleFormat, 1, []float32{0, 1, 0}, []float32{0})
	require.Error(t, err)
	assert.Nil(t, pa)
	assert.True(t, errors.Is(err, glhf.ErrMissingCapability))
	assert.Empty(t, rec.Buffers)
}

func TestNewParticleArray_RejectsMismatchedColumns(t *testing.T) {
	rec := glhftest.NewRecorder()

	_, err := glhf.NewParticleArray(rec, particleFormat, 2, []float32{0, 1, 0}, []float32{0, 1})
	assert.Error(t, err)

	_, err = glhf.NewParticleArray(rec, particleFormat, 1, []float32{0, 1, 0})
	assert.Error(t, err)

	_, err = glhf.NewParticleArray(rec, glhf.AttrFormat{{Name: "m", Type: glhf.Mat4}}, 1, make([]float32, 16))
	assert.Error(t, err)
}

func TestParticleArray_DrawEnablesAndDisablesSlots(t *testing.T) {
	rec := glhftest.NewRecorder()
	pa, err := glhf.NewParticleArray(rec, particleFormat, 3, make([]float32, 9), make([]float32, 3))
	require.NoError(t, err)

	pa.Begin()
	pa.Draw()
	pa.End()

	draw, ok := rec.LastDraw()
	require.True(t, ok)
	assert.Equal(t, int32(0), draw.First)
	assert.Equal(t, int32(3), draw.Count)
	assert.NotZero(t, draw.VertexArray)
	assert.ElementsMatch(t, []uint32{0, 1}, draw.Enabled)

	assert.Empty(t, rec.Enabled)
	assert.Equal(t, uint32(0), rec.Bound[glhf.BindVertexArray])
}

func TestParticleArray_Delete(t *testing.T) {
	rec := glhftest.NewRecorder()
	pa, err := glhf.NewParticleArray(rec, particleFormat, 1, []float32{0, 1, 0}, []float32{0})
	require.NoError(t, err)

	pa.Delete()
	pa.Delete()

	assert.Empty(t, rec.Buffers)
	assert.Empty(t, rec.VertexArrays)
	assert.Equal(t, 2, rec.CountCalls("DeleteBuffer"))
}
