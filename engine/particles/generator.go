// Package particles produces the initial state of a point-sprite particle fountain and
// uploads it to the GPU.
package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sparks/engine/glhf"
	"github.com/memmaker/sparks/engine/util"
	"github.com/pkg/errors"
)

const (
	// ConeHalfAngle bounds the angle between an initial velocity and +Y.
	ConeHalfAngle = math.Pi / 6
	MinSpeed      = float32(1.25)
	MaxSpeed      = float32(1.5)
	// StartRate is the birth offset in seconds between two consecutive particles.
	StartRate = float32(0.00075)
)

// Source is the random number source the generator draws from. *rand.Rand of math/rand/v2
// satisfies it.
type Source interface {
	Float32() float32
}

// InitialState is what the shader needs to animate one particle: where it is heading and
// when it is born. It never changes after generation.
type InitialState struct {
	Velocity  mgl32.Vec3
	StartTime float32
}

// VertexFormat is the attribute layout the particle vertex shader expects. Location 0 is the
// initial velocity, location 1 the start time.
var VertexFormat = glhf.AttrFormat{
	{Name: "VertexInitVel", Type: glhf.Vec3},
	{Name: "StartTime", Type: glhf.Float},
}

// Generate creates n particles. Velocities point into a cone around +Y with a random speed,
// start times are staggered linearly by StartRate.
func Generate(n int, src Source) []InitialState {
	return GenerateStaggered(n, StartRate, src)
}

// GenerateStaggered is Generate with a custom birth offset between consecutive particles.
func GenerateStaggered(n int, rate float32, src Source) []InitialState {
	states := make([]InitialState, n)
	for i := range states {
		theta := float64(util.Mix(0, ConeHalfAngle, src.Float32()))
		phi := float64(util.Mix(0, 2*math.Pi, src.Float32()))

		dir := mgl32.Vec3{
			float32(math.Sin(theta) * math.Cos(phi)),
			float32(math.Cos(theta)),
			float32(math.Sin(theta) * math.Sin(phi)),
		}
		speed := util.Mix(MinSpeed, MaxSpeed, src.Float32())

		states[i] = InitialState{
			Velocity:  dir.Normalize().Mul(speed),
			StartTime: float32(i) * rate,
		}
	}
	return states
}

// Flatten splits states into the tightly packed columns uploaded to the GPU:
// three floats of velocity per particle and one float of start time.
func Flatten(states []InitialState) (velocities, startTimes []float32) {
	velocities = make([]float32, 0, len(states)*3)
	startTimes = make([]float32, 0, len(states))
	for _, s := range states {
		velocities = append(velocities, s.Velocity[0], s.Velocity[1], s.Velocity[2])
		startTimes = append(startTimes, s.StartTime)
	}
	return velocities, startTimes
}

// Build uploads states once and returns the vertex array the render loop draws from.
func Build(backend glhf.Backend, states []InitialState) (*glhf.ParticleArray, error) {
	velocities, startTimes := Flatten(states)
	pa, err := glhf.NewParticleArray(backend, VertexFormat, len(states), velocities, startTimes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upload %d particles", len(states))
	}
	return pa, nil
}
