package demo

import (
	_ "embed"

	"github.com/memmaker/sparks/engine/glhf"
)

//go:embed shader/particle.vert
var particleVertexShader string

//go:embed shader/particle.frag
var particleFragmentShader string

// ParticleUniforms lists the uniforms pushed to the particle program every frame.
var ParticleUniforms = glhf.AttrFormat{
	{Name: "MVP", Type: glhf.Mat4},
	{Name: "ParticleTex", Type: glhf.Int},
	{Name: "Time", Type: glhf.Float},
	{Name: "ParticleLifetime", Type: glhf.Float},
	{Name: "Gravity", Type: glhf.Vec3},
}

// Uniform indices into ParticleUniforms.
const (
	uniformMVP = iota
	uniformParticleTex
	uniformTime
	uniformLifetime
	uniformGravity
)

// ParticleShaderSources returns the embedded vertex and fragment sources of the particle program.
func ParticleShaderSources() (vertex, fragment string) {
	return particleVertexShader, particleFragmentShader
}
