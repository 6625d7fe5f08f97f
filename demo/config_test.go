package demo

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/memmaker/sparks/engine/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	util.SetLogOutput(&buf)
	t.Cleanup(func() { util.SetLogOutput(os.Stderr) })
	return &buf
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 8000, s.ParticleCount)
	assert.Equal(t, float32(3.5), s.ParticleLifetime)
	assert.Equal(t, [3]float32{0, -0.2, 0}, s.Gravity)
	assert.Equal(t, math.Pi/2, s.OrbitAngle)
	assert.True(t, s.Animate)
	assert.False(t, s.FollowOrbit)
	assert.Equal(t, time.Millisecond, s.ClockPeriod())
	assert.Equal(t, time.Second/60, s.RenderPeriod())
}

func TestLoadSettings_EmptyPathGivesDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_OverridesDefaults(t *testing.T) {
	path := writeSettings(t, `{"particle_count": 500, "follow_orbit": true, "gravity": [0, -1, 0], "seed": 99}`)
	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 500, s.ParticleCount)
	assert.True(t, s.FollowOrbit)
	assert.Equal(t, [3]float32{0, -1, 0}, s.Gravity)
	assert.Equal(t, uint64(99), s.Seed)
	assert.Equal(t, float32(3.5), s.ParticleLifetime, "keys not in the file keep their default")
}

func TestLoadSettings_WarnsAboutUnknownKeys(t *testing.T) {
	logs := captureLog(t)
	path := writeSettings(t, `{"particle_cnt": 10}`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, s.ParticleCount)
	assert.Contains(t, logs.String(), "unrecognised setting key 'particle_cnt'")
}

func TestLoadSettings_ResetsInvalidValues(t *testing.T) {
	logs := captureLog(t)
	path := writeSettings(t, `{"particle_count": -3, "near_clip": 5, "far_clip": 1, "clear_color": [2, 0, 0, 1], "render_rate": 0}`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	d := DefaultSettings()
	assert.Equal(t, d.ParticleCount, s.ParticleCount)
	assert.Equal(t, d.NearClip, s.NearClip)
	assert.Equal(t, d.FarClip, s.FarClip)
	assert.Equal(t, d.ClearColor, s.ClearColor)
	assert.Equal(t, d.RenderRate, s.RenderRate)
	assert.Contains(t, logs.String(), "invalid particle_count value -3")
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	s, err := LoadSettings(writeSettings(t, `{"particle_count": `))
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), s)
}
