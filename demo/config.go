package demo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/memmaker/sparks/engine/particles"
	"github.com/memmaker/sparks/engine/util"
	"github.com/pkg/errors"
)

// Settings are the knobs of one demo session. They are fixed once the render loop starts.
type Settings struct {
	ParticleCount    int        `json:"particle_count"`
	StartRate        float32    `json:"start_rate"`
	ParticleLifetime float32    `json:"particle_lifetime"`
	Gravity          [3]float32 `json:"gravity"`
	TextureUnit      int        `json:"texture_unit"`
	PointSize        float32    `json:"point_size"`
	ClearColor       [4]float32 `json:"clear_color"`

	OrbitRadius float32 `json:"orbit_radius"`
	OrbitHeight float32 `json:"orbit_height"`
	OrbitAngle  float64 `json:"orbit_angle"`
	OrbitSpeed  float64 `json:"orbit_speed"`
	FovY        float32 `json:"fov_y"`
	NearClip    float32 `json:"near_clip"`
	FarClip     float32 `json:"far_clip"`
	Animate     bool    `json:"animate"`
	FollowOrbit bool    `json:"follow_orbit"`

	RenderRate    int  `json:"render_rate"`
	ClockPeriodMs int  `json:"clock_period_ms"`
	Width         int  `json:"width"`
	Height        int  `json:"height"`
	Samples       int  `json:"samples"`
	VSync         bool `json:"vsync"`

	TexturePath    string `json:"texture_path"`
	FlipTexture    bool   `json:"flip_texture"`
	MaxTextureSize int    `json:"max_texture_size"`
	StrictAssets   bool   `json:"strict_assets"`
	// Seed of the particle generator; 0 picks a time based seed.
	Seed uint64 `json:"seed"`
}

func DefaultSettings() Settings {
	return Settings{
		ParticleCount:    8000,
		StartRate:        particles.StartRate,
		ParticleLifetime: 3.5,
		Gravity:          [3]float32{0, -0.2, 0},
		TextureUnit:      0,
		PointSize:        10,
		ClearColor:       [4]float32{0.1, 0.1, 0.1, 1},

		OrbitRadius: 3,
		OrbitHeight: 1.5,
		OrbitAngle:  math.Pi / 2,
		OrbitSpeed:  0.25,
		FovY:        60,
		NearClip:    0.3,
		FarClip:     100,
		Animate:     true,
		FollowOrbit: false,

		RenderRate:    60,
		ClockPeriodMs: 1,
		Width:         800,
		Height:        600,
		Samples:       4,

		TexturePath:    "assets/bluewater.png",
		MaxTextureSize: 4096,
	}
}

// RenderPeriod is the time between two render ticks.
func (s Settings) RenderPeriod() time.Duration {
	return time.Second / time.Duration(s.RenderRate)
}

// ClockPeriod is the time between two simulation clock ticks.
func (s Settings) ClockPeriod() time.Duration {
	return time.Duration(s.ClockPeriodMs) * time.Millisecond
}

// LoadSettings reads settings from a JSON file on top of the defaults. An empty path returns
// the defaults. Unknown keys are reported, values out of range fall back to their default.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrap(err, "failed to read settings")
	}
	if err := settings.decode(data); err != nil {
		return DefaultSettings(), errors.Wrapf(err, "invalid settings file %s", path)
	}
	settings.Validate()
	return settings, nil
}

func (s *Settings) decode(data []byte) error {
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		return err
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			util.LogSystemWarning(fmt.Sprintf("unrecognised setting key '%s' in settings file", key))
		}
	}

	return json.Unmarshal(data, s)
}

// Validate resets every value that cannot work to its default and reports it.
func (s *Settings) Validate() {
	d := DefaultSettings()
	reset := func(name string, bad interface{}, def interface{}) {
		util.LogSystemWarning(fmt.Sprintf("invalid %s value %v, using default %v", name, bad, def))
	}

	if s.ParticleCount <= 0 {
		reset("particle_count", s.ParticleCount, d.ParticleCount)
		s.ParticleCount = d.ParticleCount
	}
	if s.StartRate <= 0 {
		reset("start_rate", s.StartRate, d.StartRate)
		s.StartRate = d.StartRate
	}
	if s.ParticleLifetime <= 0 {
		reset("particle_lifetime", s.ParticleLifetime, d.ParticleLifetime)
		s.ParticleLifetime = d.ParticleLifetime
	}
	if s.TextureUnit < 0 || s.TextureUnit > 15 {
		reset("texture_unit", s.TextureUnit, d.TextureUnit)
		s.TextureUnit = d.TextureUnit
	}
	if s.PointSize <= 0 {
		reset("point_size", s.PointSize, d.PointSize)
		s.PointSize = d.PointSize
	}
	for _, c := range s.ClearColor {
		if c < 0 || c > 1 {
			reset("clear_color", s.ClearColor, d.ClearColor)
			s.ClearColor = d.ClearColor
			break
		}
	}
	if s.OrbitRadius <= 0 {
		reset("orbit_radius", s.OrbitRadius, d.OrbitRadius)
		s.OrbitRadius = d.OrbitRadius
	}
	if math.IsNaN(s.OrbitAngle) || math.IsInf(s.OrbitAngle, 0) {
		reset("orbit_angle", s.OrbitAngle, d.OrbitAngle)
		s.OrbitAngle = d.OrbitAngle
	}
	if s.OrbitSpeed < 0 || math.IsNaN(s.OrbitSpeed) || math.IsInf(s.OrbitSpeed, 0) {
		reset("orbit_speed", s.OrbitSpeed, d.OrbitSpeed)
		s.OrbitSpeed = d.OrbitSpeed
	}
	if s.FovY <= 0 || s.FovY >= 180 {
		reset("fov_y", s.FovY, d.FovY)
		s.FovY = d.FovY
	}
	if s.NearClip <= 0 || s.FarClip <= s.NearClip {
		reset("near_clip/far_clip", [2]float32{s.NearClip, s.FarClip}, [2]float32{d.NearClip, d.FarClip})
		s.NearClip, s.FarClip = d.NearClip, d.FarClip
	}
	if s.RenderRate <= 0 || s.RenderRate > 1000 {
		reset("render_rate", s.RenderRate, d.RenderRate)
		s.RenderRate = d.RenderRate
	}
	if s.ClockPeriodMs <= 0 {
		reset("clock_period_ms", s.ClockPeriodMs, d.ClockPeriodMs)
		s.ClockPeriodMs = d.ClockPeriodMs
	}
	if s.Width <= 0 || s.Height <= 0 {
		reset("window size", fmt.Sprintf("%dx%d", s.Width, s.Height), fmt.Sprintf("%dx%d", d.Width, d.Height))
		s.Width, s.Height = d.Width, d.Height
	}
	if s.Samples < 0 {
		reset("samples", s.Samples, d.Samples)
		s.Samples = d.Samples
	}
	if s.MaxTextureSize < 0 {
		reset("max_texture_size", s.MaxTextureSize, d.MaxTextureSize)
		s.MaxTextureSize = d.MaxTextureSize
	}
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
