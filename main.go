package main

import (
	"flag"
	"os"

	"github.com/faiface/mainthread"
	"github.com/memmaker/sparks/demo"
	"github.com/memmaker/sparks/engine/util"
)

var (
	configPath   = flag.String("config", "", "path to a JSON settings file")
	particles    = flag.Int("particles", 8000, "number of particles")
	seed         = flag.Uint64("seed", 0, "particle generator seed, 0 for a time based seed")
	texturePath  = flag.String("texture", "assets/bluewater.png", "particle texture image")
	width        = flag.Int("width", 800, "window width")
	height       = flag.Int("height", 600, "window height")
	samples      = flag.Int("samples", 4, "multisample count")
	followOrbit  = flag.Bool("follow-orbit", false, "recompute the view every frame from the orbit angle")
	strictAssets = flag.Bool("strict-assets", false, "fail if the particle texture cannot be loaded")
	debug        = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if *debug {
		util.GLOBAL_LOG_LEVEL = util.LogLevelDebug
	}

	settings, err := loadSettings()
	if err != nil {
		util.LogSystemError(err.Error())
		os.Exit(1)
	}

	mainthread.Run(func() {
		if err := runDemo(settings); err != nil {
			util.LogSystemError(err.Error())
			os.Exit(1)
		}
	})
}

// loadSettings reads the settings file and applies the flags given on the command line.
func loadSettings() (demo.Settings, error) {
	settings, err := demo.LoadSettings(*configPath)
	if err != nil {
		return settings, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "particles":
			settings.ParticleCount = *particles
		case "seed":
			settings.Seed = *seed
		case "texture":
			settings.TexturePath = *texturePath
		case "width":
			settings.Width = *width
		case "height":
			settings.Height = *height
		case "samples":
			settings.Samples = *samples
		case "follow-orbit":
			settings.FollowOrbit = *followOrbit
		case "strict-assets":
			settings.StrictAssets = *strictAssets
		}
	})
	settings.Validate()
	return settings, nil
}
