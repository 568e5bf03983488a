package config

import "sort"

var Presets = map[string]func(*Config){
	// classic is the default population: 1000 points leaving the centre of
	// an 800x600 window at 25-50 px/s.
	"classic": func(c *Config) {},
	"burst": func(c *Config) {
		c.Particles.Count = 5000
		c.Particles.SpeedMin = 120
		c.Particles.SpeedMax = 240
		c.Shape.Radius = 2
		c.Shape.Color = "#ffb347"
	},
	"drift": func(c *Config) {
		c.Particles.Count = 200
		c.Particles.SpeedMin = 2
		c.Particles.SpeedMax = 8
		c.Shape.Radius = 8
		c.Shape.Color = "#7fdbff80"
		c.Record.Frames = 3600
		c.Record.Stride = 60
	},
	"swarm": func(c *Config) {
		c.Window.Width = 1280
		c.Window.Height = 720
		c.Particles.Count = 20000
		c.Particles.OriginX = 640
		c.Particles.OriginY = 360
		c.Particles.SpeedMin = 10
		c.Particles.SpeedMax = 90
		c.Shape.Radius = 1
		c.Window.FPSOverlay = true
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
