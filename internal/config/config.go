package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultTitle    = "EntityX Test"
	DefaultCount    = 1000
	DefaultOriginX  = 400.0
	DefaultOriginY  = 300.0
	DefaultSpeedMin = 25.0
	DefaultSpeedMax = 50.0
	DefaultRadius   = particle.DefaultRadius
	DefaultColor    = "#ffffff"
	DefaultFrames   = 600
	DefaultDt       = 1.0 / 60
	DefaultStride   = 10
)

type Config struct {
	Preset    string          `yaml:"preset,omitempty"`
	Window    WindowConfig    `yaml:"window"`
	Particles ParticlesConfig `yaml:"particles"`
	Shape     ShapeConfig     `yaml:"shape"`
	Record    RecordConfig    `yaml:"record"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	VSync      bool   `yaml:"vsync"`
	FPSOverlay bool   `yaml:"fps_overlay"`
	Background string `yaml:"background"`
}

type ParticlesConfig struct {
	Count    int     `yaml:"count"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	// Seed 0 means draw a fresh random seed.
	Seed uint64 `yaml:"seed"`
}

type ShapeConfig struct {
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
}

type RecordConfig struct {
	Frames int     `yaml:"frames"`
	Dt     float64 `yaml:"dt"`
	Stride int     `yaml:"stride"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Title:      DefaultTitle,
			VSync:      true,
			Background: "#000000",
		},
		Particles: ParticlesConfig{
			Count:    DefaultCount,
			OriginX:  DefaultOriginX,
			OriginY:  DefaultOriginY,
			SpeedMin: DefaultSpeedMin,
			SpeedMax: DefaultSpeedMax,
		},
		Shape: ShapeConfig{
			Radius: DefaultRadius,
			Color:  DefaultColor,
		},
		Record: RecordConfig{
			Frames: DefaultFrames,
			Dt:     DefaultDt,
			Stride: DefaultStride,
		},
	}
}

// Load reads a yaml file on top of DefaultConfig, so omitted fields keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Overlay(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay reads a yaml file into cfg, replacing only the fields it sets.
func Overlay(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, c.Particles.Count)
	}
	if c.Particles.SpeedMin < 0 || c.Particles.SpeedMax < c.Particles.SpeedMin {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidSpeed, c.Particles.SpeedMin, c.Particles.SpeedMax)
	}
	if c.Shape.Radius <= 0 {
		return fmt.Errorf("%w: radius %g", ErrInvalidShape, c.Shape.Radius)
	}
	if _, err := ParseColor(c.Shape.Color); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidWindow, err)
	}
	if c.Record.Frames <= 0 || c.Record.Dt <= 0 || c.Record.Stride <= 0 {
		return fmt.Errorf("%w: frames=%d dt=%g stride=%d", ErrInvalidRecord, c.Record.Frames, c.Record.Dt, c.Record.Stride)
	}
	return nil
}

func (c *Config) Origin() r2.Vec {
	return r2.Vec{X: c.Particles.OriginX, Y: c.Particles.OriginY}
}

func (c *Config) SpeedRange() particle.SpeedRange {
	return particle.SpeedRange{Min: c.Particles.SpeedMin, Max: c.Particles.SpeedMax}
}

// Seed returns the configured seed, or a fresh entropy seed when none is set.
func (c *Config) Seed() uint64 {
	if c.Particles.Seed != 0 {
		return c.Particles.Seed
	}
	return particle.EntropySeed()
}

// ParticleShape returns the drawable for this config. The config must have been
// validated; an unparsable color falls back to white.
func (c *Config) ParticleShape() particle.Shape {
	shape := particle.DefaultShape()
	shape.Radius = c.Shape.Radius
	if col, err := ParseColor(c.Shape.Color); err == nil {
		shape.Color = col
	}
	return shape
}

func (c *Config) BackgroundColor() color.RGBA {
	col, err := ParseColor(c.Window.Background)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return col
}

// NewStore spawns the particle population described by the config.
func (c *Config) NewStore(seed uint64) *particle.Store {
	return particle.New(c.Particles.Count, c.Origin(), c.SpeedRange(), seed)
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
