package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names Resolve reads from a FlagSet.
const (
	FlagCount      = "count"
	FlagSeed       = "seed"
	FlagVSync      = "vsync"
	FlagFPSOverlay = "fps-overlay"
	FlagFrames     = "frames"
	FlagDt         = "dt"
	FlagStride     = "stride"
)

// Resolve layers the named preset, then the yaml file at path, then every
// flag in flags that was set on the command line. Flag defaults never
// override the preset or the file. Empty preset, empty path and nil flags
// skip their layer. The result is validated.
func Resolve(preset, path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		if cfg = GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, preset, ListPresets())
		}
	}
	if path != "" {
		if err := Overlay(path, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if flags != nil {
		if err := applyFlags(cfg, flags); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}

	set(FlagCount, func() (e error) { cfg.Particles.Count, e = flags.GetInt(FlagCount); return })
	set(FlagSeed, func() (e error) { cfg.Particles.Seed, e = flags.GetUint64(FlagSeed); return })
	set(FlagVSync, func() (e error) { cfg.Window.VSync, e = flags.GetBool(FlagVSync); return })
	set(FlagFPSOverlay, func() (e error) { cfg.Window.FPSOverlay, e = flags.GetBool(FlagFPSOverlay); return })
	set(FlagFrames, func() (e error) { cfg.Record.Frames, e = flags.GetInt(FlagFrames); return })
	set(FlagDt, func() (e error) { cfg.Record.Dt, e = flags.GetFloat64(FlagDt); return })
	set(FlagStride, func() (e error) { cfg.Record.Stride, e = flags.GetInt(FlagStride); return })

	return err
}
