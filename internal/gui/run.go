package gui

import (
	"fmt"

	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/frame"
)

// Run opens a window for cfg and drives it until the user closes it. It
// returns the number of frames rendered.
func Run(cfg *config.Config, seed uint64) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, fmt.Errorf("gui: %w", err)
	}

	win, err := Open(cfg)
	if err != nil {
		return 0, err
	}
	defer win.Close()

	driver := frame.NewDriver(cfg.NewStore(seed), cfg.ParticleShape(), win, frame.NewWallClock())
	return driver.Run(), nil
}
