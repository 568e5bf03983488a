package gui

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/particles/internal/config"
	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrWindowUnavailable = errors.New("gui: could not open window")

// Window is a raylib window satisfying frame.Window. Clear opens the
// raylib drawing block and Present closes it, which also swaps buffers and
// polls input for the next PollClose.
type Window struct {
	background color.RGBA
	fpsOverlay bool
}

// Open creates the OS window. Vsync has to be requested before the window
// exists, so it is read from cfg here rather than toggled later.
func Open(cfg *config.Config) (*Window, error) {
	if cfg.Window.VSync {
		rl.SetConfigFlags(rl.FlagVsyncHint)
	}
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		return nil, ErrWindowUnavailable
	}
	// Only the window's close button ends the run.
	rl.SetExitKey(rl.KeyNull)
	return &Window{
		background: cfg.BackgroundColor(),
		fpsOverlay: cfg.Window.FPSOverlay,
	}, nil
}

// PollClose reports whether the window's close button was pressed.
func (w *Window) PollClose() bool { return rl.WindowShouldClose() }

func (w *Window) Clear() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(w.background))
}

func (w *Window) Draw(shape particle.Shape, at r2.Vec) {
	rl.DrawCircleV(toVector2(at), float32(shape.Radius), toColor(shape.Color))
}

func (w *Window) Present() {
	if w.fpsOverlay {
		rl.DrawFPS(10, 10)
	}
	rl.EndDrawing()
}

func (w *Window) Close() { rl.CloseWindow() }

func toVector2(v r2.Vec) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func toColor(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }
