package viz

import (
	"math"

	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is a frame.Window backed by a braille canvas. World coordinates
// span the configured window size and are scaled onto the canvas dots.
// Present snapshots the canvas so View never shows a half-drawn frame.
type Surface struct {
	canvas       *Canvas
	world        r2.Vec
	presented    string
	drawn        int
	closePending bool
}

func NewSurface(cols, rows int, worldWidth, worldHeight float64) *Surface {
	s := &Surface{
		canvas: NewCanvas(cols, rows),
		world:  r2.Vec{X: worldWidth, Y: worldHeight},
	}
	s.presented = s.canvas.String()
	return s
}

// Resize replaces the canvas. The next presented frame uses the new size.
func (s *Surface) Resize(cols, rows int) {
	s.canvas = NewCanvas(cols, rows)
}

// RequestClose makes the next PollClose report true.
func (s *Surface) RequestClose() { s.closePending = true }

func (s *Surface) PollClose() bool { return s.closePending }

func (s *Surface) Clear() {
	s.canvas.Clear()
	s.drawn = 0
}

func (s *Surface) Draw(shape particle.Shape, at r2.Vec) {
	x, y := s.project(at)
	r := int(math.Round(shape.Radius * float64(s.canvas.DotsWide()) / s.world.X))
	s.canvas.Disc(x, y, r)
	s.drawn++
}

func (s *Surface) Present() { s.presented = s.canvas.String() }

// Frame returns the last presented frame.
func (s *Surface) Frame() string { return s.presented }

// Drawn is the number of Draw calls since the last Clear.
func (s *Surface) Drawn() int { return s.drawn }

func (s *Surface) Canvas() *Canvas { return s.canvas }

func (s *Surface) project(p r2.Vec) (int, int) {
	x := math.Floor(p.X / s.world.X * float64(s.canvas.DotsWide()))
	y := math.Floor(p.Y / s.world.Y * float64(s.canvas.DotsHigh()))
	return clampInt(x), clampInt(y)
}

// clampInt keeps far off-screen positions from overflowing int conversion;
// Canvas.Set drops them either way.
func clampInt(v float64) int {
	switch {
	case math.IsNaN(v), v < -1<<20:
		return -1
	case v > 1<<20:
		return 1 << 20
	}
	return int(v)
}
