package record

import (
	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

type Sample struct {
	Frame     int
	Time      float64
	Positions []r2.Vec
}

// Tape is a headless frame.Window. It asks to close once frames frames have
// been presented and keeps the drawn positions of every stride-th frame.
type Tape struct {
	frames int
	stride int
	dt     float64

	presented int
	pending   []r2.Vec
	samples   []Sample
}

func NewTape(frames, stride int, dt float64) *Tape {
	if stride <= 0 {
		stride = 1
	}
	return &Tape{
		frames:  frames,
		stride:  stride,
		dt:      dt,
		samples: make([]Sample, 0, frames/stride+1),
	}
}

func (t *Tape) PollClose() bool { return t.presented >= t.frames }

func (t *Tape) Clear() { t.pending = t.pending[:0] }

func (t *Tape) Draw(_ particle.Shape, at r2.Vec) {
	t.pending = append(t.pending, at)
}

func (t *Tape) Present() {
	t.presented++
	if t.presented%t.stride != 0 && t.presented != t.frames {
		return
	}
	positions := make([]r2.Vec, len(t.pending))
	copy(positions, t.pending)
	t.samples = append(t.samples, Sample{
		Frame:     t.presented,
		Time:      float64(t.presented) * t.dt,
		Positions: positions,
	})
}

func (t *Tape) Presented() int    { return t.presented }
func (t *Tape) Samples() []Sample { return t.samples }
