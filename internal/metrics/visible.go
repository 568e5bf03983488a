package metrics

import (
	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

// Visible counts particles whose centre lies inside the window. Nothing keeps
// particles on screen, so for any non-zero speed this eventually drops to 0.
type Visible struct {
	name  string
	box   r2.Box
	count int
}

func NewVisible(width, height float64) *Visible {
	return &Visible{
		name: "visible",
		box:  r2.Box{Min: r2.Vec{}, Max: r2.Vec{X: width, Y: height}},
	}
}

func (v *Visible) Name() string { return v.name }

func (v *Visible) Observe(st *particle.Store) {
	v.count = 0
	st.ForEach(func(p particle.Particle) {
		if inside(v.box, p.Position) {
			v.count++
		}
	})
}

func (v *Visible) Value() float64 { return float64(v.count) }
func (v *Visible) Reset()         { v.count = 0 }

func inside(b r2.Box, p r2.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
