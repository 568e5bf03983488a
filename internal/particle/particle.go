package particle

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

type Particle struct {
	Position r2.Vec
	Velocity r2.Vec
}

// Speed returns the magnitude of the particle's velocity.
func (p Particle) Speed() float64 {
	return r2.Norm(p.Velocity)
}

type SpeedRange struct {
	Min, Max float64
}

// Shape is the drawable shared by every particle. It carries no simulation
// state; the draw position is supplied per call.
type Shape struct {
	Radius float64
	Color  color.RGBA
}

const DefaultRadius = 5.0

func DefaultShape() Shape {
	return Shape{Radius: DefaultRadius, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}
