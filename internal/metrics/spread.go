package metrics

import (
	"math"

	"github.com/san-kum/particles/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

// Spread is the RMS distance of the population from its spawn origin.
type Spread struct {
	name  string
	value float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(st *particle.Store) {
	if st.Len() == 0 {
		s.value = 0
		return
	}
	origin := st.Origin()
	sum := 0.0
	st.ForEach(func(p particle.Particle) {
		d := r2.Sub(p.Position, origin)
		sum += d.X*d.X + d.Y*d.Y
	})
	s.value = math.Sqrt(sum / float64(st.Len()))
}

func (s *Spread) Value() float64 { return s.value }
func (s *Spread) Reset()         { s.value = 0 }

type MeanSpeed struct {
	name  string
	value float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(st *particle.Store) {
	if st.Len() == 0 {
		m.value = 0
		return
	}
	sum := 0.0
	st.ForEach(func(p particle.Particle) {
		sum += p.Speed()
	})
	m.value = sum / float64(st.Len())
}

func (m *MeanSpeed) Value() float64 { return m.value }
func (m *MeanSpeed) Reset()         { m.value = 0 }
