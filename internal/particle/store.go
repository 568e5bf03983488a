package particle

import (
	"math"
	entropy "math/rand/v2"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

type Store struct {
	particles []Particle
	origin    r2.Vec
	speed     SpeedRange
	seed      uint64
}

// New creates count particles at origin. Each velocity has a magnitude drawn
// uniformly from speed and a direction drawn uniformly from [0, 2π). The same
// seed always produces the same population. A non-positive count yields an
// empty store.
func New(count int, origin r2.Vec, speed SpeedRange, seed uint64) *Store {
	if speed.Min > speed.Max {
		speed.Min, speed.Max = speed.Max, speed.Min
	}
	if count < 0 {
		count = 0
	}

	rng := rand.New(rand.NewSource(seed))
	particles := make([]Particle, count)
	for i := range particles {
		r := speed.Min + (speed.Max-speed.Min)*rng.Float64()
		theta := 2 * math.Pi * rng.Float64()
		particles[i] = Particle{
			Position: origin,
			Velocity: r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)},
		}
	}

	return &Store{
		particles: particles,
		origin:    origin,
		speed:     speed,
		seed:      seed,
	}
}

// EntropySeed draws a non-zero seed from the runtime's entropy-seeded
// generator.
func EntropySeed() uint64 {
	for {
		if s := entropy.Uint64(); s != 0 {
			return s
		}
	}
}

// Advance moves every particle by velocity*dt. Negative dt moves particles
// backward.
func (s *Store) Advance(dt float64) {
	for i := range s.particles {
		p := &s.particles[i]
		p.Position.X += p.Velocity.X * dt
		p.Position.Y += p.Velocity.Y * dt
	}
}

// ForEach visits particles in creation order. fn receives a copy.
func (s *Store) ForEach(fn func(Particle)) {
	for _, p := range s.particles {
		fn(p)
	}
}

func (s *Store) Len() int          { return len(s.particles) }
func (s *Store) At(i int) Particle { return s.particles[i] }
func (s *Store) Origin() r2.Vec    { return s.origin }
func (s *Store) Speed() SpeedRange { return s.speed }
func (s *Store) Seed() uint64      { return s.seed }

func (s *Store) Snapshot() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Positions appends the current positions to dst and returns it.
func (s *Store) Positions(dst []r2.Vec) []r2.Vec {
	for _, p := range s.particles {
		dst = append(dst, p.Position)
	}
	return dst
}
