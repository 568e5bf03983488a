// Package particle holds the particle store: a fixed population of points,
// each with a position and a constant velocity, spawned from a common origin.
//
//   - [Particle]: one point, position plus fixed velocity
//   - [Store]: flat, creation-ordered collection advanced once per frame
//   - [Shape]: immutable drawable shared by every particle
//
// # Example
//
//	st := particle.New(1000, r2.Vec{X: 400, Y: 300}, particle.SpeedRange{Min: 25, Max: 50}, particle.EntropySeed())
//	st.Advance(dt)
//	st.ForEach(func(p particle.Particle) { window.Draw(shape, p.Position) })
//
// Positions are never clamped or wrapped. Particles that leave the visible
// area keep drifting forever.
package particle
