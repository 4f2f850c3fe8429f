package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/uvpaint/pkg/math3d"
)

// Stabilizer trails the pointer with a spring per axis, smoothing out the
// jitter of cell-sized mouse steps.
type Stabilizer struct {
	spring harmonica.Spring
	pos    math3d.Vec2
	vel    math3d.Vec2
}

// NewStabilizer creates a stabilizer stepped once per frame. Damping 1.0 is
// critically damped (no overshoot).
func NewStabilizer(fps int, frequency, damping float64) *Stabilizer {
	return &Stabilizer{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Reset places the stabilizer at p at rest.
func (s *Stabilizer) Reset(p math3d.Vec2) {
	s.pos = p
	s.vel = math3d.Vec2{}
}

// Update advances one frame toward target and returns the smoothed position.
func (s *Stabilizer) Update(target math3d.Vec2) math3d.Vec2 {
	s.pos.X, s.vel.X = s.spring.Update(s.pos.X, s.vel.X, target.X)
	s.pos.Y, s.vel.Y = s.spring.Update(s.pos.Y, s.vel.Y, target.Y)
	return s.pos
}

// Position returns the current smoothed position.
func (s *Stabilizer) Position() math3d.Vec2 {
	return s.pos
}
