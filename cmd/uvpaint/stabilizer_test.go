package main

import (
	"math"
	"testing"

	"github.com/taigrr/uvpaint/pkg/math3d"
)

func TestStabilizerConverges(t *testing.T) {
	s := NewStabilizer(60, 8, 1)
	s.Reset(math3d.V2(0, 0))

	target := math3d.V2(1, 0.5)
	first := s.Update(target)
	if first.X <= 0 || first.X >= 1 {
		t.Errorf("first step X = %v, want strictly between 0 and 1", first.X)
	}

	var p math3d.Vec2
	for range 240 {
		p = s.Update(target)
	}
	if math.Abs(p.X-1) > 1e-3 || math.Abs(p.Y-0.5) > 1e-3 {
		t.Errorf("after 4s at 60fps position = %v, want ~%v", p, target)
	}
	if p != s.Position() {
		t.Errorf("Position() = %v, want %v", s.Position(), p)
	}
}

func TestStabilizerCriticallyDampedNoOvershoot(t *testing.T) {
	s := NewStabilizer(60, 6, 1)
	s.Reset(math3d.V2(0, 0))

	for i := range 300 {
		p := s.Update(math3d.V2(1, 1))
		if p.X > 1+1e-9 || p.Y > 1+1e-9 {
			t.Fatalf("frame %d overshot: %v", i, p)
		}
	}
}

func TestStabilizerReset(t *testing.T) {
	s := NewStabilizer(60, 8, 1)
	s.Update(math3d.V2(1, 1))
	s.Reset(math3d.V2(0.25, 0.75))
	if got := s.Position(); got != math3d.V2(0.25, 0.75) {
		t.Errorf("Position after Reset = %v", got)
	}
	// At rest on the target it stays put.
	if got := s.Update(math3d.V2(0.25, 0.75)); got != math3d.V2(0.25, 0.75) {
		t.Errorf("Update at equilibrium = %v", got)
	}
}
