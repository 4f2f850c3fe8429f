// Package brush describes brush presets: the tip parameters a stroke is
// painted with and how pointer pressure modulates them.
package brush

import (
	"math"
)

// Dynamics controls how pointer input modulates a preset. Only the two
// pressure flags are interpreted; everything else is carried in Extra.
type Dynamics struct {
	PressureToSize    bool `yaml:"pressureToSize,omitempty"`
	PressureToOpacity bool `yaml:"pressureToOpacity,omitempty"`

	Extra map[string]any `yaml:",inline"`
}

// Preset is a named brush configuration. Size and Spacing are in texture
// pixels; Hardness, Flow and Opacity are in [0,1]. Fields the painter does
// not consume (Flow, Extra) are preserved so presets survive a load/save.
type Preset struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Size     float64  `yaml:"size"`
	Hardness float64  `yaml:"hardness"`
	Flow     float64  `yaml:"flow"`
	Opacity  float64  `yaml:"opacity"`
	Spacing  *float64 `yaml:"spacing,omitempty"`
	Dynamics Dynamics `yaml:"dynamics,omitempty"`

	Extra map[string]any `yaml:",inline"`
}

// SpacingPx returns the distance between consecutive stamps in pixels. A
// preset without explicit spacing uses a quarter of its diameter. The result
// is never below one pixel.
func (p Preset) SpacingPx() float64 {
	var s float64
	if p.Spacing != nil && !math.IsNaN(*p.Spacing) {
		s = *p.Spacing
	} else {
		s = math.Ceil(p.Size * 0.25)
	}
	return math.Max(1, s)
}

// Resolve applies pressure dynamics and returns the stamp diameter and
// opacity for one sample. Pressure is clamped to [0,1]; NaN counts as full
// pressure.
func (p Preset) Resolve(pressure float64) (size, opacity float64) {
	pressure = ClampPressure(pressure)
	size, opacity = p.Size, p.Opacity
	if p.Dynamics.PressureToSize {
		size *= pressure
	}
	if p.Dynamics.PressureToOpacity {
		opacity *= pressure
	}
	return size, opacity
}

// ClampPressure maps a raw pointer pressure into [0,1].
func ClampPressure(pressure float64) float64 {
	switch {
	case math.IsNaN(pressure):
		return 1
	case pressure < 0:
		return 0
	case pressure > 1:
		return 1
	}
	return pressure
}

// Float returns a pointer to v, for filling optional fields.
func Float(v float64) *float64 {
	return &v
}
