// Package paint implements UV-space painting: a brush rasterizer that stamps
// soft circular dabs into an RGBA8 texture, a stroke interpolator that turns
// sparse pointer samples into evenly spaced stamps, and snapshot history.
package paint

import (
	"math"

	"github.com/taigrr/uvpaint/pkg/math3d"
)

// Color is a linear RGB triple with components in [0,1].
type Color struct {
	R, G, B float64
}

// RGB creates a Color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Clamped returns the color with every component clamped to [0,1]. NaN
// components become 0.
func (c Color) Clamped() Color {
	return Color{R: unit(c.R), G: unit(c.G), B: unit(c.B)}
}

// BrushParams is the footprint of a single stamp. Size is the diameter in
// texture pixels.
type BrushParams struct {
	Size     float64
	Hardness float64
	Opacity  float64
	Color    Color
	Erase    bool
}

// Clamped returns params with hardness, opacity and color clamped to [0,1]
// and a negative or NaN size replaced by 0.
func (p BrushParams) Clamped() BrushParams {
	size := p.Size
	if math.IsNaN(size) || size < 0 {
		size = 0
	}
	return BrushParams{
		Size:     size,
		Hardness: unit(p.Hardness),
		Opacity:  unit(p.Opacity),
		Color:    p.Color.Clamped(),
		Erase:    p.Erase,
	}
}

// Dab is a resolved stamp in pixel space, ready for a Target. The center is
// measured from the bottom-left corner of the texture.
type Dab struct {
	CenterX  float64
	CenterY  float64
	Radius   float64
	Hardness float64
	Opacity  float64
	Color    Color
	Erase    bool
}

// NewDab resolves a stamp at uv on a width x height texture. The radius is
// half the brush diameter but never less than one pixel.
func NewDab(uv math3d.Vec2, p BrushParams, width, height int) Dab {
	p = p.Clamped()
	return Dab{
		CenterX:  uv.X * float64(width),
		CenterY:  uv.Y * float64(height),
		Radius:   math.Max(p.Size*0.5, 1),
		Hardness: p.Hardness,
		Opacity:  p.Opacity,
		Color:    p.Color,
		Erase:    p.Erase,
	}
}

// Coverage returns the dab alpha for the pixel whose lower-left corner is
// (x, y). Samples are taken at pixel centers.
func (d Dab) Coverage(x, y int) float64 {
	dx := float64(x) + 0.5 - d.CenterX
	dy := float64(y) + 0.5 - d.CenterY
	t := unit(math.Hypot(dx, dy) / d.Radius)
	edge := smoothstep(d.Hardness, 1, t)
	return (1 - edge) * d.Opacity
}

// Bounds returns the half-open pixel rectangle [x0,x1) x [y0,y1) touched by
// the dab, clipped to a width x height texture. The rectangle is empty when
// the dab misses the texture entirely.
func (d Dab) Bounds(width, height int) (x0, y0, x1, y1 int) {
	x0 = max(int(math.Floor(d.CenterX-d.Radius)), 0)
	y0 = max(int(math.Floor(d.CenterY-d.Radius)), 0)
	x1 = min(int(math.Ceil(d.CenterX+d.Radius)), width)
	y1 = min(int(math.Ceil(d.CenterY+d.Radius)), height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return x0, y0, x1, y1
}

// smoothstep is the GLSL smoothstep. When edge0 >= edge1 it degrades to a
// step at edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 >= edge1 {
		if x < edge1 {
			return 0
		}
		return 1
	}
	t := unit((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func unit(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
