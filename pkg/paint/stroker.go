package paint

import (
	"math"

	"github.com/taigrr/uvpaint/pkg/brush"
	"github.com/taigrr/uvpaint/pkg/math3d"
	"go.uber.org/zap"
)

// Stroker turns pointer samples into evenly spaced stamps. Each stroke is a
// session opened by BeginStroke and closed by EndStroke, which records a
// history entry. Sessions never interleave.
//
// Stroker is not safe for concurrent use.
type Stroker struct {
	r       *Rasterizer
	history *History
	log     *zap.Logger

	preset brush.Preset
	color  Color
	erase  bool

	active bool
	lastUV *math3d.Vec2
	stamps int
}

// NewStroker creates a stroker painting into r. history may be nil, in which
// case strokes are not recorded.
func NewStroker(r *Rasterizer, history *History, preset brush.Preset, opts ...Option) *Stroker {
	o := buildOptions(opts)
	return &Stroker{
		r:       r,
		history: history,
		log:     o.log,
		preset:  preset,
		color:   RGB(0, 0, 0),
	}
}

// SetPreset selects the brush for subsequent samples.
func (s *Stroker) SetPreset(p brush.Preset) { s.preset = p }

// Preset returns the current brush.
func (s *Stroker) Preset() brush.Preset { return s.preset }

// SetColor sets the paint color.
func (s *Stroker) SetColor(c Color) { s.color = c.Clamped() }

// Color returns the paint color.
func (s *Stroker) Color() Color { return s.color }

// SetEraser toggles erase mode.
func (s *Stroker) SetEraser(on bool) { s.erase = on }

// Eraser reports whether erase mode is on.
func (s *Stroker) Eraser() bool { return s.erase }

// Active reports whether a stroke session is open.
func (s *Stroker) Active() bool { return s.active }

// Stamps returns the number of stamps issued by this stroker.
func (s *Stroker) Stamps() int { return s.stamps }

// BeginStroke opens a session. An already open session is ended first.
func (s *Stroker) BeginStroke() {
	if s.active {
		s.log.Debug("stroke restarted while active")
		s.EndStroke()
	}
	s.active = true
	s.lastUV = nil
}

// StrokeUV adds a pointer sample. The first sample of a session stamps once;
// later samples stamp along the segment from the previous sample at the
// preset spacing, ending exactly on uv.
func (s *Stroker) StrokeUV(uv math3d.Vec2, pressure float64) error {
	if !s.active {
		return ErrNoActiveStroke
	}
	if !uv.IsFinite() {
		return ErrInvalidSample
	}

	params := s.params(pressure)
	if s.lastUV == nil {
		s.stamp(uv, params)
		s.lastUV = &uv
		return nil
	}

	w, h := s.r.Size()
	if w == 0 || h == 0 {
		return ErrDisposed
	}
	spacing := s.preset.SpacingPx()
	spacingU := spacing / float64(w)
	spacingV := spacing / float64(h)

	from := *s.lastUV
	d := uv.Sub(from)
	du, dv := d.X/spacingU, d.Y/spacingV
	steps := max(1, int(math.Ceil(math.Sqrt(du*du+dv*dv))))

	for i := 1; i <= steps; i++ {
		s.stamp(from.Lerp(uv, float64(i)/float64(steps)), params)
	}
	s.lastUV = &uv
	return nil
}

// EndStroke closes the session and records a history entry. It returns
// false when no session was open.
func (s *Stroker) EndStroke() bool {
	if !s.active {
		return false
	}
	s.active = false
	s.lastUV = nil
	if s.history != nil {
		s.history.Capture()
	}
	return true
}

func (s *Stroker) params(pressure float64) BrushParams {
	size, opacity := s.preset.Resolve(pressure)
	return BrushParams{
		Size:     size,
		Hardness: s.preset.Hardness,
		Opacity:  opacity,
		Color:    s.color,
		Erase:    s.erase,
	}
}

func (s *Stroker) stamp(uv math3d.Vec2, p BrushParams) {
	s.r.Stamp(uv, p)
	s.stamps++
}
