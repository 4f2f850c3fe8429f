package paint

import (
	"fmt"
	"os"

	"github.com/taigrr/uvpaint/pkg/math3d"
	"go.uber.org/zap"
)

// Option configures the paint components.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Rasterizer owns a paint Target and stamps brush footprints into it. It is
// the only writer of the texture; consumers read through Surface.
type Rasterizer struct {
	target   Target
	log      *zap.Logger
	stamps   int
	disposed bool
}

// NewRasterizer takes ownership of target.
func NewRasterizer(target Target, opts ...Option) *Rasterizer {
	o := buildOptions(opts)
	w, h := target.Size()
	o.log.Debug("rasterizer created",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.String("target", fmt.Sprintf("%T", target)))
	return &Rasterizer{target: target, log: o.log}
}

// New creates a rasterizer over a zeroed software texture.
func New(width, height int, opts ...Option) (*Rasterizer, error) {
	t, err := NewSoftwareTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("create software target: %w", err)
	}
	return NewRasterizer(t, opts...), nil
}

// Size returns the texture dimensions.
func (r *Rasterizer) Size() (int, int) {
	if r.disposed {
		return 0, 0
	}
	return r.target.Size()
}

// Stamp paints one dab centered at uv. Parameters are clamped; a non-finite
// uv or a disposed rasterizer makes this a no-op.
func (r *Rasterizer) Stamp(uv math3d.Vec2, p BrushParams) {
	if r.disposed || !uv.IsFinite() {
		return
	}
	w, h := r.target.Size()
	r.target.Stamp(NewDab(uv, p, w, h))
	r.stamps++
}

// Stamps returns the number of stamps issued since creation.
func (r *Rasterizer) Stamps() int {
	return r.stamps
}

// Snapshot returns a copy of the texture reflecting every stamp issued so
// far. A disposed rasterizer yields an empty snapshot.
func (r *Rasterizer) Snapshot() Snapshot {
	if r.disposed {
		return Snapshot{}
	}
	w, h := r.target.Size()
	return Snapshot{Width: w, Height: h, Pixels: r.target.ReadPixels()}
}

// LoadSnapshot replaces the texture contents with s, resizing the texture if
// s has different dimensions.
func (r *Rasterizer) LoadSnapshot(s Snapshot) error {
	if r.disposed {
		return ErrDisposed
	}
	if err := r.target.WritePixels(s.Pixels, s.Width, s.Height); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return nil
}

// Surface returns a read-only view of the texture.
func (r *Rasterizer) Surface() Surface {
	return Surface{r: r}
}

// ExportPNG writes the current texture to path.
func (r *Rasterizer) ExportPNG(path string) error {
	if r.disposed {
		return ErrDisposed
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, r.Snapshot()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.log.Info("texture exported", zap.String("path", path))
	return nil
}

// Dispose releases the texture. It is safe to call more than once.
func (r *Rasterizer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.target.Dispose()
	r.log.Debug("rasterizer disposed", zap.Int("stamps", r.stamps))
}
