package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/taigrr/uvpaint/pkg/paint"
	"go.uber.org/zap"
)

// Target is a paint.Target backed by an OpenGL texture.
type Target struct {
	ctx     *Context
	ownsCtx bool
	fb      *framebuffer
	program *stampProgram
	vao     uint32
	log     *zap.Logger

	disposed bool
}

var _ paint.TextureTarget = (*Target)(nil)

// Option configures a Target.
type Option func(*Target)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Target) {
		if l != nil {
			t.log = l
		}
	}
}

// WithContext renders into an existing context instead of creating one. The
// target does not close a shared context.
func WithContext(ctx *Context) Option {
	return func(t *Target) {
		t.ctx = ctx
	}
}

// NewTarget creates a zeroed width x height paint texture. Without
// WithContext a hidden context is created and owned by the target.
func NewTarget(width, height int, opts ...Option) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, paint.ErrInvalidSize)
	}

	t := &Target{log: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}

	if t.ctx == nil {
		ctx, err := NewContext()
		if err != nil {
			return nil, fmt.Errorf("create gl context: %w", err)
		}
		t.ctx = ctx
		t.ownsCtx = true
	}

	fb, err := newFramebuffer(int32(width), int32(height))
	if err != nil {
		t.release()
		return nil, err
	}
	t.fb = fb

	program, err := newStampProgram()
	if err != nil {
		t.release()
		return nil, fmt.Errorf("stamp shader: %w", err)
	}
	t.program = program

	// Core profile requires a bound VAO even without attributes.
	gl.GenVertexArrays(1, &t.vao)

	t.log.Info("gpu paint target created",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("gl", t.ctx.Version()))

	return t, nil
}

// Size returns the texture dimensions.
func (t *Target) Size() (int, int) {
	if t.fb == nil {
		return 0, 0
	}
	return int(t.fb.width), int(t.fb.height)
}

// Texture returns the GL name of the paint texture for viewer binding.
func (t *Target) Texture() uint32 {
	if t.fb == nil {
		return 0
	}
	return t.fb.colorTexture
}

// Stamp draws d as a quad over its bounding rectangle.
func (t *Target) Stamp(d paint.Dab) {
	if t.disposed {
		return
	}
	w, h := t.Size()
	x0, y0, x1, y1 := d.Bounds(w, h)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	restore := t.fb.bind()
	defer restore()

	gl.Enable(gl.BLEND)
	if d.Erase {
		gl.BlendFuncSeparate(gl.ZERO, gl.ONE, gl.ZERO, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.UseProgram(t.program.id)
	gl.Uniform4f(t.program.rect, ndc(x0, w), ndc(y0, h), ndc(x1, w), ndc(y1, h))
	gl.Uniform2f(t.program.center, float32(d.CenterX), float32(d.CenterY))
	gl.Uniform1f(t.program.radius, float32(d.Radius))
	gl.Uniform1f(t.program.hardness, float32(d.Hardness))
	gl.Uniform1f(t.program.opacity, float32(d.Opacity))
	gl.Uniform3f(t.program.color, float32(d.Color.R), float32(d.Color.G), float32(d.Color.B))

	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
}

func ndc(px, size int) float32 {
	return float32(px)/float32(size)*2 - 1
}

// ReadPixels waits for pending draws and reads the texture back.
func (t *Target) ReadPixels() []byte {
	if t.disposed {
		return nil
	}
	gl.Finish()
	return t.fb.readPixels()
}

// WritePixels uploads pixels, reallocating on a size change.
func (t *Target) WritePixels(pixels []byte, width, height int) error {
	if t.disposed {
		return paint.ErrDisposed
	}
	if err := paint.CheckPixels(pixels, width, height); err != nil {
		return err
	}
	if err := t.fb.writePixels(pixels, int32(width), int32(height)); err != nil {
		return fmt.Errorf("upload pixels: %w", err)
	}
	return nil
}

// Dispose releases the GL objects and, when owned, the context.
func (t *Target) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.release()
	t.log.Debug("gpu paint target disposed")
}

func (t *Target) release() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.program != nil {
		t.program.delete()
		t.program = nil
	}
	if t.fb != nil {
		t.fb.destroy()
		t.fb = nil
	}
	if t.ownsCtx && t.ctx != nil {
		t.ctx.Close()
		t.ctx = nil
	}
}
