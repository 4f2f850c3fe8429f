package paint

import (
	"math"
)

// SoftwareTarget is a CPU Target. It reproduces the fixed-function blending
// of the GPU target: normal stamps use SRC_ALPHA, ONE_MINUS_SRC_ALPHA on all
// four channels, erase stamps keep color and scale alpha by ONE_MINUS_SRC_ALPHA.
// Results are stored as 8-bit values rounded to nearest.
type SoftwareTarget struct {
	width    int
	height   int
	pix      []byte
	disposed bool
}

// NewSoftwareTarget allocates a zeroed (fully transparent) texture.
func NewSoftwareTarget(width, height int) (*SoftwareTarget, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &SoftwareTarget{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}, nil
}

// Size returns the texture dimensions.
func (t *SoftwareTarget) Size() (int, int) {
	return t.width, t.height
}

// Stamp composites d into the texture.
func (t *SoftwareTarget) Stamp(d Dab) {
	if t.disposed {
		return
	}
	x0, y0, x1, y1 := d.Bounds(t.width, t.height)
	for y := y0; y < y1; y++ {
		row := y * t.width * 4
		for x := x0; x < x1; x++ {
			a := d.Coverage(x, y)
			if a <= 0 {
				continue
			}
			p := t.pix[row+x*4 : row+x*4+4 : row+x*4+4]
			if d.Erase {
				p[3] = quantize(unorm(p[3]) * (1 - a))
				continue
			}
			p[0] = quantize(d.Color.R*a + unorm(p[0])*(1-a))
			p[1] = quantize(d.Color.G*a + unorm(p[1])*(1-a))
			p[2] = quantize(d.Color.B*a + unorm(p[2])*(1-a))
			p[3] = quantize(a*a + unorm(p[3])*(1-a))
		}
	}
}

// ReadPixels returns a copy of the texture, bottom-up.
func (t *SoftwareTarget) ReadPixels() []byte {
	if t.disposed {
		return nil
	}
	out := make([]byte, len(t.pix))
	copy(out, t.pix)
	return out
}

// WritePixels replaces the texture contents.
func (t *SoftwareTarget) WritePixels(pixels []byte, width, height int) error {
	if t.disposed {
		return ErrDisposed
	}
	if err := CheckPixels(pixels, width, height); err != nil {
		return err
	}
	if width != t.width || height != t.height {
		t.width, t.height = width, height
		t.pix = make([]byte, len(pixels))
	}
	copy(t.pix, pixels)
	return nil
}

// Dispose drops the pixel storage.
func (t *SoftwareTarget) Dispose() {
	t.disposed = true
	t.pix = nil
}

func unorm(v byte) float64 {
	return float64(v) / 255
}

func quantize(v float64) byte {
	return byte(math.Round(unit(v) * 255))
}
