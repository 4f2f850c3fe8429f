package paint

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
)

// Snapshot is a full copy of a paint texture. Pixels are RGBA8, bottom-up.
type Snapshot struct {
	Width  int
	Height int
	Pixels []byte
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Width: s.Width, Height: s.Height, Pixels: bytes.Clone(s.Pixels)}
}

// Equal reports whether two snapshots hold identical texels.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Width == o.Width && s.Height == o.Height && bytes.Equal(s.Pixels, o.Pixels)
}

// Validate checks the pixel buffer length against the dimensions.
func (s Snapshot) Validate() error {
	return CheckPixels(s.Pixels, s.Width, s.Height)
}

// At returns the RGBA texel at (x, y) with y measured from the bottom row.
// Out of range coordinates return zero.
func (s Snapshot) At(x, y int) [4]byte {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return [4]byte{}
	}
	i := (y*s.Width + x) * 4
	if i+4 > len(s.Pixels) {
		return [4]byte{}
	}
	return [4]byte(s.Pixels[i : i+4])
}

// Image converts the snapshot to a top-down image with straight alpha.
func (s Snapshot) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	stride := s.Width * 4
	for y := range s.Height {
		src := (s.Height - 1 - y) * stride
		if src+stride > len(s.Pixels) {
			break
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], s.Pixels[src:src+stride])
	}
	return img
}

// EncodePNG writes the snapshot as a PNG, flipped so the top row of the file
// is v=1.
func EncodePNG(w io.Writer, s Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := png.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Surface is a read-only view of a rasterizer's texture. Every accessor
// returns a copy; holders never mutate the texture.
type Surface struct {
	r *Rasterizer
}

// Size returns the texture dimensions.
func (s Surface) Size() (int, int) {
	return s.r.Size()
}

// Image returns a top-down copy of the current texture.
func (s Surface) Image() *image.NRGBA {
	return s.r.Snapshot().Image()
}

// Texture returns the GPU texture name when the rasterizer is GPU backed.
func (s Surface) Texture() (uint32, bool) {
	if s.r.disposed {
		return 0, false
	}
	tt, ok := s.r.target.(TextureTarget)
	if !ok {
		return 0, false
	}
	return tt.Texture(), true
}
