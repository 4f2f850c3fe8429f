package paint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for non-positive texture dimensions or a
	// pixel buffer whose length does not match its dimensions.
	ErrInvalidSize = errors.New("invalid texture size")
	// ErrDisposed is returned by operations on a released rasterizer.
	ErrDisposed = errors.New("rasterizer disposed")
	// ErrNoActiveStroke is returned when samples arrive outside a stroke.
	ErrNoActiveStroke = errors.New("no active stroke")
	// ErrInvalidSample is returned for a pointer sample with a non-finite UV.
	ErrInvalidSample = errors.New("invalid stroke sample")
)

// Target is a persistent RGBA8 paint surface. Pixels cross the interface as
// tightly packed RGBA rows ordered bottom-up, row 0 being v=0.
//
// Implementations are not safe for concurrent use.
type Target interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)
	// Stamp composites one dab into the texture.
	Stamp(d Dab)
	// ReadPixels blocks until all issued stamps have landed and returns a
	// fresh copy of the texture.
	ReadPixels() []byte
	// WritePixels replaces the texture contents, reallocating storage when
	// the dimensions differ from the current ones.
	WritePixels(pixels []byte, width, height int) error
	// Dispose releases the texture. Further calls are no-ops.
	Dispose()
}

// TextureTarget is implemented by targets backed by a GPU texture that a
// viewer can bind directly.
type TextureTarget interface {
	Target
	Texture() uint32
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return nil
}

// CheckPixels validates that pixels holds exactly width x height RGBA texels.
func CheckPixels(pixels []byte, width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	if len(pixels) != width*height*4 {
		return fmt.Errorf("%d bytes for %dx%d: %w", len(pixels), width, height, ErrInvalidSize)
	}
	return nil
}
