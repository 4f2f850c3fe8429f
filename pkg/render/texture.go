package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
)

// Checker is a procedural checkerboard image, the backdrop that makes
// transparent paint visible.
type Checker struct {
	Rect  image.Rectangle
	Size  int
	Light color.RGBA
	Dark  color.RGBA
}

// NewChecker creates a checkerboard with squares of size pixels.
func NewChecker(width, height, size int) *Checker {
	return &Checker{
		Rect:  image.Rect(0, 0, width, height),
		Size:  max(size, 1),
		Light: ColorCheckLight,
		Dark:  ColorCheckDark,
	}
}

// ColorModel implements image.Image.
func (c *Checker) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (c *Checker) Bounds() image.Rectangle { return c.Rect }

// At implements image.Image.
func (c *Checker) At(x, y int) color.Color {
	if (x/c.Size+y/c.Size)%2 == 0 {
		return c.Light
	}
	return c.Dark
}

// LoadTexture decodes an image file, used as an alternative backdrop.
func LoadTexture(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
