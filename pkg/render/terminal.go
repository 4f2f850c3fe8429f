package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Colors used by the preview.
var (
	ColorBackground = color.RGBA{24, 24, 28, 255}
	ColorCheckLight = color.RGBA{92, 92, 96, 255}
	ColorCheckDark  = color.RGBA{64, 64, 68, 255}
	ColorOutline    = color.RGBA{110, 200, 230, 255}
	ColorSelected   = color.RGBA{255, 200, 40, 255}
	ColorBorder     = color.RGBA{140, 140, 150, 255}
)

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// UnitRGB creates an opaque color from components in [0,1].
func UnitRGB(r, g, b float64) color.RGBA {
	return color.RGBA{unit8(r), unit8(g), unit8(b), 255}
}

func unit8(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
