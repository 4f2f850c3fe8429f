package main

import (
	"fmt"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/uvpaint/pkg/render"
)

var (
	hudBg     = color.RGBA{0, 0, 0, 255}
	hudWhite  = color.RGBA{235, 235, 235, 255}
	hudGreen  = color.RGBA{90, 220, 110, 255}
	hudCyan   = color.RGBA{90, 210, 230, 255}
	hudYellow = color.RGBA{240, 210, 80, 255}
	hudDim    = color.RGBA{140, 140, 140, 255}
)

// HUD renders an overlay with model info, brush state and status messages.
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD rows over the top and bottom of area. The status line
// is always shown; the rest only when the HUD is enabled.
func (h *HUD) Render(scr uv.Screen, area uv.Rectangle, e *editor) {
	top := area.Min.Y
	bottom := area.Max.Y - 1
	if bottom <= top {
		return
	}

	if e.showHUD {
		// Top left: FPS
		x := drawText(scr, area.Min.X, top, fmt.Sprintf(" %.0f FPS ", h.fps), hudStyle(hudGreen, false))

		// Top middle: filename
		title := " " + h.filename + " "
		x = max((area.Dx()-len(title))/2, x+1)
		drawText(scr, x, top, title, hudStyle(hudWhite, true))

		// Top right: triangle count
		tris := fmt.Sprintf(" %d tris ", h.polyCount)
		drawText(scr, max(area.Max.X-len(tris), area.Min.X), top, tris, hudStyle(hudCyan, true))

		// Bottom: brush state
		p := e.stroker.Preset()
		x = drawText(scr, area.Min.X, bottom, fmt.Sprintf(" %s %.0fpx ", p.Name, p.Size), hudStyle(hudWhite, true))
		c := e.stroker.Color()
		x = drawText(scr, x, bottom, "■ ", hudStyle(render.UnitRGB(c.R, c.G, c.B), false))
		x = drawText(scr, x, bottom, check(e.stroker.Eraser())+" Eraser  ", hudStyle(hudWhite, false))
		x = drawText(scr, x, bottom, check(e.outlines)+" Islands  ", hudStyle(hudWhite, false))
		if e.selected != 0 {
			x = drawText(scr, x, bottom, e.selectedText+"  ", hudStyle(hudYellow, false))
		}
		if e.status != "" {
			drawText(scr, x, bottom, e.status, hudStyle(hudYellow, true))
		} else {
			drawText(scr, x, bottom, "s: save  esc: quit", hudStyle(hudDim, false))
		}
		return
	}

	if e.status != "" {
		drawText(scr, area.Min.X, bottom, " "+e.status+" ", hudStyle(hudYellow, true))
	}
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

func hudStyle(fg color.Color, bold bool) uv.Style {
	s := uv.Style{Fg: fg, Bg: hudBg}
	if bold {
		s.Attrs = uv.AttrBold
	}
	return s
}

// drawText writes s one cell per rune starting at (x, y), clipped to the
// screen. It returns the column after the text.
func drawText(scr uv.Screen, x, y int, s string, style uv.Style) int {
	bounds := scr.Bounds()
	for _, r := range s {
		if x >= bounds.Max.X {
			break
		}
		if x >= bounds.Min.X {
			scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		}
		x++
	}
	return x
}
