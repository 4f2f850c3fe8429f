package render

import (
	"image"

	"github.com/taigrr/uvpaint/pkg/math3d"
	"github.com/taigrr/uvpaint/pkg/uvisland"
)

// UVView maps the unit UV square onto a square region of a framebuffer.
// V grows upward, so v=1 is the top row of the region.
type UVView struct {
	Rect image.Rectangle
}

// FitUVView centers the largest square that fits in a width x height
// framebuffer, leaving margin pixels on every side.
func FitUVView(width, height, margin int) UVView {
	side := max(min(width, height)-2*margin, 1)
	x := (width - side) / 2
	y := (height - side) / 2
	return UVView{Rect: image.Rect(x, y, x+side, y+side)}
}

// ToPixel converts a UV coordinate to framebuffer pixel coordinates.
func (v UVView) ToPixel(uv math3d.Vec2) (int, int) {
	w := float64(v.Rect.Dx())
	h := float64(v.Rect.Dy())
	x := v.Rect.Min.X + int(uv.X*w)
	y := v.Rect.Min.Y + int((1-uv.Y)*h)
	// u=1 and v=0 land on the last column and row, not past them.
	if x == v.Rect.Max.X {
		x--
	}
	if y == v.Rect.Max.Y {
		y--
	}
	return x, y
}

// ToUV converts the center of framebuffer pixel (x, y) to UV. The second
// result is false when the pixel lies outside the view.
func (v UVView) ToUV(x, y int) (math3d.Vec2, bool) {
	if v.Rect.Empty() {
		return math3d.Vec2{}, false
	}
	u := (float64(x-v.Rect.Min.X) + 0.5) / float64(v.Rect.Dx())
	vv := 1 - (float64(y-v.Rect.Min.Y)+0.5)/float64(v.Rect.Dy())
	return math3d.V2(u, vv), image.Pt(x, y).In(v.Rect)
}

// CellToUV converts a terminal cell to UV. A cell covers two framebuffer
// rows; its center is the boundary between them.
func (v UVView) CellToUV(col, row int) (math3d.Vec2, bool) {
	uv, ok := v.ToUV(col, row*2)
	h := float64(v.Rect.Dy())
	uv.Y -= 0.5 / h
	return uv, ok
}

// DrawBackdrop fills the view with img, scaled to fit.
func (v UVView) DrawBackdrop(fb *Framebuffer, img image.Image) {
	fb.Blit(img, v.Rect, true)
}

// DrawPaint composites the top-down paint image over the view.
func (v UVView) DrawPaint(fb *Framebuffer, paint image.Image) {
	fb.Blit(paint, v.Rect, true)
}

// DrawBorder outlines the view.
func (v UVView) DrawBorder(fb *Framebuffer) {
	r := v.Rect.Inset(-1)
	fb.DrawRectOutline(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), ColorBorder)
}

// DrawIslands outlines every island's triangles. The island with ID
// selected is drawn last in the highlight color.
func (v UVView) DrawIslands(fb *Framebuffer, islands []uvisland.Island, selected int) {
	for i := range islands {
		if islands[i].ID != selected {
			v.drawIsland(fb, &islands[i], false)
		}
	}
	for i := range islands {
		if islands[i].ID == selected {
			v.drawIsland(fb, &islands[i], true)
		}
	}
}

func (v UVView) drawIsland(fb *Framebuffer, is *uvisland.Island, selected bool) {
	c := ColorOutline
	if selected {
		c = ColorSelected
	}
	for _, tri := range is.Triangles {
		for k := range 3 {
			x0, y0 := v.ToPixel(is.UVs[tri[k]])
			x1, y1 := v.ToPixel(is.UVs[tri[(k+1)%3]])
			fb.DrawLine(x0, y0, x1, y1, c)
		}
	}
}
