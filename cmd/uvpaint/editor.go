package main

import (
	"errors"
	"fmt"
	"image"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/uvpaint/internal/config"
	"github.com/taigrr/uvpaint/internal/logger"
	"github.com/taigrr/uvpaint/pkg/brush"
	"github.com/taigrr/uvpaint/pkg/math3d"
	"github.com/taigrr/uvpaint/pkg/paint"
	"github.com/taigrr/uvpaint/pkg/render"
	"github.com/taigrr/uvpaint/pkg/uvisland"
	"go.uber.org/zap"
)

const (
	statusTimeout = 3 * time.Second
	checkerSize   = 8
	minBrushSize  = 1.0
	maxBrushSize  = 512.0
	brushStep     = 1.25
)

// editorDeps bundles the painting session the editor drives.
type editorDeps struct {
	rasterizer *paint.Rasterizer
	history    *paint.History
	stroker    *paint.Stroker
	catalog    *brush.Catalog
	islands    *uvisland.Cache
	backdrop   image.Image // nil draws a checkerboard
	name       string
	triangles  int
}

// editor holds UI state and turns terminal events into paint operations.
// It is driven from a single goroutine.
type editor struct {
	editorDeps
	cfg *config.Config
	log *zap.Logger
	hud *HUD

	fb      *render.Framebuffer
	view    render.UVView
	checker *render.Checker

	paintImg   image.Image
	paintDirty bool

	colorIdx     int
	outlines     bool
	showHUD      bool
	selected     int
	selectedText string
	status       string
	statusAt     time.Time

	painting   bool
	pointer    math3d.Vec2
	stabilizer *Stabilizer
}

func newEditor(cfg *config.Config, deps editorDeps) *editor {
	e := &editor{
		editorDeps: deps,
		cfg:        cfg,
		log:        logger.Named("ui"),
		hud:        NewHUD(deps.name, deps.triangles),
		fb:         render.NewFramebuffer(1, 1),
		paintDirty: true,
		outlines:   cfg.Renderer.Outlines,
		showHUD:    cfg.Renderer.ShowHUD,
	}
	if cfg.Input.Stabilizer {
		e.stabilizer = NewStabilizer(cfg.Renderer.FPS, cfg.Input.StabilizerFrequency, cfg.Input.StabilizerDamping)
	}
	return e
}

// resize adapts the framebuffer to a terminal of cols x rows cells.
func (e *editor) resize(cols, rows int) {
	e.fb.Resize(cols, rows*2)
	// Keep one cell row free above and below for the HUD.
	e.view = render.FitUVView(e.fb.Width, e.fb.Height, 2)
	e.checker = render.NewChecker(e.view.Rect.Dx(), e.view.Rect.Dy(), checkerSize)
}

func (e *editor) setStatus(msg string) {
	e.status = msg
	e.statusAt = time.Now()
}

// handle applies one terminal event. It reports whether the editor should
// quit.
func (e *editor) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		e.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		return e.handleKey(ev)

	case uv.MouseClickEvent:
		p, ok := e.view.CellToUV(ev.X, ev.Y)
		if !ok {
			return false
		}
		switch ev.Button {
		case uv.MouseLeft:
			e.beginStroke(p)
		case uv.MouseRight:
			e.pick(p)
		}

	case uv.MouseMotionEvent:
		if !e.painting {
			return false
		}
		// Samples off the texture still paint; the dab is clipped.
		p, _ := e.view.CellToUV(ev.X, ev.Y)
		e.pointer = p
		if e.stabilizer == nil {
			e.strokeTo(p)
		}

	case uv.MouseReleaseEvent:
		e.finishStroke()

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			e.scaleBrush(brushStep)
		case uv.MouseWheelDown:
			e.scaleBrush(1 / brushStep)
		}
	}
	return false
}

func (e *editor) handleKey(ev uv.KeyPressEvent) bool {
	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
		return true
	case ev.MatchString("u"):
		e.finishStroke()
		if e.history.Undo() {
			e.paintDirty = true
			e.setStatus("undo")
		}
	case ev.MatchString("r"):
		e.finishStroke()
		if e.history.Redo() {
			e.paintDirty = true
			e.setStatus("redo")
		}
	case ev.MatchString("e"):
		e.stroker.SetEraser(!e.stroker.Eraser())
	case ev.MatchString("["):
		e.scaleBrush(1 / brushStep)
	case ev.MatchString("]"):
		e.scaleBrush(brushStep)
	case ev.MatchString("c"):
		e.cycleColor()
	case ev.MatchString("i"):
		e.outlines = !e.outlines
	case ev.MatchString("s"):
		e.save()
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		e.showHUD = !e.showHUD
	default:
		if t := ev.Key().Text; len(t) == 1 && t[0] >= '1' && t[0] <= '9' {
			e.selectPreset(int(t[0] - '1'))
		}
	}
	return false
}

func (e *editor) beginStroke(p math3d.Vec2) {
	e.stroker.BeginStroke()
	e.painting = true
	e.pointer = p
	if e.stabilizer != nil {
		e.stabilizer.Reset(p)
	}
	e.strokeTo(p)
}

func (e *editor) strokeTo(p math3d.Vec2) {
	// Terminal mice report no pressure.
	if err := e.stroker.StrokeUV(p, 1); err != nil {
		e.log.Debug("stroke sample dropped", zap.Error(err))
		return
	}
	e.paintDirty = true
}

// finishStroke closes an open stroke, recording it in history.
func (e *editor) finishStroke() {
	if !e.painting {
		return
	}
	if e.stabilizer != nil {
		e.strokeTo(e.pointer)
	}
	e.painting = false
	e.stroker.EndStroke()
}

// tick advances per-frame state.
func (e *editor) tick() {
	e.hud.UpdateFPS()
	if e.painting && e.stabilizer != nil {
		e.strokeTo(e.stabilizer.Update(e.pointer))
	}
	if e.status != "" && time.Since(e.statusAt) > statusTimeout {
		e.status = ""
	}
}

func (e *editor) pick(p math3d.Vec2) {
	picker, err := e.islands.Picker()
	switch {
	case errors.Is(err, uvisland.ErrNotReady):
		e.setStatus("islands are still building")
		return
	case err != nil:
		e.setStatus("no islands: " + err.Error())
		return
	}

	id, ok := picker.Pick(p.X, p.Y)
	if !ok {
		e.selected = 0
		e.selectedText = ""
		e.setStatus("no island here")
		return
	}
	is, _ := picker.Island(id)
	mesh, _ := picker.Isolate(id)
	e.selected = id
	e.selectedText = fmt.Sprintf("#%d %s (%s)", id, is.Label, mesh)
	e.log.Info("island selected",
		zap.Int("id", id),
		zap.String("mesh", mesh),
		zap.String("label", is.Label),
		zap.Int("triangles", len(is.Triangles)))
}

func (e *editor) scaleBrush(f float64) {
	p := e.stroker.Preset()
	p.Size = min(max(p.Size*f, minBrushSize), maxBrushSize)
	e.stroker.SetPreset(p)
}

func (e *editor) selectPreset(i int) {
	if e.catalog.Len() == 0 {
		return
	}
	p := e.catalog.At(i)
	e.stroker.SetPreset(p)
	e.setStatus("brush: " + p.Name)
}

// setCatalog swaps in reloaded presets, refreshing the current brush if it
// is still listed.
func (e *editor) setCatalog(c *brush.Catalog) {
	e.catalog = c
	if p, err := c.Get(e.stroker.Preset().ID); err == nil {
		e.stroker.SetPreset(p)
	}
	e.setStatus(fmt.Sprintf("reloaded %d presets", c.Len()))
}

func (e *editor) cycleColor() {
	palette := e.cfg.Brush.Palette
	if len(palette) == 0 {
		return
	}
	e.colorIdx = (e.colorIdx + 1) % len(palette)
	c := palette[e.colorIdx]
	e.stroker.SetColor(paint.RGB(c[0], c[1], c[2]))
}

func (e *editor) save() {
	path := e.cfg.Export.Path
	if err := e.rasterizer.ExportPNG(path); err != nil {
		e.log.Error("export failed", zap.String("path", path), zap.Error(err))
		e.setStatus("save failed: " + err.Error())
		return
	}
	e.setStatus("saved " + path)
}

// Draw implements uv.Drawable.
func (e *editor) Draw(scr uv.Screen, area uv.Rectangle) {
	e.fb.Clear(render.ColorBackground)

	if e.backdrop != nil {
		e.view.DrawBackdrop(e.fb, e.backdrop)
	} else {
		e.view.DrawBackdrop(e.fb, e.checker)
	}

	if e.paintDirty || e.paintImg == nil {
		e.paintImg = e.rasterizer.Surface().Image()
		e.paintDirty = false
	}
	e.view.DrawPaint(e.fb, e.paintImg)

	if e.outlines {
		if picker, err := e.islands.Picker(); err == nil {
			e.view.DrawIslands(e.fb, picker.Islands(), e.selected)
		}
	}
	e.view.DrawBorder(e.fb)

	e.fb.Draw(scr, area)
	e.hud.Render(scr, area, e)
}
