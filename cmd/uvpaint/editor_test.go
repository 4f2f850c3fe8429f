package main

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/uvpaint/internal/config"
	"github.com/taigrr/uvpaint/pkg/brush"
	"github.com/taigrr/uvpaint/pkg/math3d"
	"github.com/taigrr/uvpaint/pkg/models"
	"github.com/taigrr/uvpaint/pkg/paint"
	"github.com/taigrr/uvpaint/pkg/uvisland"
)

// quadMesh is a single island covering the whole UV square.
func quadMesh() *models.Mesh {
	m := models.NewMesh("quad")
	m.AddSubMesh(models.SubMesh{
		Name: "Plane",
		Positions: []math3d.Vec3{
			math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0),
		},
		UVs: []math3d.Vec2{
			math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1),
		},
		Triangles: [][3]int{{0, 1, 2}, {0, 2, 3}},
	})
	return m
}

// newTestEditor builds an editor on a 32x32 software texture laid out in a
// 20x10 cell terminal. The view covers framebuffer pixels (2,2)-(18,18).
func newTestEditor(t *testing.T) *editor {
	t.Helper()

	cfg := config.Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 32, 32
	cfg.Export.Path = filepath.Join(t.TempDir(), "out.png")

	r, err := paint.New(32, 32)
	if err != nil {
		t.Fatalf("paint.New: %v", err)
	}
	t.Cleanup(r.Dispose)

	history := paint.NewHistory(r, 0)
	catalog := brush.NewCatalog(nil)
	stroker := paint.NewStroker(r, history, catalog.At(0))

	mesh := quadMesh()
	islands := uvisland.NewCache(func(context.Context, string) (*models.Mesh, error) {
		return mesh, nil
	})
	if err := <-islands.Load(context.Background(), "quad"); err != nil {
		t.Fatalf("island build: %v", err)
	}

	e := newEditor(cfg, editorDeps{
		rasterizer: r,
		history:    history,
		stroker:    stroker,
		catalog:    catalog,
		islands:    islands,
		name:       "quad.glb",
		triangles:  mesh.TriangleCount(),
	})
	e.resize(20, 10)
	return e
}

func key(s string) uv.KeyPressEvent {
	r := []rune(s)[0]
	return uv.KeyPressEvent{Code: r, Text: s}
}

func painted(e *editor) bool {
	for i, b := range e.rasterizer.Snapshot().Pixels {
		if i%4 == 3 && b != 0 {
			return true
		}
	}
	return false
}

func TestEditorResize(t *testing.T) {
	e := newTestEditor(t)
	if e.fb.Width != 20 || e.fb.Height != 20 {
		t.Errorf("framebuffer = %dx%d, want 20x20", e.fb.Width, e.fb.Height)
	}
	if e.view.Rect.Dx() != 16 || e.view.Rect.Dy() != 16 {
		t.Errorf("view = %v, want 16x16", e.view.Rect)
	}

	e.handle(uv.WindowSizeEvent{Width: 40, Height: 12})
	if e.fb.Width != 40 || e.fb.Height != 24 {
		t.Errorf("after resize framebuffer = %dx%d, want 40x24", e.fb.Width, e.fb.Height)
	}
}

func TestEditorDragPaintsAndUndoes(t *testing.T) {
	e := newTestEditor(t)

	e.handle(uv.MouseClickEvent{X: 8, Y: 5, Button: uv.MouseLeft})
	if !e.painting || !e.stroker.Active() {
		t.Fatal("left click should open a stroke")
	}
	e.handle(uv.MouseMotionEvent{X: 12, Y: 5, Button: uv.MouseLeft})
	e.handle(uv.MouseReleaseEvent{X: 12, Y: 5, Button: uv.MouseLeft})

	if e.stroker.Active() {
		t.Error("release should end the stroke")
	}
	if !painted(e) {
		t.Fatal("drag left the texture blank")
	}
	if got := e.history.Len(); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}

	e.handle(key("u"))
	if painted(e) {
		t.Error("undo should restore the blank texture")
	}
	e.handle(key("r"))
	if !painted(e) {
		t.Error("redo should restore the stroke")
	}
}

func TestEditorClickOutsideViewIgnored(t *testing.T) {
	e := newTestEditor(t)
	e.handle(uv.MouseClickEvent{X: 0, Y: 0, Button: uv.MouseLeft})
	if e.painting {
		t.Error("click outside the UV view should not start a stroke")
	}
}

func TestEditorStabilizedStroke(t *testing.T) {
	e := newTestEditor(t)
	e.stabilizer = NewStabilizer(60, 8, 1)

	e.handle(uv.MouseClickEvent{X: 4, Y: 5, Button: uv.MouseLeft})
	e.handle(uv.MouseMotionEvent{X: 14, Y: 5, Button: uv.MouseLeft})
	before := e.stroker.Stamps()
	e.tick()
	if e.stroker.Stamps() <= before {
		t.Error("tick should advance a stabilized stroke")
	}
	e.handle(uv.MouseReleaseEvent{X: 14, Y: 5, Button: uv.MouseLeft})
	if e.history.Len() != 2 {
		t.Errorf("history length = %d, want 2", e.history.Len())
	}
}

func TestEditorPick(t *testing.T) {
	e := newTestEditor(t)

	e.handle(uv.MouseClickEvent{X: 10, Y: 5, Button: uv.MouseRight})
	if e.selected != 1 {
		t.Fatalf("selected = %d, want 1", e.selected)
	}
	if e.selectedText == "" {
		t.Error("selection should be described")
	}
	if e.painting {
		t.Error("right click should not paint")
	}
}

func TestEditorKeys(t *testing.T) {
	e := newTestEditor(t)

	e.handle(key("e"))
	if !e.stroker.Eraser() {
		t.Error("e should enable the eraser")
	}

	size := e.stroker.Preset().Size
	e.handle(key("]"))
	if got := e.stroker.Preset().Size; got != size*brushStep {
		t.Errorf("] size = %v, want %v", got, size*brushStep)
	}
	e.handle(key("["))
	if got := e.stroker.Preset().Size; math.Abs(got-size) > 1e-9 {
		t.Errorf("[ size = %v, want %v", got, size)
	}

	e.handle(key("2"))
	if got := e.stroker.Preset().ID; got != "basic-32" {
		t.Errorf("preset after 2 = %q, want basic-32", got)
	}

	e.handle(key("c"))
	want := e.cfg.Brush.Palette[1]
	if got := e.stroker.Color(); got != paint.RGB(want[0], want[1], want[2]) {
		t.Errorf("color after c = %v, want %v", got, want)
	}

	outlines := e.outlines
	e.handle(key("i"))
	if e.outlines == outlines {
		t.Error("i should toggle outlines")
	}

	hud := e.showHUD
	e.handle(key("?"))
	if e.showHUD == hud {
		t.Error("? should toggle the HUD")
	}

	if !e.handle(uv.KeyPressEvent{Code: uv.KeyEscape}) {
		t.Error("escape should quit")
	}
}

func TestEditorBrushSizeClamped(t *testing.T) {
	e := newTestEditor(t)
	for range 100 {
		e.handle(uv.MouseWheelEvent{Button: uv.MouseWheelDown})
	}
	if got := e.stroker.Preset().Size; got != minBrushSize {
		t.Errorf("size = %v, want %v", got, minBrushSize)
	}
}

func TestEditorSave(t *testing.T) {
	e := newTestEditor(t)
	e.handle(key("s"))
	if e.status != "saved "+e.cfg.Export.Path {
		t.Errorf("status = %q", e.status)
	}
	if _, err := os.Stat(e.cfg.Export.Path); err != nil {
		t.Errorf("exported file: %v", err)
	}
}

func TestEditorDraw(t *testing.T) {
	e := newTestEditor(t)
	e.handle(uv.MouseClickEvent{X: 10, Y: 5, Button: uv.MouseLeft})
	e.handle(uv.MouseReleaseEvent{X: 10, Y: 5, Button: uv.MouseLeft})

	scr := uv.NewScreenBuffer(20, 10)
	e.Draw(scr, scr.Bounds())

	if cell := scr.CellAt(10, 5); cell == nil || cell.Content != "▀" {
		t.Errorf("center cell = %+v, want a half block", cell)
	}
	if e.paintDirty {
		t.Error("Draw should refresh the paint image")
	}
	// HUD row
	if cell := scr.CellAt(1, 0); cell == nil || cell.Content == "▀" {
		t.Errorf("top row should hold HUD text, got %+v", cell)
	}
}

func TestEditorSetCatalog(t *testing.T) {
	e := newTestEditor(t)
	e.setCatalog(brush.NewCatalog([]brush.Preset{
		{ID: "basic-16", Name: "Basic 16 (edited)", Size: 20, Hardness: 0.5, Opacity: 1},
		{ID: "ink", Name: "Ink", Size: 4, Hardness: 1, Opacity: 1},
	}))

	if got := e.stroker.Preset(); got.Size != 20 {
		t.Errorf("current preset size = %v, want the reloaded 20", got.Size)
	}
	e.handle(key("2"))
	if got := e.stroker.Preset().ID; got != "ink" {
		t.Errorf("preset after 2 = %q, want ink", got)
	}
}
