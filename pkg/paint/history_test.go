package paint

import (
	"testing"

	"github.com/taigrr/uvpaint/pkg/math3d"
)

func TestHistoryInitialState(t *testing.T) {
	r := newRasterizer(t, 16, 16)
	h := NewHistory(r, 0)
	if h.Len() != 1 || h.Index() != 0 {
		t.Errorf("Len=%d Index=%d, want 1 and 0", h.Len(), h.Index())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history should not undo or redo")
	}
	if h.Undo() || h.Redo() {
		t.Error("Undo/Redo at boundaries should be no-ops")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	r := newRasterizer(t, 32, 32)
	h := NewHistory(r, 0)

	uvs := []math3d.Vec2{math3d.V2(0.1, 0.1), math3d.V2(0.5, 0.7), math3d.V2(0.9, 0.3)}
	for _, uv := range uvs {
		r.Stamp(uv, BrushParams{Size: 6, Hardness: 0.5, Opacity: 0.7, Color: RGB(0.3, 0.6, 0.9)})
		h.Capture()
	}
	after := r.Snapshot()

	if !h.Undo() {
		t.Fatal("Undo returned false")
	}
	if r.Snapshot().Equal(after) {
		t.Fatal("Undo did not change the texture")
	}
	if !h.Redo() {
		t.Fatal("Redo returned false")
	}
	if !r.Snapshot().Equal(after) {
		t.Error("texture after undo/redo differs from captured state")
	}
}

func TestHistoryUndoToBlank(t *testing.T) {
	r := newRasterizer(t, 16, 16)
	blank := r.Snapshot()
	h := NewHistory(r, 0)

	r.Stamp(math3d.V2(0.5, 0.5), red)
	h.Capture()
	r.Stamp(math3d.V2(0.2, 0.5), red)
	h.Capture()

	for h.Undo() {
	}
	if h.Index() != 0 {
		t.Errorf("Index = %d, want 0", h.Index())
	}
	if !r.Snapshot().Equal(blank) {
		t.Error("undoing everything should restore the blank texture")
	}
}

func TestHistoryRedoTruncation(t *testing.T) {
	r := newRasterizer(t, 16, 16)
	h := NewHistory(r, 0)

	r.Stamp(math3d.V2(0.25, 0.5), red)
	h.Capture()
	r.Stamp(math3d.V2(0.75, 0.5), red)
	h.Capture()

	h.Undo()
	r.Stamp(math3d.V2(0.5, 0.9), BrushParams{Size: 4, Hardness: 1, Opacity: 1, Color: RGB(0, 1, 0)})
	h.Capture()
	want := r.Snapshot()

	if h.Redo() {
		t.Error("Redo after capture should be a no-op")
	}
	if h.CanRedo() {
		t.Error("CanRedo should be false after truncation")
	}
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
	if !r.Snapshot().Equal(want) {
		t.Error("texture changed after failed redo")
	}
}

func TestHistoryMaxDepth(t *testing.T) {
	r := newRasterizer(t, 16, 16)
	h := NewHistory(r, 3)

	var states []Snapshot
	for i := range 5 {
		r.Stamp(math3d.V2(float64(i)/5+0.1, 0.5), BrushParams{Size: 2, Hardness: 1, Opacity: 1, Color: RGB(1, 1, 1)})
		h.Capture()
		states = append(states, r.Snapshot())
	}

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if h.Index() != 2 {
		t.Errorf("Index = %d, want 2", h.Index())
	}
	for h.Undo() {
	}
	if !r.Snapshot().Equal(states[2]) {
		t.Error("oldest retained entry should be the third capture")
	}
}

func TestHistoryUnbounded(t *testing.T) {
	r := newRasterizer(t, 4, 4)
	h := NewHistory(r, 0)
	for range 50 {
		h.Capture()
	}
	if h.Len() != 51 {
		t.Errorf("Len = %d, want 51", h.Len())
	}
}
