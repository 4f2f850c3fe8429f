package gpu

import (
	"errors"
	"runtime"
	"testing"

	"github.com/taigrr/uvpaint/pkg/math3d"
	"github.com/taigrr/uvpaint/pkg/paint"
)

// newTestTarget creates a GPU target or skips when no GL 4.1 context is
// available (headless CI).
func newTestTarget(t *testing.T, w, h int) *Target {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	target, err := NewTarget(w, h)
	if err != nil {
		t.Skipf("no GL context: %v", err)
	}
	t.Cleanup(target.Dispose)
	return target
}

func TestNewTargetInvalidSize(t *testing.T) {
	if _, err := NewTarget(0, 16); !errors.Is(err, paint.ErrInvalidSize) {
		t.Errorf("err = %v, want ErrInvalidSize", err)
	}
}

func TestTargetMatchesSoftware(t *testing.T) {
	gpuTarget := newTestTarget(t, 64, 64)
	gpuR := paint.NewRasterizer(gpuTarget)
	cpuR, err := paint.New(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer cpuR.Dispose()

	stamps := []struct {
		uv math3d.Vec2
		p  paint.BrushParams
	}{
		{math3d.V2(0.5, 0.5), paint.BrushParams{Size: 32, Hardness: 1, Opacity: 1, Color: paint.RGB(1, 0, 0)}},
		{math3d.V2(0.3, 0.6), paint.BrushParams{Size: 20, Hardness: 0.2, Opacity: 0.6, Color: paint.RGB(0, 0.5, 1)}},
		{math3d.V2(0.5, 0.5), paint.BrushParams{Size: 10, Hardness: 0.5, Opacity: 1, Erase: true}},
	}
	for _, s := range stamps {
		gpuR.Stamp(s.uv, s.p)
		cpuR.Stamp(s.uv, s.p)
	}

	got, want := gpuR.Snapshot(), cpuR.Snapshot()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("size %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	for i := range want.Pixels {
		d := int(got.Pixels[i]) - int(want.Pixels[i])
		if d < -2 || d > 2 {
			t.Fatalf("byte %d: gpu %d, software %d", i, got.Pixels[i], want.Pixels[i])
		}
	}
}

func TestTargetScenario(t *testing.T) {
	target := newTestTarget(t, 256, 256)
	r := paint.NewRasterizer(target)
	r.Stamp(math3d.V2(0.5, 0.5), paint.BrushParams{Size: 32, Hardness: 1, Opacity: 1, Color: paint.RGB(1, 0, 0)})

	snap := r.Snapshot()
	if got := snap.At(128, 128); got != [4]byte{255, 0, 0, 255} {
		t.Errorf("center = %v, want full red", got)
	}
	if got := snap.At(148, 128); got != [4]byte{} {
		t.Errorf("outside = %v, want transparent", got)
	}
	if _, ok := r.Surface().Texture(); !ok {
		t.Error("GPU surface should expose its texture")
	}
}

func TestTargetWritePixelsResizes(t *testing.T) {
	target := newTestTarget(t, 16, 16)
	pixels := make([]byte, 8*4*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	if err := target.WritePixels(pixels, 8, 4); err != nil {
		t.Fatalf("WritePixels: %v", err)
	}
	if w, h := target.Size(); w != 8 || h != 4 {
		t.Errorf("Size() = %dx%d, want 8x4", w, h)
	}
	got := target.ReadPixels()
	for i := range pixels {
		if got[i] != pixels[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], pixels[i])
		}
	}
}
