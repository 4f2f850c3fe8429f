package uvisland

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/taigrr/uvpaint/pkg/models"
)

// gatedLoader serves meshes by path and blocks each load until its gate is
// closed.
type gatedLoader struct {
	meshes map[string]*models.Mesh
	gates  map[string]chan struct{}
	calls  atomic.Int32
}

func (g *gatedLoader) load(ctx context.Context, path string) (*models.Mesh, error) {
	g.calls.Add(1)
	if gate, ok := g.gates[path]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m, ok := g.meshes[path]
	if !ok {
		return nil, errors.New("no such mesh")
	}
	return m, nil
}

func wait(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for build")
		return nil
	}
}

func TestCacheNotReadyThenReady(t *testing.T) {
	gate := make(chan struct{})
	g := &gatedLoader{
		meshes: map[string]*models.Mesh{"a.glb": meshOf(twoCharts())},
		gates:  map[string]chan struct{}{"a.glb": gate},
	}
	c := NewCache(g.load)

	if _, err := c.Picker(); !errors.Is(err, ErrNotReady) {
		t.Errorf("empty cache err = %v, want ErrNotReady", err)
	}

	done := c.Load(context.Background(), "a.glb")
	if _, err := c.Picker(); !errors.Is(err, ErrNotReady) {
		t.Errorf("in-flight err = %v, want ErrNotReady", err)
	}

	close(gate)
	if err := wait(t, done); err != nil {
		t.Fatalf("Load: %v", err)
	}
	p, err := c.Picker()
	if err != nil {
		t.Fatalf("Picker: %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("islands = %d, want 2", p.Len())
	}
	if c.Path() != "a.glb" {
		t.Errorf("Path = %q", c.Path())
	}
}

func TestCacheSupersession(t *testing.T) {
	slow := make(chan struct{})
	g := &gatedLoader{
		meshes: map[string]*models.Mesh{
			"old.glb": meshOf(twoCharts()),
			"new.glb": meshOf(unitTriangle()),
		},
		gates: map[string]chan struct{}{"old.glb": slow},
	}
	c := NewCache(g.load)

	oldDone := c.Load(context.Background(), "old.glb")
	newDone := c.Load(context.Background(), "new.glb")
	if err := wait(t, newDone); err != nil {
		t.Fatalf("new Load: %v", err)
	}

	close(slow)
	if err := wait(t, oldDone); !errors.Is(err, ErrSuperseded) {
		t.Errorf("old Load err = %v, want ErrSuperseded", err)
	}

	p, err := c.Picker()
	if err != nil {
		t.Fatalf("Picker: %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("current picker has %d islands, want the new mesh's 1", p.Len())
	}
}

func TestCacheReusesBuilds(t *testing.T) {
	g := &gatedLoader{meshes: map[string]*models.Mesh{
		"a.glb": meshOf(twoCharts()),
		"b.glb": meshOf(unitTriangle()),
	}}
	c := NewCache(g.load)

	for _, path := range []string{"a.glb", "b.glb", "a.glb"} {
		if err := wait(t, c.Load(context.Background(), path)); err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
	}
	if n := g.calls.Load(); n != 2 {
		t.Errorf("loader calls = %d, want 2", n)
	}
	p, _ := c.Picker()
	if p.Len() != 2 {
		t.Errorf("picker islands = %d, want 2", p.Len())
	}

	c.Forget("a.glb")
	if err := wait(t, c.Load(context.Background(), "a.glb")); err != nil {
		t.Fatal(err)
	}
	if n := g.calls.Load(); n != 3 {
		t.Errorf("loader calls after Forget = %d, want 3", n)
	}
}

func TestCacheLoadError(t *testing.T) {
	g := &gatedLoader{meshes: map[string]*models.Mesh{}}
	c := NewCache(g.load)

	if err := wait(t, c.Load(context.Background(), "missing.glb")); err == nil {
		t.Fatal("expected load error")
	}
	if _, err := c.Picker(); err == nil || errors.Is(err, ErrNotReady) {
		t.Errorf("Picker err = %v, want the load error", err)
	}
}

func TestCacheCanceled(t *testing.T) {
	g := &gatedLoader{meshes: map[string]*models.Mesh{"a.glb": meshOf(twoCharts())}}
	c := NewCache(g.load)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := wait(t, c.Load(ctx, "a.glb")); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
