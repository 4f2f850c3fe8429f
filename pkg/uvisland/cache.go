package uvisland

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taigrr/uvpaint/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotReady is returned by Cache.Picker while islands are being built.
	ErrNotReady = errors.New("islands not ready")
	// ErrSuperseded is delivered to a Load whose result was replaced by a
	// newer Load before it finished.
	ErrSuperseded = errors.New("island build superseded")
)

// Loader reads the mesh stored at path.
type Loader func(ctx context.Context, path string) (*models.Mesh, error)

// GLBLoader loads meshes with models.LoadGLB.
func GLBLoader(_ context.Context, path string) (*models.Mesh, error) {
	return models.LoadGLB(path)
}

// Cache builds islands in the background for the current mesh and keeps the
// pickers of meshes it has already seen. Only the most recent Load becomes
// current; an older build that finishes late is cached but never published.
type Cache struct {
	load  Loader
	log   *zap.Logger
	group singleflight.Group

	mu      sync.Mutex
	gen     uint64
	path    string
	current *Picker
	err     error
	built   map[string]*Picker
}

// NewCache creates a cache using load to read meshes.
func NewCache(load Loader, opts ...Option) *Cache {
	o := buildOptions(opts)
	if load == nil {
		load = GLBLoader
	}
	return &Cache{
		load:  load,
		log:   o.log,
		built: make(map[string]*Picker),
	}
}

// Load makes path the current mesh and builds its islands in a goroutine
// unless they are cached. The returned channel receives the outcome once:
// nil when the picker is published, ErrSuperseded when a newer Load took
// over, or the load error.
func (c *Cache) Load(ctx context.Context, path string) <-chan error {
	done := make(chan error, 1)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.path = path
	c.err = nil
	if p, ok := c.built[path]; ok {
		c.current = p
		c.mu.Unlock()
		done <- nil
		return done
	}
	c.current = nil
	c.mu.Unlock()

	go func() {
		v, err, shared := c.group.Do(path, func() (any, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			mesh, err := c.load(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("load mesh %s: %w", path, err)
			}
			return NewPicker(Build(mesh, WithLogger(c.log))), nil
		})

		c.mu.Lock()
		defer c.mu.Unlock()

		if err == nil {
			c.built[path] = v.(*Picker)
		}
		if gen != c.gen {
			c.log.Debug("island build superseded", zap.String("path", path), zap.Bool("shared", shared))
			done <- ErrSuperseded
			return
		}
		if err != nil {
			c.err = err
			c.log.Warn("island build failed", zap.String("path", path), zap.Error(err))
			done <- err
			return
		}
		c.current = c.built[path]
		done <- nil
	}()

	return done
}

// Picker returns the picker for the current mesh, ErrNotReady while its
// build is in flight, or the error the build failed with.
func (c *Cache) Picker() (*Picker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.current == nil {
		return nil, ErrNotReady
	}
	return c.current, nil
}

// Path returns the current mesh path.
func (c *Cache) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Forget drops the cached picker for path so the next Load rebuilds it.
func (c *Cache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.built, path)
	c.group.Forget(path)
}
