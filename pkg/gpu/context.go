// Package gpu provides an OpenGL 4.1 paint target. Stamps are drawn into an
// RGBA8 texture attached to a framebuffer object and composited with the
// fixed-function blender.
//
// All calls must happen on the OS thread that created the context.
package gpu

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Context is a hidden SDL window holding an OpenGL 4.1 core context. The
// paint target never presents it; it only exists so GL calls have a current
// context.
type Context struct {
	window *sdl.Window
	gl     sdl.GLContext
}

// NewContext initializes SDL video and creates a hidden 1x1 window with a
// current OpenGL context.
func NewContext() (*Context, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	window, err := sdl.CreateWindow("uvpaint", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		1, 1, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	glctx, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(glctx)
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	return &Context{window: window, gl: glctx}, nil
}

// Version returns the GL version string of the current context.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Close destroys the context and shuts SDL down.
func (c *Context) Close() {
	if c.gl != nil {
		sdl.GLDeleteContext(c.gl)
		c.gl = nil
	}
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	sdl.Quit()
}
