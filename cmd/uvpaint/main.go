// uvpaint - Terminal UV Texture Painter
// Paint a GLB model's texture in UV space from your terminal.
//
// Controls:
//
//	Left drag   - Paint
//	Right click - Select the UV island under the pointer
//	U / R       - Undo / redo
//	E           - Toggle eraser
//	[ / ]       - Shrink / grow brush
//	1-9         - Select brush preset
//	C           - Cycle paint color
//	I           - Toggle island outlines
//	S           - Save texture as PNG
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/uvpaint/internal/config"
	"github.com/taigrr/uvpaint/internal/logger"
	"github.com/taigrr/uvpaint/pkg/brush"
	"github.com/taigrr/uvpaint/pkg/gpu"
	"github.com/taigrr/uvpaint/pkg/models"
	"github.com/taigrr/uvpaint/pkg/paint"
	"github.com/taigrr/uvpaint/pkg/uvisland"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "uvpaint - Terminal UV Texture Painter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: uvpaint [options] <model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Left drag   - Paint\n")
		fmt.Fprintf(os.Stderr, "  Right click - Select UV island\n")
		fmt.Fprintf(os.Stderr, "  U/R         - Undo/redo\n")
		fmt.Fprintf(os.Stderr, "  E           - Toggle eraser\n")
		fmt.Fprintf(os.Stderr, "  [/]         - Brush size\n")
		fmt.Fprintf(os.Stderr, "  1-9         - Brush preset\n")
		fmt.Fprintf(os.Stderr, "  C           - Cycle color\n")
		fmt.Fprintf(os.Stderr, "  I           - Toggle island outlines\n")
		fmt.Fprintf(os.Stderr, "  S           - Save PNG\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	modelPath := config.ModelPath()
	if modelPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to the file.
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, modelPath)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRasterizer creates the paint texture on the configured backend. A GPU
// backend that cannot start falls back to software.
func newRasterizer(cfg *config.Config) (*paint.Rasterizer, error) {
	log := logger.Named("paint")
	w, h := cfg.Canvas.Width, cfg.Canvas.Height

	if cfg.Renderer.Backend == config.BackendGPU {
		target, err := gpu.NewTarget(w, h, gpu.WithLogger(logger.Named("gpu")))
		if err == nil {
			return paint.NewRasterizer(target, paint.WithLogger(log)), nil
		}
		logger.Warn("gpu backend unavailable, using software", zap.Error(err))
	}
	return paint.New(w, h, paint.WithLogger(log))
}

// loadCatalog reads presets from the configured path, or the built-in ones.
func loadCatalog(cfg *config.Config) (*brush.Catalog, brush.Preset, error) {
	var presets []brush.Preset
	if cfg.Brush.PresetPath != "" {
		p, err := brush.LoadPresets(cfg.Brush.PresetPath)
		if err != nil {
			return nil, brush.Preset{}, err
		}
		presets = p
	}
	catalog := brush.NewCatalog(presets)

	preset, err := catalog.Get(cfg.Brush.Preset)
	if err != nil {
		logger.Warn("starting preset not found", zap.String("preset", cfg.Brush.Preset))
		preset = catalog.At(0)
	}
	return catalog, preset, nil
}

func run(cfg *config.Config, modelPath string) error {
	// Load model
	mesh, embeddedImg, err := models.LoadGLBWithTexture(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	logger.Info("model loaded",
		zap.String("path", mesh.Path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("uv_submeshes", mesh.UVSubMeshCount()))
	if mesh.UVSubMeshCount() == 0 {
		logger.Warn("model has no texture coordinates; island picking is disabled")
	}

	catalog, preset, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	rasterizer, err := newRasterizer(cfg)
	if err != nil {
		return fmt.Errorf("create paint texture: %w", err)
	}
	defer rasterizer.Dispose()

	history := paint.NewHistory(rasterizer, cfg.History.MaxDepth, paint.WithLogger(logger.Named("history")))
	stroker := paint.NewStroker(rasterizer, history, preset, paint.WithLogger(logger.Named("stroke")))
	c := cfg.Brush.Color
	stroker.SetColor(paint.RGB(c[0], c[1], c[2]))

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Islands are built off the UI loop; the mesh is already in memory.
	islands := uvisland.NewCache(func(context.Context, string) (*models.Mesh, error) {
		return mesh, nil
	}, uvisland.WithLogger(logger.Named("islands")))
	islandsReady := islands.Load(ctx, mesh.Path)

	// Reload presets while painting when they come from disk.
	var presetUpdates <-chan []brush.Preset
	if cfg.Brush.PresetPath != "" {
		w, err := brush.Watch(cfg.Brush.PresetPath, logger.Named("presets"))
		if err != nil {
			logger.Warn("preset reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			presetUpdates = w.Updates()
		}
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	var backdrop image.Image
	if embeddedImg != nil {
		backdrop = embeddedImg
		logger.Info("using embedded texture as backdrop",
			zap.Int("width", embeddedImg.Bounds().Dx()),
			zap.Int("height", embeddedImg.Bounds().Dy()))
	}

	ed := newEditor(cfg, editorDeps{
		rasterizer: rasterizer,
		history:    history,
		stroker:    stroker,
		catalog:    catalog,
		islands:    islands,
		backdrop:   backdrop,
		name:       filepath.Base(modelPath),
		triangles:  mesh.TriangleCount(),
	})
	ed.resize(width, height)

	// GL calls must stay on this goroutine, so events are handled here too.
	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Renderer.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ed.finishStroke()
			return nil

		case err := <-islandsReady:
			islandsReady = nil
			switch {
			case err == nil:
				p, _ := islands.Picker()
				ed.setStatus(fmt.Sprintf("%d UV islands", p.Len()))
			case errors.Is(err, uvisland.ErrSuperseded):
			default:
				ed.setStatus("island build failed: " + err.Error())
			}

		case presets := <-presetUpdates:
			ed.setCatalog(brush.NewCatalog(presets))

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ws, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				term.Resize(ws.Width, ws.Height)
			}
			if quit := ed.handle(ev); quit {
				ed.finishStroke()
				return nil
			}

		case <-ticker.C:
			ed.tick()
			term.Draw(ed)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
