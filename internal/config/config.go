// Package config handles uvpaint configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Renderer backends.
const (
	BackendSoftware = "software"
	BackendGPU      = "gpu"
)

// Config holds all settings.
type Config struct {
	Canvas   CanvasConfig   `yaml:"canvas"`
	Brush    BrushConfig    `yaml:"brush"`
	History  HistoryConfig  `yaml:"history"`
	Renderer RendererConfig `yaml:"renderer"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
	Export   ExportConfig   `yaml:"export"`
}

// CanvasConfig holds the paint texture dimensions.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BrushConfig selects the starting brush.
type BrushConfig struct {
	Preset     string       `yaml:"preset"`
	PresetPath string       `yaml:"preset_path"` // YAML file or directory of presets
	Color      [3]float64   `yaml:"color"`
	Palette    [][3]float64 `yaml:"palette"`
}

// HistoryConfig holds undo settings.
type HistoryConfig struct {
	MaxDepth int `yaml:"max_depth"` // 0 keeps every snapshot
}

// RendererConfig holds paint backend and preview settings.
type RendererConfig struct {
	Backend  string `yaml:"backend"`
	FPS      int    `yaml:"fps"`
	Outlines bool   `yaml:"outlines"`
	ShowHUD  bool   `yaml:"show_hud"`
}

// InputConfig holds pointer settings.
type InputConfig struct {
	Stabilizer          bool    `yaml:"stabilizer"`
	StabilizerFrequency float64 `yaml:"stabilizer_frequency"`
	StabilizerDamping   float64 `yaml:"stabilizer_damping"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ExportConfig holds PNG export settings.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  1024,
			Height: 1024,
		},
		Brush: BrushConfig{
			Preset:  "basic-16",
			Color:   [3]float64{0, 0, 0},
			Palette: defaultPalette(),
		},
		History: HistoryConfig{
			MaxDepth: 0,
		},
		Renderer: RendererConfig{
			Backend:  BackendSoftware,
			FPS:      60,
			Outlines: true,
			ShowHUD:  true,
		},
		Input: InputConfig{
			Stabilizer:          false,
			StabilizerFrequency: 8,
			StabilizerDamping:   1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Export: ExportConfig{
			Path: "uvpaint.png",
		},
	}
}

func defaultPalette() [][3]float64 {
	return [][3]float64{
		{0, 0, 0},
		{1, 1, 1},
		{0.9, 0.1, 0.1},
		{0.1, 0.7, 0.2},
		{0.1, 0.3, 0.9},
		{0.95, 0.8, 0.1},
	}
}

// Validate reports settings the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Renderer.Backend != BackendSoftware && c.Renderer.Backend != BackendGPU {
		errs = append(errs, fmt.Errorf("unknown renderer backend %q", c.Renderer.Backend))
	}
	if c.Renderer.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Renderer.FPS))
	}
	if c.History.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("history max_depth %d must not be negative", c.History.MaxDepth))
	}
	return errors.Join(errs...)
}
