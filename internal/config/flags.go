package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log", "", "Log file path")
	flagWidth     = flag.Int("width", 0, "Paint texture width")
	flagHeight    = flag.Int("height", 0, "Paint texture height")
	flagBackend   = flag.String("backend", "", "Paint backend: software or gpu")
	flagPreset    = flag.String("preset", "", "Starting brush preset id")
	flagPresets   = flag.String("presets", "", "Brush preset YAML file or directory")
	flagFPS       = flag.Int("fps", 0, "Target frames per second")
	flagOut       = flag.String("out", "", "PNG export path")
	flagStabilize = flag.Bool("stabilize", false, "Smooth pointer input with a spring")
	flagHistory   = flag.Int("history", -1, "Maximum undo depth (0 = unbounded)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ModelPath returns the first positional argument.
func ModelPath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWidth > 0 {
		cfg.Canvas.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Canvas.Height = *flagHeight
	}
	if *flagBackend != "" {
		cfg.Renderer.Backend = *flagBackend
	}
	if *flagPreset != "" {
		cfg.Brush.Preset = *flagPreset
	}
	if *flagPresets != "" {
		cfg.Brush.PresetPath = *flagPresets
	}
	if *flagFPS > 0 {
		cfg.Renderer.FPS = *flagFPS
	}
	if *flagOut != "" {
		cfg.Export.Path = *flagOut
	}
	if *flagStabilize {
		cfg.Input.Stabilizer = true
	}
	if *flagHistory >= 0 {
		cfg.History.MaxDepth = *flagHistory
	}
}
