package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagWidth    = flag.Int("width", 0, "Frame width")
	flagHeight   = flag.Int("height", 0, "Frame height")
	flagShading  = flag.String("shading", "", "Shading mode: phong, gouraud, flat or depth")
	flagOut      = flag.String("out", "", "Output frame path (.tga, .png or .bmp)")
	flagDepthOut = flag.String("depth-out", "", "Output path for the shadow pass image")
	flagWorkers  = flag.Int("workers", -1, "Rasterizer goroutines per triangle (0 = GOMAXPROCS)")

	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigRequested reports whether -save-config was given.
func SaveConfigRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagShading != "" {
		cfg.Render.Shading = *flagShading
	}
	if *flagOut != "" {
		cfg.Output.Frame = *flagOut
	}
	if *flagDepthOut != "" {
		cfg.Output.Depth = *flagDepthOut
	}
	if *flagWorkers >= 0 {
		cfg.Render.Workers = *flagWorkers
	}
}
