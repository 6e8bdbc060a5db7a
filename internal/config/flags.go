package config

import (
	"flag"
	"os"
)

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagCheck        = flag.Bool("check", false, "Verify face list invariants after every change")
	flagTransparency = flag.String("transparency", "", "Transparency mode: performance or quality")
	flagRestriction  = flag.String("restriction", "", "Cab view: cab3d, off or on")
	flagNoLists      = flag.Bool("no-display-lists", false, "Draw static groups face by face")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagBlocks       = flag.Int("blocks", 0, "Number of generated route blocks")
	flagSeed         = flag.Uint64("seed", 0, "Route generator seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path given by the --config flag
// or, failing that, the TRACKVIEW_CONFIG environment variable.
func ConfigPath() string {
	if *flagConfig != "" {
		return *flagConfig
	}
	return os.Getenv("TRACKVIEW_CONFIG")
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCheck {
		cfg.Rendering.CheckInvariants = true
	}
	if *flagTransparency != "" {
		cfg.Rendering.Transparency = *flagTransparency
	}
	if *flagRestriction != "" {
		cfg.Camera.Restriction = *flagRestriction
	}
	if *flagNoLists {
		cfg.Rendering.DisplayLists = false
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagBlocks > 0 {
		cfg.Route.Blocks = *flagBlocks
	}
	if *flagSeed > 0 {
		cfg.Route.Seed = *flagSeed
	}
}
