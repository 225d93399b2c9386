package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagRadius  = flag.Int("radius", -1, "Chunk rings kept around the camera")
	flagWorkers = flag.Int("workers", 0, "Worker goroutines for generation and probes")
	flagServer  = flag.String("server", "", "Preview server listen address")
	flagPreview = flag.Bool("preview", false, "Enable the preview server")
	flagSteps   = flag.Int("steps", 0, "Simulation ticks before exiting")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRadius >= 0 {
		cfg.Terrain.Radius = int32(*flagRadius)
	}
	if *flagWorkers > 0 {
		cfg.Terrain.Workers = *flagWorkers
		cfg.Probe.Workers = *flagWorkers
	}
	if *flagServer != "" {
		cfg.Server.Addr = *flagServer
		cfg.Server.Enabled = true
	}
	if *flagPreview {
		cfg.Server.Enabled = true
	}
	if *flagSteps > 0 {
		cfg.Sim.Steps = *flagSteps
	}
}
