// Package config handles simulator configuration loading and management.
package config

import "time"

// Config holds all simulator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Probe   ProbeConfig   `yaml:"probe"`
	Sim     SimConfig     `yaml:"sim"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds chunk generation settings.
type TerrainConfig struct {
	ChunkWidth  uint32  `yaml:"chunk_width"`  // Cells per chunk along X
	ChunkHeight uint32  `yaml:"chunk_height"` // Cells per chunk along Z
	MinHeight   float32 `yaml:"min_height"`
	MaxHeight   float32 `yaml:"max_height"`
	Radius      int32   `yaml:"radius"` // Chunk rings kept around the camera
	Workers     int     `yaml:"workers"`
}

// ProbeConfig holds ray probe settings.
type ProbeConfig struct {
	ScanLimit uint32 `yaml:"scan_limit"` // Indices scanned per mesh probe
	Workers   int    `yaml:"workers"`
}

// SimConfig holds the headless camera walk settings.
type SimConfig struct {
	Tick         time.Duration `yaml:"tick"`
	CameraSpeed  float32       `yaml:"camera_speed"`
	CameraHeight float32       `yaml:"camera_height"`
	Steps        int           `yaml:"steps"` // 0 runs until interrupted
}

// ServerConfig holds the preview server settings.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			ChunkWidth:  32,
			ChunkHeight: 32,
			MinHeight:   -5,
			MaxHeight:   5,
			Radius:      2,
			Workers:     0,
		},
		Probe: ProbeConfig{
			ScanLimit: 6144,
			Workers:   0,
		},
		Sim: SimConfig{
			Tick:         500 * time.Millisecond,
			CameraSpeed:  20,
			CameraHeight: 10,
			Steps:        0,
		},
		Server: ServerConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8080",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
