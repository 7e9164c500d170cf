// Package config handles carmesh configuration loading and management.
package config

import (
	"github.com/chazu/carmesh/pkg/carmesh"
	"github.com/chazu/carmesh/pkg/mesh"
)

// Config holds all settings for one carmesh run.
type Config struct {
	Output    OutputConfig       `yaml:"output"`
	Profile   ProfileConfig      `yaml:"profile"`
	Car       carmesh.Dimensions `yaml:"car"`
	Placement mesh.Placement     `yaml:"placement"`
	Logging   LoggingConfig      `yaml:"logging"`
}

// OutputConfig controls what gets written and where.
type OutputConfig struct {
	// Path's extension picks the format: .obj, .stl or .json.gz.
	Path        string  `yaml:"path"`
	Floor       bool    `yaml:"floor"`
	FloorExtent float64 `yaml:"floor_extent"`

	// Proxies also exports the collision proxies, tessellated at
	// ProxyCells marching-cubes cells.
	Proxies    bool `yaml:"proxies"`
	ProxyCells int  `yaml:"proxy_cells"`
}

// ProfileConfig points at an optional Lisp vehicle profile. When set, the
// profile's dimensions replace Car.
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:        "car.obj",
			Floor:       false,
			FloorExtent: carmesh.DefaultFloorExtent,
			Proxies:     false,
			ProxyCells:  64,
		},
		Car: carmesh.DefaultDimensions(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
