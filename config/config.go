// Package config loads the ambient tool configuration from
// environment variables. The synthesis format itself (sample rate,
// duration, amplitude) is fixed in the constant package and is not
// configurable.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds ambient settings for the wave-factory tools.
type Config struct {
	// OutputDir is where generated files are written.
	OutputDir string
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string
	// LogFormat selects the zap encoder: console or json.
	LogFormat string
	// Playback enables speaker output in the CLI.
	Playback bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		LogLevel:  "info",
		LogFormat: "console",
		Playback:  false,
	}
}

// FromEnv loads configuration from WAVE_FACTORY_* environment
// variables, falling back to defaults for unset or invalid values.
func FromEnv() *Config {
	cfg := Default()

	if dir := os.Getenv("WAVE_FACTORY_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if level := strings.TrimSpace(os.Getenv("WAVE_FACTORY_LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if format := strings.TrimSpace(os.Getenv("WAVE_FACTORY_LOG_FORMAT")); format != "" {
		cfg.LogFormat = strings.ToLower(format)
	}
	if playback := os.Getenv("WAVE_FACTORY_PLAYBACK"); playback != "" {
		if val, err := strconv.ParseBool(playback); err == nil {
			cfg.Playback = val
		}
	}

	return cfg
}
