// Package config defines the claude-config configuration, its defaults,
// and validation. Configuration is loaded through viper from a YAML file
// and CLAUDE_CONFIG_* environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete claude-config configuration.
type Config struct {
	Personas  PersonasConfig  `mapstructure:"personas"`
	Output    OutputConfig    `mapstructure:"output"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PersonasConfig controls where agent persona and trait definitions are
// loaded from.
type PersonasConfig struct {
	// Dirs are the directories scanned for persona YAML files, in order.
	Dirs []string `mapstructure:"dirs"`
	// TraitsDir is the directory holding the shared trait library.
	TraitsDir string `mapstructure:"traits_dir"`
}

// OutputConfig controls where generated documents are written.
type OutputConfig struct {
	// Dir receives agents/<name>.md and CLAUDE.md.
	Dir string `mapstructure:"dir"`
}

// OptimizerConfig bounds the graph optimizer's path searches.
type OptimizerConfig struct {
	// MaxPathLength bounds cached shortest paths, in edges.
	MaxPathLength int `mapstructure:"max_path_length"`
	// MaxDepth bounds entry-point path enumeration, in edges.
	MaxDepth int `mapstructure:"max_depth"`
	// CacheSize is the number of optimization results kept in the
	// advisory result cache. Zero disables it.
	CacheSize int `mapstructure:"cache_size"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Dir receives claude-config.log; empty logs to stderr.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB rotates the log file past this size. Zero disables.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Personas: PersonasConfig{
			Dirs:      []string{"personas"},
			TraitsDir: "traits",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Optimizer: OptimizerConfig{
			MaxPathLength: 5,
			MaxDepth:      5,
			CacheSize:     8,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers the default values with viper so they apply even
// without a config file.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("personas.dirs", defaults.Personas.Dirs)
	viper.SetDefault("personas.traits_dir", defaults.Personas.TraitsDir)

	viper.SetDefault("output.dir", defaults.Output.Dir)

	viper.SetDefault("optimizer.max_path_length", defaults.Optimizer.MaxPathLength)
	viper.SetDefault("optimizer.max_depth", defaults.Optimizer.MaxDepth)
	viper.SetDefault("optimizer.cache_size", defaults.Optimizer.CacheSize)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load unmarshals and validates the current viper state.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claude-config")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".claude-config"
	}
	return filepath.Join(home, ".config", "claude-config")
}
