// Package config loads the engine's runtime settings from, in
// ascending priority: built-in defaults, an optional config file, and
// environment variables prefixed TXENGINE_. Command-line flags are
// applied by the cli package on top of whatever this package resolves,
// so flags always win.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything Process/ProcessParallel and the CLI need to
// run a batch.
type Config struct {
	Workers       int    `mapstructure:"workers"`
	QueueCapacity int    `mapstructure:"queue_capacity"`
	Sequential    bool   `mapstructure:"sequential"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
}

// Load resolves a Config from defaults, an optional file at
// configPath (ignored if empty), and TXENGINE_-prefixed environment
// variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			// An explicitly-named but absent config file is not an
			// error: defaults and env vars still apply.
		} else if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	v.SetEnvPrefix("TXENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 0) // 0 means "let the engine pick" (GOMAXPROCS-1)
	v.SetDefault("queue_capacity", 256)
	v.SetDefault("sequential", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "pretty")
}

// Validate rejects combinations the engine cannot act on.
func Validate(cfg *Config) error {
	switch cfg.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("log_format must be \"pretty\" or \"json\", got %q", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of trace|debug|info|warn|error, got %q", cfg.LogLevel)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.QueueCapacity < 0 {
		return fmt.Errorf("queue_capacity must be >= 0, got %d", cfg.QueueCapacity)
	}
	return nil
}
