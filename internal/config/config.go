package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cert-checker/internal/entity"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CERTCHECK_"

type Config struct {
	Folder         string `yaml:"folder"         env:"FOLDER"`
	DayThreshold   int    `yaml:"dayThreshold"   env:"DAY_THRESHOLD"`
	IncludeExpired bool   `yaml:"includeExpired" env:"INCLUDE_EXPIRED"`
	// Language is "ru", "en" or empty to detect from the locale.
	Language string `yaml:"language" env:"LANGUAGE"`

	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Watch   WatchConfig   `yaml:"watch"   envPrefix:"WATCH_"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

type WatchConfig struct {
	ListenAddr   string        `yaml:"listen"   env:"LISTEN"`
	ScanInterval time.Duration `yaml:"interval" env:"INTERVAL"`
	// Debounce groups bursts of folder events into one rescan. Zero disables the folder watcher.
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
}

func Default() *Config {
	return &Config{
		DayThreshold: 30,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			ListenAddr:   ":9101",
			ScanInterval: time.Hour,
			Debounce:     2 * time.Second,
		},
	}
}

type LoadOptions struct {
	// ConfigPath is an optional YAML file.
	ConfigPath string
	// EnvFile is an optional .env file; a missing file is not an error.
	EnvFile string
	// Environment replaces os.Environ() when set.
	Environment map[string]string
}

// Load applies, lowest priority first: defaults, YAML file, environment (.env included).
// CLI flags are applied on top by the caller.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg := Default()

	if opts.ConfigPath != "" {
		data, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix, Environment: opts.Environment}
	if err := env.ParseWithOptions(cfg, envOpts); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

func (c *Config) Policy() entity.Policy {
	return entity.PolicyFor(c.IncludeExpired)
}

func (c *Config) ScanConfig() entity.ScanConfig {
	return entity.ScanConfig{
		FolderPath:   c.Folder,
		DayThreshold: c.DayThreshold,
		Policy:       c.Policy(),
	}
}

// Validate checks settings that do not depend on the filesystem. The folder
// itself is checked by entity.ScanConfig.Validate, since it may still come from a prompt.
func (c *Config) Validate() error {
	switch {
	case c.DayThreshold < entity.MinThreshold || c.DayThreshold > entity.MaxThreshold:
		return entity.ConfigError(fmt.Sprintf("dayThreshold must be between %d and %d, got %d", entity.MinThreshold, entity.MaxThreshold, c.DayThreshold))
	case c.Language != "" && c.Language != "ru" && c.Language != "en":
		return entity.ConfigError(fmt.Sprintf("invalid language: %s", c.Language))
	case c.Watch.ScanInterval < 0:
		return entity.ConfigError("watch.interval cannot be negative")
	case c.Watch.Debounce < 0:
		return entity.ConfigError("watch.debounce cannot be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return entity.ConfigError(fmt.Sprintf("invalid logging.level: %s", c.Logging.Level))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return entity.ConfigError(fmt.Sprintf("invalid logging.format: %s", c.Logging.Format))
	}

	return nil
}
