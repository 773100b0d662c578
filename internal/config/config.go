// Package config provides configuration management for streamplay with
// Viper integration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete configuration for streamplay.
type Config struct {
	Playback PlaybackConfig `mapstructure:"playback" yaml:"playback"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
}

// PlaybackConfig holds the pipeline tunables handed to playbin.
type PlaybackConfig struct {
	// LatencyMS is the pipeline latency budget in milliseconds.
	LatencyMS int `mapstructure:"latency_ms" yaml:"latency_ms"`
	// BufferSize is the playbin buffer budget in bytes.
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
	// RingBufferMaxSize caps the download ring buffer in bytes; 0 means
	// unlimited.
	RingBufferMaxSize int `mapstructure:"ring_buffer_max_size" yaml:"ring_buffer_max_size"`
	// DiscoveryDelay is how long to wait before querying track info.
	// It is a warm-up heuristic, not a readiness guarantee.
	DiscoveryDelay time.Duration `mapstructure:"discovery_delay" yaml:"discovery_delay"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// HistoryConfig holds play-history configuration.
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Path       string `mapstructure:"path" yaml:"path"`
	MaxEntries int    `mapstructure:"max_entries" yaml:"max_entries"`
}

// Load reads the configuration from the XDG config directory, applying
// defaults and STREAMPLAY_* environment overrides. A missing config
// file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("STREAMPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.History.Path == "" {
		cfg.History.Path, err = GetHistoryFile()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve history path: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values playbin cannot accept.
func (c *Config) Validate() error {
	if c.Playback.LatencyMS < 0 {
		return fmt.Errorf("playback.latency_ms must not be negative, got %d", c.Playback.LatencyMS)
	}
	if c.Playback.BufferSize <= 0 {
		return fmt.Errorf("playback.buffer_size must be positive, got %d", c.Playback.BufferSize)
	}
	if c.Playback.RingBufferMaxSize < 0 {
		return fmt.Errorf("playback.ring_buffer_max_size must not be negative, got %d", c.Playback.RingBufferMaxSize)
	}
	if c.Playback.DiscoveryDelay < 0 {
		return fmt.Errorf("playback.discovery_delay must not be negative, got %s", c.Playback.DiscoveryDelay)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries)
	}
	return nil
}
