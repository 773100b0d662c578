package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultLatencyMS matches the latency budget playbin is tuned with.
	DefaultLatencyMS = 500
	// DefaultBufferSize is a 4 MiB buffer for HLS/DASH segments.
	DefaultBufferSize = 4 * 1024 * 1024
	// DefaultRingBufferMaxSize of 0 leaves the download ring buffer
	// unlimited.
	DefaultRingBufferMaxSize = 0
	// DefaultDiscoveryDelay gives playbin time to discover streams before
	// tracks are enumerated.
	DefaultDiscoveryDelay = 3 * time.Second

	defaultHistoryMaxEntries = 200
)

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Playback: PlaybackConfig{
			LatencyMS:         DefaultLatencyMS,
			BufferSize:        DefaultBufferSize,
			RingBufferMaxSize: DefaultRingBufferMaxSize,
			DiscoveryDelay:    DefaultDiscoveryDelay,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: defaultHistoryMaxEntries,
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := Defaults()

	v.SetDefault("playback.latency_ms", defaults.Playback.LatencyMS)
	v.SetDefault("playback.buffer_size", defaults.Playback.BufferSize)
	v.SetDefault("playback.ring_buffer_max_size", defaults.Playback.RingBufferMaxSize)
	v.SetDefault("playback.discovery_delay", defaults.Playback.DiscoveryDelay)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.path", defaults.History.Path)
	v.SetDefault("history.max_entries", defaults.History.MaxEntries)
}
