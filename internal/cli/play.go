package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"streamplay/internal/config"
	"streamplay/internal/gstream"
	"streamplay/internal/history"
	"streamplay/internal/logging"
	"streamplay/internal/player"
)

// playFlags are optional per-invocation overrides of the config file.
type playFlags struct {
	latencyMS      int
	bufferSize     int
	discoveryDelay time.Duration
}

// NewPlayCmd creates the play command.
func NewPlayCmd() *cobra.Command {
	var flags playFlags

	cmd := &cobra.Command{
		Use:   "play <url>",
		Short: "Play a stream URL",
		Long: `Play an HLS/DASH stream URL, for example:
  streamplay play https://test-streams.mux.dev/x36xhzz/x36xhzz.m3u8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.latencyMS, "latency", 0, "pipeline latency budget in milliseconds")
	cmd.Flags().IntVar(&flags.bufferSize, "buffer-size", 0, "playbin buffer size in bytes")
	cmd.Flags().DurationVar(&flags.discoveryDelay, "discovery-delay", 0, "warm-up before track enumeration")

	return cmd
}

// play wires config, logging and history around the player controller
// and blocks until playback ends.
func play(url string, flags playFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.latencyMS > 0 {
		cfg.Playback.LatencyMS = flags.latencyMS
	}
	if flags.bufferSize > 0 {
		cfg.Playback.BufferSize = flags.bufferSize
	}
	if flags.discoveryDelay > 0 {
		cfg.Playback.DiscoveryDelay = flags.discoveryDelay
	}

	logger := logging.NewFromValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	ctrl := player.New(player.Options{
		Factory: gstream.Factory(&logger),
		Tunables: player.Tunables{
			LatencyMS:         cfg.Playback.LatencyMS,
			BufferSize:        cfg.Playback.BufferSize,
			RingBufferMaxSize: cfg.Playback.RingBufferMaxSize,
		},
		DiscoveryDelay: cfg.Playback.DiscoveryDelay,
		Logger:         &logger,
	})
	defer ctrl.Close()

	if err := ctrl.Configure(url); err != nil {
		return err
	}

	recordPlay(ctx, cfg, url)

	ctrl.Run()
	return nil
}

// recordPlay saves the URL to the play history. History failures are
// logged and never affect playback.
func recordPlay(ctx context.Context, cfg *config.Config, url string) {
	if !cfg.History.Enabled {
		return
	}
	ctx = logging.WithComponent(ctx, "history")
	log := logging.FromContext(ctx)

	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close history database")
		}
	}()

	if err := store.Record(ctx, url); err != nil {
		log.Warn().Err(err).Msg("failed to record play")
		return
	}
	if err := store.Prune(ctx, cfg.History.MaxEntries); err != nil {
		log.Warn().Err(err).Msg("failed to prune history")
	}
}
