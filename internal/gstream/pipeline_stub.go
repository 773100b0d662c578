//go:build nogst

package gstream

import (
	"errors"

	"github.com/rs/zerolog"

	"streamplay/internal/player"
)

// Factory returns a factory that always fails in nogst builds, which
// exist so the rest of the module builds and tests without the
// GStreamer development headers.
func Factory(_ *zerolog.Logger) player.Factory {
	return func(string, player.Tunables, player.BusHandler) (player.Pipeline, player.Loop, error) {
		return nil, nil, errors.New("built without GStreamer support (nogst)")
	}
}
