package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), zerolog.New(&buf))

	ctx = WithComponent(ctx, "history")
	FromContext(ctx).Info().Msg("recorded")

	assert.Contains(t, buf.String(), `"component":"history"`)
	assert.Contains(t, buf.String(), "recorded")
}

func TestFromContextWithoutLogger(t *testing.T) {
	log := FromContext(context.Background())

	// Must be a safe no-op logger, not nil.
	assert.NotNil(t, log)
	log.Info().Msg("dropped")
}
