//go:build nogst

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// In nogst builds the pipeline factory always fails, so a play attempt
// exercises the pipeline-failure exit path end to end.
func TestPlayExitCodeOnPipelineFailure(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	code := execute([]string{"play", "https://example.com/stream.m3u8"})
	assert.Equal(t, exitPipeline, code)
}
