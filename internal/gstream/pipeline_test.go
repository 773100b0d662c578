//go:build !nogst

package gstream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeSetter struct {
	err   error
	names []string
}

func (f *fakeSetter) SetProperty(name string, _ interface{}) error {
	f.names = append(f.names, name)
	return f.err
}

// A missing tunable property must not abort pipeline construction:
// it is logged and playback proceeds with the element's defaults.
func TestSetTunableWarnsOnMiss(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	setter := &fakeSetter{err: errors.New("no such property")}

	setTunable(setter, &log, "latency", uint64(500_000_000))
	setTunable(setter, &log, "buffer-size", 4<<20)

	assert.Equal(t, []string{"latency", "buffer-size"}, setter.names)
	assert.Contains(t, buf.String(), "latency")
	assert.Contains(t, buf.String(), "no such property")
}

func TestSetTunableSilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	setter := &fakeSetter{}

	setTunable(setter, &log, "ring-buffer-max-size", uint64(0))

	assert.Equal(t, []string{"ring-buffer-max-size"}, setter.names)
	assert.Empty(t, buf.String())
}
