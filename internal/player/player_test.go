package player

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selection struct {
	kind TrackKind
	id   int
}

type fakePipeline struct {
	mu         sync.Mutex
	video      int
	audio      int
	subtitle   int
	langs      map[TrackKind]map[int]string
	selections []selection
	selectErr  error
	playErr    error
	playCalls  int
	closeCalls int
}

func (p *fakePipeline) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playCalls++
	return p.playErr
}

func (p *fakePipeline) TrackCounts() (int, int, int) {
	return p.video, p.audio, p.subtitle
}

func (p *fakePipeline) TrackLanguage(kind TrackKind, index int) (string, bool) {
	lang, ok := p.langs[kind][index]
	return lang, ok
}

func (p *fakePipeline) SelectTrack(kind TrackKind, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selectErr != nil {
		return p.selectErr
	}
	p.selections = append(p.selections, selection{kind: kind, id: id})
	return nil
}

func (p *fakePipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeCalls++
}

func (p *fakePipeline) selected() []selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]selection(nil), p.selections...)
}

func (p *fakePipeline) closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeCalls
}

type fakeLoop struct {
	mu    sync.Mutex
	quits int
	done  chan struct{}
}

func newFakeLoop() *fakeLoop {
	return &fakeLoop{done: make(chan struct{})}
}

func (l *fakeLoop) Run() { <-l.done }

func (l *fakeLoop) Quit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quits++
	if l.quits == 1 {
		close(l.done)
	}
}

func (l *fakeLoop) quitCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quits
}

// syncBuffer makes output assertions safe against the detached track
// inspector goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestController(pipe *fakePipeline, loop *fakeLoop, input io.Reader, logOut io.Writer) (*Controller, *syncBuffer) {
	out := &syncBuffer{}
	if logOut == nil {
		logOut = io.Discard
	}
	log := zerolog.New(logOut)
	ctrl := New(Options{
		Factory: func(string, Tunables, BusHandler) (Pipeline, Loop, error) {
			return pipe, loop, nil
		},
		Input:  input,
		Output: out,
		Logger: &log,
	})
	return ctrl, out
}

func TestConfigureThenCloseWithoutRun(t *testing.T) {
	pipe := &fakePipeline{}
	loop := newFakeLoop()
	ctrl, _ := newTestController(pipe, loop, strings.NewReader(""), nil)

	require.NoError(t, ctrl.Configure("https://example.com/stream.m3u8"))

	ctrl.Close()
	assert.Equal(t, 1, pipe.closed())
	assert.Equal(t, 1, loop.quitCount())

	// Teardown is idempotent.
	ctrl.Close()
	assert.Equal(t, 1, pipe.closed())
	assert.Equal(t, 1, loop.quitCount())
}

func TestConfigureFailure(t *testing.T) {
	ctrl := New(Options{
		Factory: func(string, Tunables, BusHandler) (Pipeline, Loop, error) {
			return nil, nil, errors.New("no such element")
		},
		Input:  strings.NewReader(""),
		Output: &syncBuffer{},
	})

	err := ctrl.Configure("https://example.com/stream.m3u8")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPipelineCreate)

	// Close must be safe on partially-initialized state.
	ctrl.Close()
}

func TestConfigurePassesURLAndTunables(t *testing.T) {
	var gotURL string
	var gotTun Tunables
	ctrl := New(Options{
		Factory: func(url string, tun Tunables, _ BusHandler) (Pipeline, Loop, error) {
			gotURL = url
			gotTun = tun
			return &fakePipeline{}, newFakeLoop(), nil
		},
		Tunables: Tunables{LatencyMS: 500, BufferSize: 4 << 20, RingBufferMaxSize: 0},
	})

	require.NoError(t, ctrl.Configure("https://example.com/live.mpd"))
	assert.Equal(t, "https://example.com/live.mpd", gotURL)
	assert.Equal(t, Tunables{LatencyMS: 500, BufferSize: 4 << 20}, gotTun)
}

func TestRunWithoutConfigure(t *testing.T) {
	var logBuf bytes.Buffer
	log := zerolog.New(&logBuf)
	ctrl := New(Options{
		Factory: func(string, Tunables, BusHandler) (Pipeline, Loop, error) {
			return &fakePipeline{}, newFakeLoop(), nil
		},
		Input:  strings.NewReader(""),
		Output: &syncBuffer{},
		Logger: &log,
	})

	ctrl.Run() // must return immediately
	assert.Contains(t, logBuf.String(), "not configured")
}

func TestPlaybackScenario(t *testing.T) {
	pipe := &fakePipeline{
		video:    1,
		audio:    2,
		subtitle: 2,
		langs: map[TrackKind]map[int]string{
			TrackAudio:    {0: "eng", 1: "ger"},
			TrackSubtitle: {1: "fre"},
		},
	}
	loop := newFakeLoop()
	var logBuf bytes.Buffer
	ctrl, out := newTestController(pipe, loop, strings.NewReader("a0\ns1\nq\n"), &logBuf)

	require.NoError(t, ctrl.Configure("https://example.com/stream.m3u8"))
	ctrl.Run()

	assert.Equal(t, []selection{{TrackAudio, 0}, {TrackSubtitle, 1}}, pipe.selected())
	assert.Contains(t, out.String(), "Switched to audio track #0")
	assert.Contains(t, out.String(), "Switched to subtitle track #1")
	assert.Contains(t, out.String(), "Shutting down...")
	assert.Equal(t, 1, loop.quitCount())
	assert.NotContains(t, logBuf.String(), "error")

	ctrl.Close()
	assert.Equal(t, 1, pipe.closed())
}

func TestRunLogsPlayFailure(t *testing.T) {
	pipe := &fakePipeline{playErr: errors.New("state change refused")}
	loop := newFakeLoop()
	var logBuf bytes.Buffer
	ctrl, _ := newTestController(pipe, loop, strings.NewReader("q\n"), &logBuf)

	require.NoError(t, ctrl.Configure("https://example.com/stream.m3u8"))
	ctrl.Run()

	assert.Contains(t, logBuf.String(), "failed to start playback")
	assert.Equal(t, 1, pipe.playCalls)
}
