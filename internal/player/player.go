package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrPipelineCreate marks a fatal pipeline construction failure. The
// CLI maps it to a distinct exit code.
var ErrPipelineCreate = errors.New("pipeline construction failed")

// Options configure a Controller. Zero-value fields fall back to
// stdin/stdout and a disabled logger.
type Options struct {
	// Factory builds the pipeline and its run loop. Required.
	Factory Factory
	// Tunables are applied to the pipeline at construction.
	Tunables Tunables
	// DiscoveryDelay is the warm-up interval before track enumeration.
	DiscoveryDelay time.Duration
	// Input carries the line-oriented command protocol.
	Input io.Reader
	// Output receives user-facing status lines.
	Output io.Writer
	// Logger defaults to a no-op logger when nil.
	Logger *zerolog.Logger
}

// Controller owns the pipeline and run-loop lifecycle and coordinates
// the bus dispatch, track inspector and command interpreter. At most
// one pipeline and one run loop exist per Controller.
type Controller struct {
	factory Factory
	tun     Tunables
	delay   time.Duration
	in      io.Reader
	out     io.Writer
	log     zerolog.Logger

	pipeline Pipeline
	loop     Loop

	shutdown  atomic.Bool
	stopOnce  sync.Once
	closeOnce sync.Once
	inputDone chan struct{}
}

// New creates an unconfigured Controller.
func New(opts Options) *Controller {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Controller{
		factory:   opts.Factory,
		tun:       opts.Tunables,
		delay:     opts.DiscoveryDelay,
		in:        opts.Input,
		out:       opts.Output,
		log:       log,
		inputDone: make(chan struct{}),
	}
}

// Configure constructs the pipeline bound to url, applies the tunables
// and registers the bus dispatch. It must succeed before Run.
func (c *Controller) Configure(url string) error {
	pipeline, loop, err := c.factory(url, c.tun, c.handleBusMessage)
	if err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("could not create pipeline")
		return fmt.Errorf("%w: %v", ErrPipelineCreate, err)
	}
	c.pipeline = pipeline
	c.loop = loop
	c.log.Info().
		Str("url", url).
		Int("latency_ms", c.tun.LatencyMS).
		Int("buffer_size", c.tun.BufferSize).
		Msg("player ready")
	return nil
}

// Run starts playback and blocks until the run loop stops: user quit, a
// pipeline error, or end of stream. It requires a prior successful
// Configure and is a no-op otherwise.
func (c *Controller) Run() {
	if c.pipeline == nil || c.loop == nil {
		c.log.Error().Msg("player not configured")
		return
	}

	fmt.Fprintln(c.out, "Starting playback...")
	if err := c.pipeline.Play(); err != nil {
		c.log.Error().Err(err).Msg("failed to start playback")
	}

	// Detached: if the process shuts down first, the in-flight track
	// query is abandoned.
	go c.inspectTracks()
	go c.readCommands()

	c.loop.Run()

	c.shutdown.Store(true)
	// The interpreter's blocking read is not interrupted by the flag, so
	// this join may wait for one more input line or stream closure.
	<-c.inputDone
}

// Close tears down the pipeline and run loop. It is idempotent and safe
// on partially-initialized state; every exit path funnels through it.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.shutdown.Store(true)
		if c.pipeline != nil {
			c.pipeline.Close()
		}
		if c.loop != nil {
			c.loop.Quit()
		}
		c.log.Debug().Msg("player torn down")
	})
}
