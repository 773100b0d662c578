//go:build !nogst

// Package gstream adapts a GStreamer playbin element and GLib main loop to
// the player's Pipeline and Loop capability interfaces.
package gstream

import (
	"fmt"
	"sync"

	"github.com/go-gst/go-glib/glib"
	"github.com/go-gst/go-gst/gst"
	"github.com/rs/zerolog"

	"streamplay/internal/player"
)

var initOnce sync.Once

// Factory returns a pipeline factory backed by GStreamer playbin.
func Factory(logger *zerolog.Logger) player.Factory {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return func(url string, tun player.Tunables, handler player.BusHandler) (player.Pipeline, player.Loop, error) {
		return newPipeline(url, tun, handler, logger)
	}
}

func newPipeline(url string, tun player.Tunables, handler player.BusHandler, logger *zerolog.Logger) (player.Pipeline, player.Loop, error) {
	initOnce.Do(func() { gst.Init(nil) })

	elem, err := gst.NewElementWithProperties("playbin", map[string]interface{}{
		"name": player.PipelineName,
		"uri":  url,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create playbin: %w", err)
	}

	// Buffering tunables for adaptive-bitrate sources. Playbin owns all
	// fetch/demux/decode logic; these are the only knobs we turn. Not
	// every playbin build exposes every knob, so a miss is logged and
	// playback proceeds with the element's defaults.
	setTunable(elem, logger, "latency", uint64(tun.LatencyMS)*1_000_000)
	setTunable(elem, logger, "buffer-size", tun.BufferSize)
	setTunable(elem, logger, "ring-buffer-max-size", uint64(tun.RingBufferMaxSize))

	bus := elem.GetBus()
	if bus == nil {
		return nil, nil, fmt.Errorf("playbin has no message bus")
	}
	bus.AddWatch(func(msg *gst.Message) bool {
		return handler(translateMessage(msg))
	})

	loop := glib.NewMainLoop(glib.MainContextDefault(), false)

	return &pipeline{elem: elem}, &runLoop{loop: loop}, nil
}

type propertySetter interface {
	SetProperty(name string, value interface{}) error
}

func setTunable(elem propertySetter, logger *zerolog.Logger, name string, value interface{}) {
	if err := elem.SetProperty(name, value); err != nil {
		logger.Warn().Err(err).Str("property", name).Msg("could not apply pipeline tunable")
	}
}

// translateMessage maps a GStreamer bus message onto the player's
// framework-neutral view.
func translateMessage(msg *gst.Message) player.BusMessage {
	switch msg.Type() {
	case gst.MessageError:
		gerr := msg.ParseError()
		return player.BusMessage{
			Kind:   player.MessageError,
			Source: msg.Source(),
			Text:   gerr.Error(),
			Debug:  gerr.DebugString(),
		}
	case gst.MessageEOS:
		return player.BusMessage{Kind: player.MessageEOS, Source: msg.Source()}
	case gst.MessageStateChanged:
		oldState, newState := msg.ParseStateChanged()
		return player.BusMessage{
			Kind:   player.MessageStateChanged,
			Source: msg.Source(),
			Old:    oldState.String(),
			New:    newState.String(),
		}
	default:
		return player.BusMessage{Kind: player.MessageOther, Source: msg.Source()}
	}
}

// pipeline wraps the playbin element. GObject property access and
// signal emission are safe from foreign goroutines.
type pipeline struct {
	elem      *gst.Element
	closeOnce sync.Once
}

func (p *pipeline) Play() error {
	return p.elem.SetState(gst.StatePlaying)
}

func (p *pipeline) TrackCounts() (video, audio, subtitle int) {
	return p.intProperty("n-video"), p.intProperty("n-audio"), p.intProperty("n-text")
}

func (p *pipeline) intProperty(name string) int {
	v, err := p.elem.GetProperty(name)
	if err != nil {
		return 0
	}
	n, _ := v.(int)
	return n
}

func (p *pipeline) TrackLanguage(kind player.TrackKind, index int) (string, bool) {
	signal := "get-audio-tags"
	if kind == player.TrackSubtitle {
		signal = "get-text-tags"
	}
	v, err := p.elem.Emit(signal, index)
	if err != nil {
		return "", false
	}
	tags, ok := v.(*gst.TagList)
	if !ok || tags == nil {
		return "", false
	}
	return tags.GetString(gst.TagLanguageCode)
}

func (p *pipeline) SelectTrack(kind player.TrackKind, id int) error {
	property := "current-audio"
	if kind == player.TrackSubtitle {
		property = "current-text"
	}
	return p.elem.SetProperty(property, id)
}

func (p *pipeline) Close() {
	p.closeOnce.Do(func() {
		_ = p.elem.SetState(gst.StateNull)
	})
}

// runLoop wraps the blocking GLib event pump that dispatches bus
// watches.
type runLoop struct {
	loop *glib.MainLoop
}

func (l *runLoop) Run() {
	l.loop.Run()
}

func (l *runLoop) Quit() {
	if l.loop.IsRunning() {
		l.loop.Quit()
	}
}
