// Package player orchestrates a playbin-style media pipeline: lifecycle,
// bus message dispatch, track enumeration and the stdin command protocol.
// All media logic lives behind the Pipeline capability interface.
package player

// PipelineName is the name given to the top-level playbin element. Bus
// state-changed messages are attributed to it by this name.
const PipelineName = "stream-player"

// TrackKind identifies a selectable stream within the source.
type TrackKind int

const (
	// TrackAudio selects among audio streams.
	TrackAudio TrackKind = iota
	// TrackSubtitle selects among subtitle streams.
	TrackSubtitle
)

func (k TrackKind) String() string {
	if k == TrackSubtitle {
		return "subtitle"
	}
	return "audio"
}

// Tunables are the buffering knobs applied to the pipeline at
// construction time. They cannot be changed on a playing pipeline.
type Tunables struct {
	LatencyMS         int
	BufferSize        int
	RingBufferMaxSize int
}

// Pipeline is the capability surface the player needs from the media
// framework's element graph. Implementations must tolerate calls from
// goroutines other than the one running the loop.
type Pipeline interface {
	// Play transitions the pipeline to the playing state.
	Play() error
	// TrackCounts reports the number of discovered video, audio and
	// subtitle streams.
	TrackCounts() (video, audio, subtitle int)
	// TrackLanguage returns the language code of the given track, or
	// false when the track carries no tags or no language tag.
	TrackLanguage(kind TrackKind, index int) (string, bool)
	// SelectTrack switches the current audio or subtitle stream. The id
	// is passed through unvalidated; the framework ignores out-of-range
	// selections.
	SelectTrack(kind TrackKind, id int) error
	// Close transitions the pipeline to the null state and releases it.
	// It is idempotent.
	Close()
}

// Loop is a blocking event pump that dispatches bus messages until Quit
// is called. Quit is safe to call from any goroutine and on a loop that
// is not running.
type Loop interface {
	Run()
	Quit()
}

// BusHandler receives every pipeline bus message. Returning false
// removes the watch.
type BusHandler func(msg BusMessage) bool

// Factory constructs a pipeline bound to url together with its run
// loop, registering handler on the pipeline bus. It fails only when the
// pipeline element itself cannot be created.
type Factory func(url string, tun Tunables, handler BusHandler) (Pipeline, Loop, error)
