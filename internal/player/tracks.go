package player

import (
	"fmt"
	"time"
)

// inspectTracks waits out the discovery delay, then prints the track
// counts and per-track language codes. The delay is a best-effort
// warm-up heuristic; slow discovery simply yields fewer tracks.
func (c *Controller) inspectTracks() {
	time.Sleep(c.delay)

	pipeline := c.pipeline
	if pipeline == nil || c.shutdown.Load() {
		return
	}

	video, audio, subtitle := pipeline.TrackCounts()
	fmt.Fprintln(c.out, "Stream discovery:")
	fmt.Fprintf(c.out, "Video tracks: %d\n", video)
	fmt.Fprintf(c.out, "Audio tracks: %d\n", audio)
	fmt.Fprintf(c.out, "Subtitle tracks: %d\n", subtitle)

	c.listTracks(pipeline, TrackAudio, "Audio", audio)
	c.listTracks(pipeline, TrackSubtitle, "Subtitle", subtitle)
}

// listTracks prints one line per track that carries a language tag;
// tracks without tags are skipped silently.
func (c *Controller) listTracks(pipeline Pipeline, kind TrackKind, label string, count int) {
	for i := 0; i < count; i++ {
		lang, ok := pipeline.TrackLanguage(kind, i)
		if !ok {
			continue
		}
		fmt.Fprintf(c.out, "  %s[%d] %s\n", label, i, lang)
	}
}
