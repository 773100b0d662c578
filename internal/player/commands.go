package player

import (
	"bufio"
	"fmt"
	"strconv"
)

// readCommands runs the line-oriented command protocol on its own
// goroutine until the shutdown flag is set or input is exhausted.
//
//	q     quit
//	a<N>  switch audio to track N
//	s<N>  switch subtitle to track N
//
// Anything else is ignored.
func (c *Controller) readCommands() {
	defer close(c.inputDone)

	fmt.Fprintln(c.out, "Controls:")
	fmt.Fprintln(c.out, "  'a0', 'a1', ... = audio track")
	fmt.Fprintln(c.out, "  's0', 's1', ... = subtitle track")
	fmt.Fprintln(c.out, "  'q'             = quit")

	scanner := bufio.NewScanner(c.in)
	for !c.shutdown.Load() && scanner.Scan() {
		cmd := scanner.Text()

		if cmd == "q" {
			fmt.Fprintln(c.out, "Shutting down...")
			c.requestStop()
			return
		}

		if len(cmd) > 1 && (cmd[0] == 'a' || cmd[0] == 's') {
			id, err := strconv.Atoi(cmd[1:])
			if err != nil {
				fmt.Fprintln(c.out, "Invalid track number")
				continue
			}
			if cmd[0] == 'a' {
				c.switchTrack(TrackAudio, id)
			} else {
				c.switchTrack(TrackSubtitle, id)
			}
		}
	}
}

// switchTrack sets the pipeline's current audio or subtitle selection.
// The id is handed to the framework as-is.
func (c *Controller) switchTrack(kind TrackKind, id int) {
	if err := c.pipeline.SelectTrack(kind, id); err != nil {
		c.log.Error().Err(err).Stringer("kind", kind).Int("id", id).Msg("track switch failed")
		return
	}
	fmt.Fprintf(c.out, "Switched to %s track #%d\n", kind, id)
}
