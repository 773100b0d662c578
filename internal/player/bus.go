package player

import "fmt"

// MessageKind classifies pipeline bus messages.
type MessageKind int

const (
	// MessageOther covers every message kind the player ignores.
	MessageOther MessageKind = iota
	// MessageError is a fatal framework-reported error.
	MessageError
	// MessageEOS signals end of stream.
	MessageEOS
	// MessageStateChanged reports an element state transition.
	MessageStateChanged
)

// BusMessage is a framework-neutral view of a pipeline bus message.
type BusMessage struct {
	Kind   MessageKind
	Source string // name of the emitting element
	Text   string // error text
	Debug  string // optional error debug detail
	Old    string // previous state name
	New    string // new state name
}

// handleBusMessage is invoked by the framework's dispatch for every bus
// message. Errors and end-of-stream stop the run loop; state changes
// are reported only when they originate from the top-level pipeline,
// not a sub-element. The return value keeps the watch installed.
func (c *Controller) handleBusMessage(msg BusMessage) bool {
	switch msg.Kind {
	case MessageError:
		evt := c.log.Error().Str("message", msg.Text)
		if msg.Debug != "" {
			evt = evt.Str("debug", msg.Debug)
		}
		evt.Msg("pipeline error")
		c.requestStop()
	case MessageEOS:
		fmt.Fprintln(c.out, "End of stream reached")
		c.requestStop()
	case MessageStateChanged:
		if msg.Source == PipelineName {
			fmt.Fprintf(c.out, "State: %s -> %s\n", msg.Old, msg.New)
		}
	}
	return true
}

// requestStop asks the run loop to terminate. Repeated requests from
// the bus handler and the command interpreter collapse into one.
func (c *Controller) requestStop() {
	c.stopOnce.Do(func() {
		if c.loop != nil {
			c.loop.Quit()
		}
	})
}
