package demo

import "fmt"

// KeyA toggles the orbit animation. The value matches the key code glfw reports for A.
const KeyA = 65

// Event is something the window system reported between two render ticks.
type Event interface {
	fmt.Stringer
	event()
}

type ResizeEvent struct {
	Width, Height int
}

func (e ResizeEvent) String() string { return fmt.Sprintf("resize %dx%d", e.Width, e.Height) }
func (ResizeEvent) event()           {}

type KeyEvent struct {
	Key int
}

func (e KeyEvent) String() string { return fmt.Sprintf("key %d", e.Key) }
func (KeyEvent) event()           {}

type CloseEvent struct{}

func (CloseEvent) String() string { return "close" }
func (CloseEvent) event()         {}

// EventQueue buffers window events until the next render tick. Pushing and draining happen on
// the thread that owns the window, so it does no locking.
type EventQueue struct {
	events []Event
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the buffered events in arrival order and empties the queue.
func (q *EventQueue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

func (q *EventQueue) Len() int {
	return len(q.events)
}
