// Package gesture carries normalized pointer input.
//
// Hosts translate whatever input they receive (terminal mouse reports,
// touch events, synthetic test gestures) into a stream of Events and hand
// them to a Dispatcher. Consumers subscribe with Listen and receive events
// in arrival order on the host's goroutine.
package gesture

import (
	"time"

	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

// Kind identifies the phase of a pointer sample
type Kind int

const (
	Press Kind = iota
	Move
	Release
	// Cancel ends the gesture without a release, e.g. when the pointer is
	// captured by something else
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is one normalized pointer sample
type Event struct {
	Kind   Kind
	Target *html.Node // element under the pointer at press; may be nil otherwise
	Point  domain.Point
	Time   time.Time
}

// Handler receives events
type Handler func(Event)

// Source is anything gesture consumers can listen to
type Source interface {
	// Listen registers h and returns a function that removes it
	Listen(h Handler) (remove func())
}

type listener struct {
	id uint64
	fn Handler
}

// Dispatcher fans events out to listeners. It is not safe for concurrent
// use; hosts call Dispatch from their event loop.
type Dispatcher struct {
	listeners []listener
	nextID    uint64
}

// NewDispatcher creates a dispatcher with no listeners
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Listen implements Source
func (d *Dispatcher) Listen(h Handler) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, fn: h})
	return func() {
		for i := range d.listeners {
			if d.listeners[i].id == id {
				copy(d.listeners[i:], d.listeners[i+1:])
				d.listeners[len(d.listeners)-1] = listener{}
				d.listeners = d.listeners[:len(d.listeners)-1]
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener registered when Dispatch was
// called
func (d *Dispatcher) Dispatch(ev Event) {
	snapshot := make([]listener, len(d.listeners))
	copy(snapshot, d.listeners)
	for _, l := range snapshot {
		l.fn(ev)
	}
}

// Listeners returns the number of registered listeners
func (d *Dispatcher) Listeners() int {
	return len(d.listeners)
}
