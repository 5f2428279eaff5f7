package sortable

import "golang.org/x/net/html"

// EventType names an engine event
type EventType string

// Engine events
const (
	// EventStart fires when a press is promoted to a drag
	EventStart EventType = "start"
	// EventEnd fires on release of a drag, before the settle animation
	EventEnd EventType = "end"
	// EventCommit fires after the settled order is written to the container
	EventCommit EventType = "commit"
	// EventAbort fires when a started drag is torn down without committing
	EventAbort EventType = "abort"
)

// Event is the payload handed to listeners
type Event struct {
	Type    EventType
	Item    *html.Node   // dragged element (start, end, abort)
	Index   int          // live index of the dragged element
	Order   []*html.Node // committed order (commit)
	Changed bool         // whether the commit changed the order
	Reason  string       // why the session was aborted
}

// Listener receives engine events
type Listener func(Event)

// Subscription identifies a registered listener
type Subscription struct {
	table *listenerTable
	name  EventType
	id    uint64
}

// Remove unregisters the listener. Removing twice is a no-op.
func (s Subscription) Remove() {
	if s.table == nil {
		return
	}
	s.table.remove(s.name, s.id)
}

type registered struct {
	id uint64
	fn Listener
}

// listenerTable is owned by a single engine instance
type listenerTable struct {
	listeners map[EventType][]registered
	nextID    uint64
}

func newListenerTable() *listenerTable {
	return &listenerTable{listeners: make(map[EventType][]registered)}
}

func (t *listenerTable) add(name EventType, fn Listener) Subscription {
	t.nextID++
	t.listeners[name] = append(t.listeners[name], registered{id: t.nextID, fn: fn})
	return Subscription{table: t, name: name, id: t.nextID}
}

func (t *listenerTable) remove(name EventType, id uint64) {
	regs := t.listeners[name]
	for i := range regs {
		if regs[i].id == id {
			t.listeners[name] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

func (t *listenerTable) emit(ev Event) {
	regs := t.listeners[ev.Type]
	snapshot := make([]registered, len(regs))
	copy(snapshot, regs)
	for _, r := range snapshot {
		r.fn(ev)
	}
}
