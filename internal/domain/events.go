package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDragStarted    EventType = "DragStarted"
	EventDragEnded      EventType = "DragEnded"
	EventOrderCommitted EventType = "OrderCommitted"
	EventSessionAborted EventType = "SessionAborted"
	EventItemAdded      EventType = "ItemAdded"
	EventError          EventType = "Error"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DragStartedEvent is emitted when a press is promoted to a drag
type DragStartedEvent struct {
	Item  string // text of the dragged item
	Index int    // index of the dragged item when the drag began
}

func (e DragStartedEvent) Type() EventType { return EventDragStarted }

// DragEndedEvent is emitted when the pointer is released during a drag
type DragEndedEvent struct {
	Item  string
	Index int // live index at release, before settling
}

func (e DragEndedEvent) Type() EventType { return EventDragEnded }

// OrderCommittedEvent is emitted once the settled order is written back
type OrderCommittedEvent struct {
	Order   []string // item texts in committed order
	Changed bool
}

func (e OrderCommittedEvent) Type() EventType { return EventOrderCommitted }

// SessionAbortedEvent is emitted when a drag is torn down without committing
type SessionAbortedEvent struct {
	Reason string
}

func (e SessionAbortedEvent) Type() EventType { return EventSessionAborted }

// ItemAddedEvent is emitted when the user appends an item to the list
type ItemAddedEvent struct {
	Item string
}

func (e ItemAddedEvent) Type() EventType { return EventItemAdded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Items int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
