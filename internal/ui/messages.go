package ui

import (
	"time"

	"dragsort/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// frameMsg drives animation frames
type frameMsg time.Time

// pagerMsg contains the result of showing content in the pager
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// clearStatusMsg clears the status line unless a newer message replaced it
type clearStatusMsg struct {
	id int
}
