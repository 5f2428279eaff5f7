package sortable

import (
	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

// State is the engine's position in the gesture lifecycle
type State int

const (
	Idle State = iota
	Pressed
	Dragging
	Settling
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "idle"
	}
}

// Item is one list element taking part in a drag
type Item struct {
	Node          *html.Node
	OriginalIndex int
	CurrentIndex  int
	// Start and Size are measured along the axis when the drag begins
	Start float64
	Size  float64
	// Offset is the visual displacement along the axis. For the dragged
	// item it is relative to its original position; for the others it is
	// relative to the slot of CurrentIndex.
	Offset float64
}

// session is the single drag in progress
type session struct {
	token        uint64
	axis         domain.Axis
	items        []*Item // slice order is the live logical order
	dragged      *Item
	base         float64 // start of slot 0
	displacement float64
	cancelled    bool
	cancelSettle func()
}

// slot returns the start coordinate of logical position i
func (s *session) slot(i int) float64 {
	pos := s.base
	for _, it := range s.items[:i] {
		pos += it.Size
	}
	return pos
}

// exchange swaps the items at positions i and j and keeps CurrentIndex in
// step with slice position
func (s *session) exchange(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.items[i].CurrentIndex = i
	s.items[j].CurrentIndex = j
}

func (s *session) nodes() []*html.Node {
	out := make([]*html.Node, len(s.items))
	for i, it := range s.items {
		out[i] = it.Node
	}
	return out
}

func (s *session) changed() bool {
	for i, it := range s.items {
		if it.OriginalIndex != i {
			return true
		}
	}
	return false
}
