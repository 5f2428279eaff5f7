package gesture

import (
	"math"
	"time"

	"dragsort/internal/domain"
)

// DefaultThreshold is the movement, in probe units, a press must exceed
// before it becomes a drag
const DefaultThreshold = 4.0

// State is the tracker's position in the press/drag cycle
type State int

const (
	Idle State = iota
	Pressed
	Dragging
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Phase describes what a sample did to the gesture
type Phase int

const (
	// None means the sample changed nothing observable
	None Phase = iota
	// Started means the press was just promoted to a drag
	Started
	// Moved means an ongoing drag moved
	Moved
	// Ended means a drag was released
	Ended
	// Tapped means the press was released without becoming a drag
	Tapped
)

// Update is the result of feeding a sample to the tracker
type Update struct {
	Phase        Phase
	Displacement float64 // signed distance along the axis since the press
}

// Tracker classifies a press as a tap or a drag and reduces pointer
// samples to a signed displacement along one axis.
//
// A press becomes a drag when the absolute displacement is strictly
// greater than the threshold, or, when hold is non-zero, once a sample
// arrives hold or more after the press.
type Tracker struct {
	threshold float64
	hold      time.Duration

	state        State
	axis         domain.Axis
	origin       domain.Point
	pressedAt    time.Time
	displacement float64
}

// NewTracker creates an idle tracker
func NewTracker(threshold float64, hold time.Duration) *Tracker {
	if threshold < 0 {
		threshold = 0
	}
	return &Tracker{threshold: threshold, hold: hold}
}

// Threshold returns the drag threshold
func (t *Tracker) Threshold() float64 {
	return t.threshold
}

// State returns the current state
func (t *Tracker) State() State {
	return t.state
}

// Displacement returns the displacement recorded by the last sample
func (t *Tracker) Displacement() float64 {
	return t.displacement
}

// Press starts tracking a gesture on the given axis. Any gesture in
// progress is discarded.
func (t *Tracker) Press(p domain.Point, at time.Time, axis domain.Axis) {
	t.state = Pressed
	t.axis = axis
	t.origin = p
	t.pressedAt = at
	t.displacement = 0
}

// Move feeds a pointer sample
func (t *Tracker) Move(p domain.Point, at time.Time) Update {
	switch t.state {
	case Pressed:
		t.displacement = p.Sub(t.origin).Along(t.axis)
		if math.Abs(t.displacement) > t.threshold || t.held(at) {
			t.state = Dragging
			return Update{Phase: Started, Displacement: t.displacement}
		}
	case Dragging:
		d := p.Sub(t.origin).Along(t.axis)
		if d == t.displacement {
			return Update{Phase: None, Displacement: d}
		}
		t.displacement = d
		return Update{Phase: Moved, Displacement: d}
	}
	return Update{Phase: None, Displacement: t.displacement}
}

// Tick promotes a held press to a drag without movement
func (t *Tracker) Tick(at time.Time) Update {
	if t.state == Pressed && t.held(at) {
		t.state = Dragging
		return Update{Phase: Started, Displacement: t.displacement}
	}
	return Update{Phase: None, Displacement: t.displacement}
}

// Release ends the gesture. A drag reports Ended with the displacement of
// the release point; a press that never became a drag reports Tapped.
func (t *Tracker) Release(p domain.Point) Update {
	defer t.Reset()
	switch t.state {
	case Dragging:
		t.displacement = p.Sub(t.origin).Along(t.axis)
		return Update{Phase: Ended, Displacement: t.displacement}
	case Pressed:
		return Update{Phase: Tapped}
	}
	return Update{Phase: None}
}

// Reset returns the tracker to Idle
func (t *Tracker) Reset() {
	t.state = Idle
	t.origin = domain.Point{}
	t.pressedAt = time.Time{}
	t.displacement = 0
}

func (t *Tracker) held(at time.Time) bool {
	if t.hold <= 0 || at.IsZero() || t.pressedAt.IsZero() {
		return false
	}
	return at.Sub(t.pressedAt) >= t.hold
}
