// Package sortable reorders the children of a container by dragging.
//
// A Sortable listens to a gesture.Source. A press on an accepted child
// arms the engine; once the pointer moves further than Delta along the
// active axis the press becomes a drag. While dragging, the dragged child
// follows the pointer and every neighbor it passes halfway slides into the
// vacated slot. Only offsets change during the drag; the container's
// children are rewritten once, after the settle animation finishes.
//
// Midpoint rule: a neighbor is displaced when the dragged child's leading
// edge moves strictly past the neighbor's midpoint. Reaching the midpoint
// exactly does nothing, and the same strict comparison applies to Delta.
//
// A Sortable is not safe for concurrent use. Gesture events, Tick and
// animation callbacks must all be delivered from one goroutine.
package sortable

import (
	"fmt"
	"log"
	"strings"
	"time"

	"dragsort/internal/animate"
	"dragsort/internal/dom"
	"dragsort/internal/domain"
	"dragsort/internal/geometry"
	"dragsort/internal/gesture"

	"golang.org/x/net/html"
)

// Options configures a Sortable. Zero fields take defaults.
type Options struct {
	// Delta is the movement along the axis a press must exceed to become
	// a drag. Defaults to gesture.DefaultThreshold.
	Delta float64
	// Hold promotes a press to a drag after the pointer stays down this
	// long, even without movement. Zero disables it.
	Hold time.Duration
	// Probe measures items. Defaults to a 1x1 uniform grid.
	Probe geometry.Probe
	// Animator applies offsets. Defaults to animate.NewImmediate().
	Animator animate.Animator
	// Gestures is the event source Bind listens to. Defaults to a private
	// dispatcher returned by Dispatcher.
	Gestures gesture.Source
}

// Sortable is a drag-to-reorder engine bound to one container
type Sortable struct {
	container *html.Node
	delta     float64
	hold      time.Duration
	probe     geometry.Probe
	animator  animate.Animator
	source    gesture.Source
	own       *gesture.Dispatcher

	binding   *Binding
	unlisten  func()
	tracker   *gesture.Tracker
	state     State
	pressed   *html.Node
	session   *session
	tokens    uint64
	listeners *listenerTable
}

// New creates an engine for the container. The container is required.
func New(container *html.Node, opts *Options) (*Sortable, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: container element is required", ErrInvalidArgument)
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.Delta < 0 {
		return nil, fmt.Errorf("%w: delta must not be negative, got %v", ErrInvalidArgument, opts.Delta)
	}

	s := &Sortable{
		container: container,
		delta:     opts.Delta,
		hold:      opts.Hold,
		probe:     opts.Probe,
		animator:  opts.Animator,
		source:    opts.Gestures,
		listeners: newListenerTable(),
	}
	if s.delta == 0 {
		s.delta = gesture.DefaultThreshold
	}
	if s.probe == nil {
		s.probe = geometry.Uniform{Width: 1, Height: 1}
	}
	if s.animator == nil {
		s.animator = animate.NewImmediate()
	}
	if s.source == nil {
		s.own = gesture.NewDispatcher()
		s.source = s.own
	}
	s.tracker = gesture.NewTracker(s.delta, s.hold)
	return s, nil
}

// Container returns the list element
func (s *Sortable) Container() *html.Node {
	return s.container
}

// Delta returns the drag threshold
func (s *Sortable) Delta() float64 {
	return s.delta
}

// Dispatcher returns the private gesture dispatcher, or nil when the
// engine was given a source in Options
func (s *Sortable) Dispatcher() *gesture.Dispatcher {
	return s.own
}

// Animator returns the animator offsets are applied through
func (s *Sortable) Animator() animate.Animator {
	return s.animator
}

// Bind starts listening for gestures on children matching expr. Binding
// again replaces the previous filter configuration and aborts a drag in
// progress.
func (s *Sortable) Bind(expr string) *Binding {
	if s.state != Idle {
		s.abort("rebind")
	}
	s.binding = newBinding(expr)
	if err := s.binding.Err(); err != nil {
		log.Printf("Sortable: bind %q failed: %v", expr, err)
	}
	if s.unlisten == nil {
		s.unlisten = s.source.Listen(s.handle)
	}
	return s.binding
}

// Unbind stops listening for gestures. A gesture in progress is abandoned
// without changing the container.
func (s *Sortable) Unbind() {
	if s.state != Idle {
		s.abort("unbind")
	}
	if s.unlisten != nil {
		s.unlisten()
		s.unlisten = nil
	}
}

// Bound reports whether the engine is listening for gestures
func (s *Sortable) Bound() bool {
	return s.unlisten != nil
}

// Binding returns the current binding, or nil before Bind
func (s *Sortable) Binding() *Binding {
	return s.binding
}

// Axis returns the axis of the current binding
func (s *Sortable) Axis() domain.Axis {
	if s.binding == nil {
		return domain.Vertical
	}
	return s.binding.Axis()
}

// On registers a listener for an engine event
func (s *Sortable) On(name EventType, fn Listener) Subscription {
	return s.listeners.add(name, fn)
}

// Dragging reports whether a drag is in progress. It is false while the
// dropped item settles.
func (s *Sortable) Dragging() bool {
	return s.state == Dragging
}

// State returns the lifecycle state
func (s *Sortable) State() State {
	return s.state
}

// Order returns the children taking part in reordering. During a drag or
// settle it is the live order; otherwise it is the container's order.
func (s *Sortable) Order() []*html.Node {
	if s.session != nil {
		return s.session.nodes()
	}
	if s.binding == nil {
		return dom.Children(s.container)
	}
	return s.binding.candidates(s.container)
}

// Items returns a copy of the session's items in live order, or nil when
// no drag is in progress
func (s *Sortable) Items() []Item {
	if s.session == nil {
		return nil
	}
	out := make([]Item, len(s.session.items))
	for i, it := range s.session.items {
		out[i] = *it
	}
	return out
}

// Dragged returns the element being dragged or settled, or nil
func (s *Sortable) Dragged() *html.Node {
	if s.session == nil {
		return nil
	}
	return s.session.dragged.Node
}

// Tick lets a held press turn into a drag when no pointer samples arrive.
// Hosts with Hold configured call it from their frame loop.
func (s *Sortable) Tick(now time.Time) {
	if s.state != Pressed || s.unlisten == nil {
		return
	}
	if u := s.tracker.Tick(now); u.Phase == gesture.Started {
		s.begin(u.Displacement)
	}
}

// handle is the gesture listener installed by Bind
func (s *Sortable) handle(ev gesture.Event) {
	switch ev.Kind {
	case gesture.Press:
		s.press(ev)
	case gesture.Move:
		s.move(ev)
	case gesture.Release:
		s.release(ev)
	case gesture.Cancel:
		if s.state != Idle {
			s.abort("cancelled")
		}
	}
}

func (s *Sortable) press(ev gesture.Event) {
	switch s.state {
	case Settling:
		s.finishSettle()
	case Pressed, Dragging:
		// A press without a release for the previous one
		s.abort("interrupted")
	}

	item, ok := s.binding.accepts(s.container, ev.Target)
	if !ok {
		return
	}

	s.pressed = item
	s.state = Pressed
	s.tracker.Press(ev.Point, ev.Time, s.binding.Axis())
}

func (s *Sortable) move(ev gesture.Event) {
	switch s.state {
	case Pressed:
		if u := s.tracker.Move(ev.Point, ev.Time); u.Phase == gesture.Started {
			s.begin(u.Displacement)
		}
	case Dragging:
		if u := s.tracker.Move(ev.Point, ev.Time); u.Phase == gesture.Moved {
			s.drag(u.Displacement)
		}
	}
}

func (s *Sortable) release(ev gesture.Event) {
	switch s.state {
	case Pressed:
		s.tracker.Release(ev.Point)
		s.pressed = nil
		s.state = Idle
	case Dragging:
		u := s.tracker.Release(ev.Point)
		if u.Displacement != s.session.displacement {
			s.drag(u.Displacement)
		}
		s.settle()
	}
}

func label(n *html.Node) string {
	return strings.TrimSpace(dom.Text(n))
}
