package sortable

import (
	"log"

	"dragsort/internal/domain"
)

// begin snapshots the candidates and turns the armed press into a drag
func (s *Sortable) begin(displacement float64) {
	nodes := s.binding.candidates(s.container)
	axis := s.binding.Axis()

	s.tokens++
	sess := &session{
		token: s.tokens,
		axis:  axis,
		items: make([]*Item, 0, len(nodes)),
	}

	end := 0.0
	for i, n := range nodes {
		it := &Item{Node: n, OriginalIndex: i, CurrentIndex: i, Start: end}
		if r, ok := s.probe.Measure(n); ok {
			it.Start = r.Start(axis)
			it.Size = r.Size(axis)
		}
		end = it.Start + it.Size
		if i == 0 {
			sess.base = it.Start
		}
		if n == s.pressed {
			sess.dragged = it
		}
		sess.items = append(sess.items, it)
	}

	if sess.dragged == nil {
		// The pressed element left the list between press and drag
		log.Printf("Sortable: pressed element is no longer a candidate, ignoring drag")
		s.tracker.Reset()
		s.pressed = nil
		s.state = Idle
		return
	}

	s.session = sess
	s.pressed = nil
	s.state = Dragging
	log.Printf("Sortable: drag %d started on %q (index %d of %d, %s)",
		sess.token, label(sess.dragged.Node), sess.dragged.OriginalIndex, len(sess.items), axis)

	s.listeners.emit(Event{Type: EventStart, Item: sess.dragged.Node, Index: sess.dragged.OriginalIndex})
	if s.session != sess {
		return
	}
	s.drag(displacement)
}

// drag moves the dragged item to the new displacement and displaces every
// neighbor whose midpoint it crossed
func (s *Sortable) drag(displacement float64) {
	sess := s.session
	dragged := sess.dragged

	sess.displacement = displacement
	dragged.Offset = displacement
	s.animator.Set(dragged.Node, domain.OnAxis(sess.axis, displacement))

	for s.swapOnce(sess) {
	}
}

// swapOnce performs at most one swap and reports whether it did
func (s *Sortable) swapOnce(sess *session) bool {
	dragged := sess.dragged
	d := dragged.CurrentIndex
	pos := dragged.Start + sess.displacement

	if d+1 < len(sess.items) {
		n := sess.items[d+1]
		if pos+dragged.Size > sess.slot(d+1)+n.Size/2 {
			sess.exchange(d, d+1)
			s.slide(sess, n, dragged.Size)
			return true
		}
	}

	if d > 0 {
		n := sess.items[d-1]
		if pos < sess.slot(d-1)+n.Size/2 {
			sess.exchange(d, d-1)
			s.slide(sess, n, -dragged.Size)
			return true
		}
	}

	return false
}

// slide animates a displaced neighbor into its new slot. The neighbor's
// offset starts at gap, which puts it back where it was drawn before the
// swap, and eases to zero.
func (s *Sortable) slide(sess *session, n *Item, gap float64) {
	n.Offset = gap
	shift := sess.slot(n.CurrentIndex) - n.Start
	from := s.animator.Offset(n.Node)
	to := domain.OnAxis(sess.axis, shift)

	s.animator.Animate(n.Node, from, to, func() {
		if sess.cancelled {
			return
		}
		n.Offset = 0
	})
}
