package sortable

import (
	"log"

	"dragsort/internal/dom"
	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

// settle ends the drag: it emits end, then eases the dragged item into the
// slot of its final index and commits once it gets there
func (s *Sortable) settle() {
	sess := s.session
	dragged := sess.dragged
	s.state = Settling

	log.Printf("Sortable: drag %d ended on %q at index %d", sess.token, label(dragged.Node), dragged.CurrentIndex)
	s.listeners.emit(Event{Type: EventEnd, Item: dragged.Node, Index: dragged.CurrentIndex})
	if s.session != sess || s.state != Settling {
		return
	}

	rest := sess.slot(dragged.CurrentIndex) - dragged.Start
	from := domain.OnAxis(sess.axis, sess.displacement)
	to := domain.OnAxis(sess.axis, rest)

	cancel := s.animator.Animate(dragged.Node, from, to, func() {
		if sess.cancelled || !s.current(sess) {
			return
		}
		dragged.Offset = rest
		s.commit(sess)
	})
	// Synchronous animators finish inside Animate
	if s.session == sess && s.state == Settling {
		sess.cancelSettle = cancel
	}
}

// finishSettle commits a settling session right away
func (s *Sortable) finishSettle() {
	sess := s.session
	if sess.cancelSettle != nil {
		sess.cancelSettle()
		sess.cancelSettle = nil
	}
	log.Printf("Sortable: press during settle, committing early")
	s.commit(sess)
}

// commit writes the live order back to the container in one batch and
// clears every offset
func (s *Sortable) commit(sess *session) {
	sess.cancelled = true
	order := sess.nodes()
	changed := sess.changed()

	if changed {
		if err := dom.Reorder(s.container, order); err != nil {
			log.Printf("Sortable: commit failed, keeping previous order: %v", err)
			changed = false
			order = s.binding.candidates(s.container)
		}
	}
	s.snap(sess)

	s.session = nil
	s.state = Idle
	log.Printf("Sortable: drag %d committed order %q (changed=%t)", sess.token, labels(order), changed)
	s.listeners.emit(Event{Type: EventCommit, Order: order, Changed: changed})
}

// abort drops the gesture in progress without touching the container
func (s *Sortable) abort(reason string) {
	sess := s.session
	wasDragging := sess != nil

	s.tracker.Reset()
	s.pressed = nil
	s.session = nil
	s.state = Idle

	if !wasDragging {
		return
	}

	sess.cancelled = true
	if sess.cancelSettle != nil {
		sess.cancelSettle()
		sess.cancelSettle = nil
	}
	s.snap(sess)

	log.Printf("Sortable: drag %d on %q aborted (%s)", sess.token, label(sess.dragged.Node), reason)
	s.listeners.emit(Event{Type: EventAbort, Item: sess.dragged.Node, Index: sess.dragged.OriginalIndex, Reason: reason})
}

// current reports whether sess is still the engine's session. Completions
// of animations started by an earlier session are dropped.
func (s *Sortable) current(sess *session) bool {
	return s.session != nil && s.session.token == sess.token
}

// snap puts every item of the session back at zero offset
func (s *Sortable) snap(sess *session) {
	for _, it := range sess.items {
		it.Offset = 0
		s.animator.Set(it.Node, domain.Point{})
	}
}

func labels(nodes []*html.Node) []string {
	return dom.Texts(nodes)
}
