package animate

import (
	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

type pending struct {
	id   uint64
	node *html.Node
	to   domain.Point
	done func()
}

// Manual holds animations until Flush is called. Tests use it to observe
// the state between a release and the end of the settle animation.
type Manual struct {
	*Transforms
	queue  []pending
	nextID uint64
}

// NewManual creates a Manual animator
func NewManual() *Manual {
	return &Manual{Transforms: NewTransforms()}
}

// Set implements Animator
func (a *Manual) Set(n *html.Node, offset domain.Point) {
	a.drop(n)
	a.put(n, offset)
}

// Animate implements Animator. The element is placed at from until Flush.
func (a *Manual) Animate(n *html.Node, from, to domain.Point, done func()) func() {
	a.drop(n)
	a.put(n, from)
	a.nextID++
	id := a.nextID
	a.queue = append(a.queue, pending{id: id, node: n, to: to, done: done})
	return func() { a.remove(id) }
}

// Pending returns the number of unfinished animations
func (a *Manual) Pending() int {
	return len(a.queue)
}

// Target returns where a pending animation of n will end
func (a *Manual) Target(n *html.Node) (domain.Point, bool) {
	for _, p := range a.queue {
		if p.node == n {
			return p.to, true
		}
	}
	return domain.Point{}, false
}

// Flush finishes every pending animation in the order they were started.
// Animations started by done callbacks are finished too.
func (a *Manual) Flush() {
	for len(a.queue) > 0 {
		p := a.queue[0]
		a.queue = a.queue[1:]
		a.put(p.node, p.to)
		if p.done != nil {
			p.done()
		}
	}
}

func (a *Manual) drop(n *html.Node) {
	kept := a.queue[:0]
	for _, p := range a.queue {
		if p.node != n {
			kept = append(kept, p)
		}
	}
	a.queue = kept
}

func (a *Manual) remove(id uint64) {
	for i, p := range a.queue {
		if p.id == id {
			a.queue = append(a.queue[:i], a.queue[i+1:]...)
			return
		}
	}
}
