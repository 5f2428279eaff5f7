// Package animate applies visual offsets to elements.
//
// An Animator owns the offset each element is drawn at, relative to where
// layout puts it. Set moves an element instantly; Animate moves it over
// time and reports completion through a callback. Completion callbacks run
// on the goroutine that drives the animator (Step for Spring, Flush for
// Manual), never concurrently with other calls.
//
// Starting a new animation on an element, or calling Set on it, drops any
// animation already running for that element without calling its done
// callback.
package animate

import (
	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

// Animator is the transform primitive the reorder engine drives
type Animator interface {
	// Offset returns the offset n is currently drawn at
	Offset(n *html.Node) domain.Point
	// Set places n at offset immediately
	Set(n *html.Node, offset domain.Point)
	// Animate moves n from one offset to another and calls done when it
	// arrives. The returned cancel stops the animation in place; done is
	// not called after cancel.
	Animate(n *html.Node, from, to domain.Point, done func()) (cancel func())
}

// Transforms stores the current offset of each element
type Transforms struct {
	offsets map[*html.Node]domain.Point
}

// NewTransforms creates an empty offset table
func NewTransforms() *Transforms {
	return &Transforms{offsets: make(map[*html.Node]domain.Point)}
}

// Offset returns the offset of n, zero when unknown
func (t *Transforms) Offset(n *html.Node) domain.Point {
	return t.offsets[n]
}

func (t *Transforms) put(n *html.Node, p domain.Point) {
	if p == (domain.Point{}) {
		delete(t.offsets, n)
		return
	}
	t.offsets[n] = p
}

// Moving returns the number of elements drawn away from their layout slot
func (t *Transforms) Moving() int {
	return len(t.offsets)
}

// Immediate jumps straight to the end of every animation and calls done
// before Animate returns.
type Immediate struct {
	*Transforms
}

// NewImmediate creates an Immediate animator
func NewImmediate() *Immediate {
	return &Immediate{Transforms: NewTransforms()}
}

// Set implements Animator
func (a *Immediate) Set(n *html.Node, offset domain.Point) {
	a.put(n, offset)
}

// Animate implements Animator
func (a *Immediate) Animate(n *html.Node, _, to domain.Point, done func()) func() {
	a.put(n, to)
	if done != nil {
		done()
	}
	return func() {}
}
