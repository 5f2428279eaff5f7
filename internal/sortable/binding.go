package sortable

import (
	"dragsort/internal/dom"
	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

// Binding is the filter configuration installed by Sortable.Bind. Its
// methods chain:
//
//	s.Bind("li").Ignore("[disabled]").Handle(".handler").Horizon()
//
// A binding whose selectors failed to compile accepts no press; Err
// reports the first compilation error.
type Binding struct {
	item   dom.Selector
	ignore dom.Selector
	handle dom.Selector
	axis   domain.Axis
	err    error
}

func newBinding(expr string) *Binding {
	b := &Binding{}
	b.item = b.compile(expr)
	return b
}

// Ignore rejects presses on elements matching expr, or inside them
func (b *Binding) Ignore(expr string) *Binding {
	b.ignore = b.compile(expr)
	return b
}

// Handle requires presses to start on, or inside, an element matching expr
func (b *Binding) Handle(expr string) *Binding {
	b.handle = b.compile(expr)
	return b
}

// Horizon switches the list to the horizontal axis
func (b *Binding) Horizon() *Binding {
	b.axis = domain.Horizontal
	return b
}

// Axis returns the axis drags are measured along
func (b *Binding) Axis() domain.Axis {
	return b.axis
}

// Err returns the first selector compilation error, if any
func (b *Binding) Err() error {
	return b.err
}

// Selector returns the item selector
func (b *Binding) Selector() dom.Selector {
	return b.item
}

func (b *Binding) compile(expr string) dom.Selector {
	sel, err := dom.Compile(expr)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return dom.None(expr)
	}
	return sel
}

// accepts decides whether a press on target may start a drag. It returns
// the list item that would be dragged.
func (b *Binding) accepts(container, target *html.Node) (*html.Node, bool) {
	if b == nil || b.err != nil || target == nil {
		return nil, false
	}

	item := dom.ChildOf(target, container)
	if item == nil || item.Type != html.ElementNode || !b.item.Match(item) {
		return nil, false
	}

	if b.ignore != nil && dom.Closest(target, item, b.ignore) != nil {
		return nil, false
	}

	if b.handle != nil && dom.Closest(target, item, b.handle) == nil {
		return nil, false
	}

	return item, true
}

// candidates returns the container's children that take part in a drag
func (b *Binding) candidates(container *html.Node) []*html.Node {
	return dom.MatchingChildren(container, b.item)
}
