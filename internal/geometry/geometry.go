// Package geometry measures list items.
//
// A Probe reports the bounding box of an element in container
// coordinates. The reorder engine only reads the start and size of a box
// along its active axis, so a probe may be backed by anything that knows
// where items are drawn: a terminal layout, a fixed grid, or a test table.
package geometry

import (
	"dragsort/internal/domain"

	"golang.org/x/net/html"
)

// Probe measures elements
type Probe interface {
	// Measure returns the bounding box of n and whether n is known
	Measure(n *html.Node) (domain.Rect, bool)
}

// Uniform measures every element as a Width x Height box positioned by its
// index among its parent's element children. X advances by Width and Y by
// Height, so the same probe serves vertical and horizontal lists.
type Uniform struct {
	Width, Height float64
}

// Measure implements Probe
func (u Uniform) Measure(n *html.Node) (domain.Rect, bool) {
	if n == nil || n.Parent == nil {
		return domain.Rect{}, false
	}
	idx := 0
	for c := n.Parent.FirstChild; c != nil && c != n; c = c.NextSibling {
		if c.Type == html.ElementNode {
			idx++
		}
	}
	return domain.Rect{
		X:      float64(idx) * u.Width,
		Y:      float64(idx) * u.Height,
		Width:  u.Width,
		Height: u.Height,
	}, true
}

type entry struct {
	node *html.Node
	rect domain.Rect
}

// Layout is a table of element boxes recorded by a renderer. It doubles as
// a hit tester for pointer presses.
type Layout struct {
	entries []entry
	index   map[*html.Node]int
}

// NewLayout creates an empty layout
func NewLayout() *Layout {
	return &Layout{index: make(map[*html.Node]int)}
}

// Set records or replaces the box for n
func (l *Layout) Set(n *html.Node, r domain.Rect) {
	if i, ok := l.index[n]; ok {
		l.entries[i].rect = r
		return
	}
	l.index[n] = len(l.entries)
	l.entries = append(l.entries, entry{node: n, rect: r})
}

// Measure implements Probe
func (l *Layout) Measure(n *html.Node) (domain.Rect, bool) {
	i, ok := l.index[n]
	if !ok {
		return domain.Rect{}, false
	}
	return l.entries[i].rect, true
}

// Reset forgets every recorded box
func (l *Layout) Reset() {
	l.entries = l.entries[:0]
	l.index = make(map[*html.Node]int)
}

// Len returns the number of recorded boxes
func (l *Layout) Len() int {
	return len(l.entries)
}

// HitTest returns the element with the smallest box containing p. When two
// boxes have the same area the one recorded last wins, so children recorded
// after their parents are preferred.
func (l *Layout) HitTest(p domain.Point) *html.Node {
	var best *html.Node
	bestArea := 0.0
	for _, e := range l.entries {
		if !e.rect.Contains(p) {
			continue
		}
		if a := e.rect.Area(); best == nil || a <= bestArea {
			best, bestArea = e.node, a
		}
	}
	return best
}

// SizeFunc returns the width and height an element occupies
type SizeFunc func(n *html.Node) (width, height float64)

// Stack lays nodes out back to back along the axis starting at origin and
// records each box. The cross-axis extent of every box is the largest cross
// size among the nodes, so a vertical stack forms a column of equal width.
func Stack(axis domain.Axis, origin domain.Point, nodes []*html.Node, size SizeFunc) *Layout {
	l := NewLayout()
	StackInto(l, axis, origin, nodes, size)
	return l
}

// StackInto is Stack writing into an existing layout. It returns the box
// enclosing all stacked nodes.
func StackInto(l *Layout, axis domain.Axis, origin domain.Point, nodes []*html.Node, size SizeFunc) domain.Rect {
	widths := make([]float64, len(nodes))
	heights := make([]float64, len(nodes))
	cross := 0.0
	for i, n := range nodes {
		widths[i], heights[i] = size(n)
		if axis == domain.Horizontal && heights[i] > cross {
			cross = heights[i]
		}
		if axis == domain.Vertical && widths[i] > cross {
			cross = widths[i]
		}
	}

	bounds := domain.Rect{X: origin.X, Y: origin.Y}
	pos := origin
	for i, n := range nodes {
		r := domain.Rect{X: pos.X, Y: pos.Y}
		if axis == domain.Horizontal {
			r.Width, r.Height = widths[i], cross
			pos.X += widths[i]
			bounds.Width += widths[i]
			bounds.Height = cross
		} else {
			r.Width, r.Height = cross, heights[i]
			pos.Y += heights[i]
			bounds.Height += heights[i]
			bounds.Width = cross
		}
		l.Set(n, r)
	}
	return bounds
}
