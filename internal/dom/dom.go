// Package dom holds the element tree that sortable lists operate on.
//
// Lists are plain golang.org/x/net/html node trees: a container element
// whose element children are the list items. The package builds such
// trees, parses them from HTML, walks them, and rewrites child order in a
// single batch.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element with the given tag and attributes.
// Attributes are given as key/value pairs.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// NewText creates a detached text node
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// NewList builds a container holding one item element per text
func NewList(containerTag, itemTag string, texts []string) *html.Node {
	list := NewElement(containerTag)
	for _, t := range texts {
		AppendItem(list, itemTag, t)
	}
	return list
}

// AppendItem appends a new item element with the given text to the container
func AppendItem(container *html.Node, itemTag, text string) *html.Node {
	item := NewElement(itemTag)
	item.AppendChild(NewText(text))
	container.AppendChild(item)
	return item
}

// ParseList parses an HTML document and returns the first element matching
// the container selector.
func ParseList(r io.Reader, containerSelector string) (*html.Node, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse list: %w", err)
	}

	sel, err := Compile(containerSelector)
	if err != nil {
		return nil, err
	}

	container := Find(doc, sel)
	if container == nil {
		return nil, fmt.Errorf("no element matches container selector %q", containerSelector)
	}
	return container, nil
}

// Find returns the first element in document order below root (inclusive)
// that matches sel.
func Find(root *html.Node, sel Selector) *html.Node {
	if root.Type == html.ElementNode && sel.Match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, sel); found != nil {
			return found
		}
	}
	return nil
}

// Text returns the concatenated text content of n
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return htmlquery.InnerText(n)
}

// Texts returns the trimmed text content of each node
func Texts(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = strings.TrimSpace(Text(n))
	}
	return out
}

// Children returns the element children of n in document order
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// MatchingChildren returns the element children of n that match sel
func MatchingChildren(n *html.Node, sel Selector) []*html.Node {
	var out []*html.Node
	for _, c := range Children(n) {
		if sel.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// ChildOf returns the ancestor of n (inclusive) whose parent is container,
// or nil when n is not inside container.
func ChildOf(n, container *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Parent == container {
			return cur
		}
	}
	return nil
}

// Closest walks from n up to and including stop and returns the first
// element matching sel. It returns nil when stop is reached without a match
// or when stop is not an ancestor of n.
func Closest(n, stop *html.Node, sel Selector) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && sel.Match(cur) {
			return cur
		}
		if cur == stop {
			return nil
		}
	}
	return nil
}

// Attr returns the value of the attribute and whether it is present
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Reorder rewrites the children of container so that the nodes in order
// occupy, in sequence, the positions the same set of nodes occupied before.
// Children not listed in order keep their positions. All moves happen in one
// pass over the child list.
func Reorder(container *html.Node, order []*html.Node) error {
	members := make(map[*html.Node]bool, len(order))
	for _, n := range order {
		if n.Parent != container {
			return fmt.Errorf("node %q is not a child of the container", strings.TrimSpace(Text(n)))
		}
		if members[n] {
			return fmt.Errorf("node %q listed twice", strings.TrimSpace(Text(n)))
		}
		members[n] = true
	}

	var current []*html.Node
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		current = append(current, c)
	}

	next := make([]*html.Node, 0, len(current))
	k := 0
	for _, c := range current {
		if members[c] {
			next = append(next, order[k])
			k++
			continue
		}
		next = append(next, c)
	}
	if k != len(order) {
		return fmt.Errorf("expected %d listed children, found %d", len(order), k)
	}

	for _, c := range current {
		container.RemoveChild(c)
	}
	for _, c := range next {
		container.AppendChild(c)
	}
	return nil
}

// Render returns the HTML serialization of n including n itself
func Render(n *html.Node) string {
	return htmlquery.OutputHTML(n, true)
}
