package dom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// ErrInvalidSelector is returned when a selector fails to compile
var ErrInvalidSelector = errors.New("invalid selector")

// Selector decides whether a single element matches
type Selector interface {
	Match(n *html.Node) bool
	String() string
}

// Compile compiles a selector expression. Expressions that start with
// "/", "./" or "(" are XPath and are evaluated against the document the
// element belongs to; everything else is a CSS selector.
func Compile(expr string) (Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidSelector)
	}

	if isXPath(expr) {
		compiled, err := xpath.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: xpath %q: %v", ErrInvalidSelector, expr, err)
		}
		return xpathSelector{expr: expr, compiled: compiled}, nil
	}

	compiled, err := cascadia.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: css %q: %v", ErrInvalidSelector, expr, err)
	}
	return cssSelector{expr: expr, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(expr string) Selector {
	sel, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return sel
}

func isXPath(expr string) bool {
	return strings.HasPrefix(expr, "/") || strings.HasPrefix(expr, "./") || strings.HasPrefix(expr, "(")
}

type cssSelector struct {
	expr     string
	compiled cascadia.Selector
}

func (s cssSelector) Match(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && s.compiled.Match(n)
}

func (s cssSelector) String() string { return s.expr }

type xpathSelector struct {
	expr     string
	compiled *xpath.Expr
}

// Match evaluates the expression from the topmost ancestor of n and reports
// whether n is among the results.
func (s xpathSelector) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	for _, m := range htmlquery.QuerySelectorAll(root, s.compiled) {
		if m == n {
			return true
		}
	}
	return false
}

func (s xpathSelector) String() string { return s.expr }

// nothing matches no element; used when a selector failed to compile
type nothing struct{ expr string }

func (s nothing) Match(*html.Node) bool { return false }
func (s nothing) String() string        { return s.expr }

// None returns a selector that never matches
func None(expr string) Selector {
	return nothing{expr: expr}
}
