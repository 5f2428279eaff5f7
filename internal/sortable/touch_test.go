package sortable

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"dragsort/internal/dom"
	"dragsort/internal/domain"
	"dragsort/internal/geometry"
	"dragsort/internal/gesture"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Items are 50 wide and 20 tall; vertical lists stack by height and
// horizontal ones by width.
var probe = geometry.Uniform{Width: 50, Height: 20}

// touch simulates one pointer gesture through a dispatcher
type touch struct {
	d      *gesture.Dispatcher
	target *html.Node
	at     domain.Point
	now    time.Time
}

func press(d *gesture.Dispatcher, target *html.Node) *touch {
	tc := &touch{d: d, target: target, now: time.Unix(1700000000, 0)}
	tc.send(gesture.Press)
	return tc
}

// moveBy moves the pointer by (dx, dy) in the given number of samples
func (tc *touch) moveBy(dx, dy float64, steps int) *touch {
	if steps < 1 {
		steps = 1
	}
	from := tc.at
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		tc.at = domain.Point{X: from.X + dx*f, Y: from.Y + dy*f}
		tc.now = tc.now.Add(16 * time.Millisecond)
		tc.send(gesture.Move)
	}
	return tc
}

func (tc *touch) end() {
	tc.send(gesture.Release)
}

func (tc *touch) send(kind gesture.Kind) {
	tc.d.Dispatch(gesture.Event{Kind: kind, Target: tc.target, Point: tc.at, Time: tc.now})
}

// numbered builds a <ul> whose items read "0", "1", ... "n-1"
func numbered(n int) *html.Node {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = strconv.Itoa(i)
	}
	return dom.NewList("ul", "li", texts)
}

func text(container *html.Node) string {
	return strings.Join(dom.Texts(dom.Children(container)), "")
}

func item(container *html.Node, i int) *html.Node {
	return dom.Children(container)[i]
}

// recorder collects engine events in order
type recorder struct {
	events []Event
}

func record(s *Sortable) *recorder {
	r := &recorder{}
	for _, name := range []EventType{EventStart, EventEnd, EventCommit, EventAbort} {
		s.On(name, func(ev Event) { r.events = append(r.events, ev) })
	}
	return r
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) count(name EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == name {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T, container *html.Node, opts *Options) *Sortable {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}
	if opts.Probe == nil {
		opts.Probe = probe
	}
	s, err := New(container, opts)
	require.NoError(t, err)
	return s
}

func joined(nodes []*html.Node) string {
	return strings.Join(dom.Texts(nodes), "")
}
